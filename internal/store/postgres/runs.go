package postgres

import (
	"context"
	"fmt"
	"time"

	"cluegen/internal/store"
)

func (c *Client) SaveRun(ctx context.Context, run store.RunInput) error {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
INSERT INTO runs (id, project, seed, days, phases, deaths, werewolf, werewolf_won, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := c.pool.Exec(ctx, query,
		run.ID,
		run.Project,
		int64(run.Seed),
		run.Days,
		run.Phases,
		run.Deaths,
		run.Werewolf,
		run.WerewolfWon,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

func (c *Client) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = store.DefaultRunLimit
	}

	query := `
SELECT r.id, r.project, r.seed, r.days, r.phases, r.deaths, r.werewolf, r.werewolf_won, r.created_at,
       COUNT(cl.id), COUNT(cl.id) FILTER (WHERE NOT cl.is_truth)
FROM runs r
LEFT JOIN clues cl ON cl.run_id = r.id
GROUP BY r.id
ORDER BY r.created_at DESC
LIMIT $1
`
	rows, err := c.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	runs := make([]store.Run, 0)
	for rows.Next() {
		var r store.Run
		var seed int64
		var clues, lies int64
		if err := rows.Scan(&r.ID, &r.Project, &seed, &r.Days, &r.Phases, &r.Deaths, &r.Werewolf, &r.WerewolfWon, &r.CreatedAt, &clues, &lies); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Seed = uint64(seed)
		r.Clues = int(clues)
		r.Lies = int(lies)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}

	return runs, nil
}
