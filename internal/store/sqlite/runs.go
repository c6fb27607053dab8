package sqlite

import (
	"context"
	"fmt"
	"time"

	"cluegen/internal/store"
)

// timestampLayout keeps every created_at the same width so the text column
// sorts chronologically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (c *Client) SaveRun(ctx context.Context, run store.RunInput) error {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
	INSERT INTO runs (id, project, seed, days, phases, deaths, werewolf, werewolf_won, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := c.db.ExecContext(ctx, query,
		run.ID,
		run.Project,
		int64(run.Seed),
		run.Days,
		run.Phases,
		run.Deaths,
		run.Werewolf,
		boolToInt(run.WerewolfWon),
		createdAt.UTC().Format(timestampLayout),
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
	       COUNT(cl.id), COALESCE(SUM(CASE WHEN cl.is_truth = 0 THEN 1 ELSE 0 END), 0)
	FROM runs r
	LEFT JOIN clues cl ON cl.run_id = r.id
	GROUP BY r.id
	ORDER BY r.created_at DESC
	LIMIT ?
	`
	rows, err := c.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	runs := make([]store.Run, 0)
	for rows.Next() {
		var r store.Run
		var seed int64
		var won int
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Project, &seed, &r.Days, &r.Phases, &r.Deaths, &r.Werewolf, &won, &createdAt, &r.Clues, &r.Lies); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Seed = uint64(seed)
		r.WerewolfWon = won != 0
		if parsed, err := time.Parse(timestampLayout, createdAt); err == nil {
			r.CreatedAt = parsed
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}

	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
