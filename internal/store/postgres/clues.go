package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cluegen/internal/store"
)

func (c *Client) SaveClues(ctx context.Context, runID string, clues []store.ClueRecord) error {
	if len(clues) == 0 {
		return nil
	}

	columns := []string{
		"run_id", "phase", "day", "giver", "giver_index", "subject", "subject_index", "subject_is_werewolf",
		"clue_type", "location", "location_name", "is_truth", "ghost_descriptor", "text",
	}
	rows := make([][]any, 0, len(clues))
	for _, cl := range clues {
		rows = append(rows, []any{
			runID,
			cl.Phase,
			cl.Day,
			cl.Giver,
			cl.GiverIndex,
			cl.Subject,
			cl.SubjectIndex,
			cl.SubjectIsWerewolf,
			cl.Type,
			cl.Location,
			cl.LocationName,
			cl.IsTruth,
			cl.GhostDescriptor,
			cl.Text,
		})
	}

	if _, err := c.pool.CopyFrom(ctx, pgx.Identifier{"clues"}, columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("saving clues: %w", err)
	}
	return nil
}

func (c *Client) ListClues(ctx context.Context, runID, giver string) ([]store.ClueRecord, error) {
	query := `
SELECT phase, day, giver, giver_index, subject, subject_index, subject_is_werewolf,
       clue_type, location, location_name, is_truth, ghost_descriptor, text
FROM clues
WHERE run_id = $1
  AND ($2 = '' OR lower(giver) = lower($2))
ORDER BY id
`
	rows, err := c.pool.Query(ctx, query, runID, giver)
	if err != nil {
		return nil, fmt.Errorf("listing clues: %w", err)
	}
	defer rows.Close()

	clues := make([]store.ClueRecord, 0)
	for rows.Next() {
		var cl store.ClueRecord
		err := rows.Scan(
			&cl.Phase,
			&cl.Day,
			&cl.Giver,
			&cl.GiverIndex,
			&cl.Subject,
			&cl.SubjectIndex,
			&cl.SubjectIsWerewolf,
			&cl.Type,
			&cl.Location,
			&cl.LocationName,
			&cl.IsTruth,
			&cl.GhostDescriptor,
			&cl.Text,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning clue: %w", err)
		}
		clues = append(clues, cl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clue rows: %w", err)
	}

	return clues, nil
}

func (c *Client) ClueStats(ctx context.Context, runID string) ([]store.ClueStat, error) {
	query := `
SELECT clue_type,
       COUNT(*),
       COUNT(*) FILTER (WHERE NOT is_truth),
       COUNT(*) FILTER (WHERE subject_is_werewolf)
FROM clues
WHERE ($1 = '' OR run_id = $1)
GROUP BY clue_type
ORDER BY clue_type
`
	rows, err := c.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("computing clue stats: %w", err)
	}
	defer rows.Close()

	stats := make([]store.ClueStat, 0)
	for rows.Next() {
		var s store.ClueStat
		var total, lies, aboutWerewolf int64
		if err := rows.Scan(&s.Type, &total, &lies, &aboutWerewolf); err != nil {
			return nil, fmt.Errorf("scanning clue stat: %w", err)
		}
		s.Total = int(total)
		s.Lies = int(lies)
		s.AboutWerewolf = int(aboutWerewolf)
		s.TruthfulPercent = store.TruthfulPercent(s.Total, s.Lies)
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clue stat rows: %w", err)
	}

	return stats, nil
}
