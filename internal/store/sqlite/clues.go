package sqlite

import (
	"context"
	"fmt"

	"cluegen/internal/store"
)

func (c *Client) SaveClues(ctx context.Context, runID string, clues []store.ClueRecord) error {
	if len(clues) == 0 {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO clues (run_id, phase, day, giver, giver_index, subject, subject_index, subject_is_werewolf,
	                   clue_type, location, location_name, is_truth, ghost_descriptor, text)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing clue insert: %w", err)
	}
	defer stmt.Close()

	for _, cl := range clues {
		_, err := stmt.ExecContext(ctx,
			runID,
			cl.Phase,
			cl.Day,
			cl.Giver,
			cl.GiverIndex,
			cl.Subject,
			cl.SubjectIndex,
			boolToInt(cl.SubjectIsWerewolf),
			cl.Type,
			cl.Location,
			cl.LocationName,
			boolToInt(cl.IsTruth),
			cl.GhostDescriptor,
			cl.Text,
		)
		if err != nil {
			return fmt.Errorf("saving clue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing clues: %w", err)
	}
	return nil
}

func (c *Client) ListClues(ctx context.Context, runID, giver string) ([]store.ClueRecord, error) {
	query := `
	SELECT phase, day, giver, giver_index, subject, subject_index, subject_is_werewolf,
	       clue_type, location, location_name, is_truth, ghost_descriptor, text
	FROM clues
	WHERE run_id = ?
	  AND (? = '' OR lower(giver) = lower(?))
	ORDER BY id
	`
	rows, err := c.db.QueryContext(ctx, query, runID, giver, giver)
	if err != nil {
		return nil, fmt.Errorf("listing clues: %w", err)
	}
	defer rows.Close()

	clues := make([]store.ClueRecord, 0)
	for rows.Next() {
		var cl store.ClueRecord
		var isWerewolf, isTruth int
		err := rows.Scan(
			&cl.Phase,
			&cl.Day,
			&cl.Giver,
			&cl.GiverIndex,
			&cl.Subject,
			&cl.SubjectIndex,
			&isWerewolf,
			&cl.Type,
			&cl.Location,
			&cl.LocationName,
			&isTruth,
			&cl.GhostDescriptor,
			&cl.Text,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning clue: %w", err)
		}
		cl.SubjectIsWerewolf = isWerewolf != 0
		cl.IsTruth = isTruth != 0
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
	       SUM(CASE WHEN is_truth = 0 THEN 1 ELSE 0 END),
	       SUM(CASE WHEN subject_is_werewolf = 1 THEN 1 ELSE 0 END)
	FROM clues
	WHERE (? = '' OR run_id = ?)
	GROUP BY clue_type
	ORDER BY clue_type
	`
	rows, err := c.db.QueryContext(ctx, query, runID, runID)
	if err != nil {
		return nil, fmt.Errorf("computing clue stats: %w", err)
	}
	defer rows.Close()

	stats := make([]store.ClueStat, 0)
	for rows.Next() {
		var s store.ClueStat
		if err := rows.Scan(&s.Type, &s.Total, &s.Lies, &s.AboutWerewolf); err != nil {
			return nil, fmt.Errorf("scanning clue stat: %w", err)
		}
		s.TruthfulPercent = store.TruthfulPercent(s.Total, s.Lies)
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clue stat rows: %w", err)
	}

	return stats, nil
}
