package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS runs (
		id           TEXT PRIMARY KEY,
		project      TEXT NOT NULL,
		seed         INTEGER NOT NULL,
		days         INTEGER NOT NULL,
		phases       INTEGER NOT NULL,
		deaths       INTEGER NOT NULL,
		werewolf     TEXT NOT NULL,
		werewolf_won INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS clues (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id              TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		phase               INTEGER NOT NULL,
		day                 INTEGER NOT NULL,
		giver               TEXT NOT NULL,
		giver_index         INTEGER NOT NULL,
		subject             TEXT NOT NULL,
		subject_index       INTEGER NOT NULL,
		subject_is_werewolf INTEGER NOT NULL DEFAULT 0,
		clue_type           TEXT NOT NULL,
		location            INTEGER NOT NULL,
		location_name       TEXT DEFAULT '',
		is_truth            INTEGER NOT NULL DEFAULT 1,
		ghost_descriptor    TEXT DEFAULT '',
		text                TEXT DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_clues_run ON clues (run_id);
	CREATE INDEX IF NOT EXISTS idx_clues_run_giver ON clues (run_id, giver);
	CREATE INDEX IF NOT EXISTS idx_clues_type ON clues (clue_type);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs (created_at);
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}

	return statements
}
