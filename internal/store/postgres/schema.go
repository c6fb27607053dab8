package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// All statements go in one Exec, which postgres runs as a single implicit
	// transaction. IF NOT EXISTS keeps it idempotent.
	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id           TEXT PRIMARY KEY,
    project      TEXT NOT NULL,
    seed         BIGINT NOT NULL,
    days         INTEGER NOT NULL,
    phases       INTEGER NOT NULL,
    deaths       INTEGER NOT NULL,
    werewolf     TEXT NOT NULL,
    werewolf_won BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS clues (
    id                  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    run_id              TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    phase               INTEGER NOT NULL,
    day                 INTEGER NOT NULL,
    giver               TEXT NOT NULL,
    giver_index         INTEGER NOT NULL,
    subject             TEXT NOT NULL,
    subject_index       INTEGER NOT NULL,
    subject_is_werewolf BOOLEAN NOT NULL DEFAULT FALSE,
    clue_type           TEXT NOT NULL,
    location            INTEGER NOT NULL,
    location_name       TEXT DEFAULT '',
    is_truth            BOOLEAN NOT NULL DEFAULT TRUE,
    ghost_descriptor    TEXT DEFAULT '',
    text                TEXT DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_clues_run ON clues (run_id);
CREATE INDEX IF NOT EXISTS idx_clues_run_giver ON clues (run_id, lower(giver));
CREATE INDEX IF NOT EXISTS idx_clues_type ON clues (clue_type);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs (created_at);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
