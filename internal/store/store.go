package store

import (
	"context"
)

// Store is the clue journal: an append-only record of simulated games and
// the clues they produced, kept for balancing analysis.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	SaveRun(ctx context.Context, run RunInput) error
	SaveClues(ctx context.Context, runID string, clues []ClueRecord) error

	ListRuns(ctx context.Context, limit int) ([]Run, error)
	ListClues(ctx context.Context, runID, giver string) ([]ClueRecord, error)
	ClueStats(ctx context.Context, runID string) ([]ClueStat, error)

	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}
