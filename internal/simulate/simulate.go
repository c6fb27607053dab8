// Package simulate plays headless games against the clue engine so tuning can
// be balanced offline. Movement is random; everything else goes through the
// same engine a game host would use.
package simulate

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"cluegen/internal/config"
	"cluegen/internal/store"
)

const DefaultDays = 5

// Journal is the part of the clue journal a simulation writes to.
type Journal interface {
	EnsureSchema(ctx context.Context) error
	SaveRun(ctx context.Context, run store.RunInput) error
	SaveClues(ctx context.Context, runID string, clues []store.ClueRecord) error
}

type Options struct {
	Games int
	Days  int
	// Seed fixes the first game's RNG; game i uses Seed+i. Zero picks one
	// from the clock.
	Seed   uint64
	Logger *log.Logger
	// KeepClues returns every clue record in the run summaries.
	KeepClues bool
}

type RunSummary struct {
	ID          string
	Seed        uint64
	Days        int
	Phases      int
	Deaths      int
	Werewolf    string
	WerewolfWon bool
	Clues       int
	Lies        int
	GhostClues  int
	Records     []store.ClueRecord
}

type Result struct {
	Runs           []RunSummary
	CluesGenerated int
	LiesGenerated  int
	GhostClues     int
	Errors         []error
}

// Run plays options.Games games. A nil journal skips persistence. Journal
// write failures are collected in Result.Errors and do not stop the run.
func Run(ctx context.Context, cfg *config.ProjectConfig, pop *config.Population, journal Journal, options Options) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("project config is required")
	}
	if pop == nil {
		return nil, fmt.Errorf("population is required")
	}
	if options.Games <= 0 {
		options.Games = 1
	}
	if options.Days <= 0 {
		options.Days = DefaultDays
	}
	if options.Logger == nil {
		options.Logger = log.New(io.Discard, "", 0)
	}
	if options.Seed == 0 {
		options.Seed = uint64(time.Now().UnixNano())
	}

	if journal != nil {
		if err := journal.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}

	tracer := otel.Tracer("cluegen/simulate")
	result := &Result{}

	for i := 0; i < options.Games; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		seed := options.Seed + uint64(i)
		gameCtx, span := tracer.Start(ctx, "simulate.game")
		span.SetAttributes(attribute.Int64("game.seed", int64(seed)))

		g, err := newGame(cfg, pop, seed, options.Logger)
		if err != nil {
			span.End()
			return nil, fmt.Errorf("setting up game %d: %w", i+1, err)
		}

		summary, err := g.play(gameCtx, options.Days)
		if err != nil {
			span.End()
			return result, fmt.Errorf("playing game %d: %w", i+1, err)
		}
		summary.ID = uuid.NewString()
		summary.Seed = seed

		span.SetAttributes(
			attribute.String("run.id", summary.ID),
			attribute.Int("run.phases", summary.Phases),
			attribute.Int("run.clues", summary.Clues),
			attribute.Bool("run.werewolf_won", summary.WerewolfWon),
		)
		span.End()

		options.Logger.Printf("run %s: %d phases, %d deaths, %d clues (%d lies), werewolf won: %t",
			summary.ID, summary.Phases, summary.Deaths, summary.Clues, summary.Lies, summary.WerewolfWon)

		if journal != nil {
			if err := writeRun(ctx, journal, cfg.Project, summary, g.records); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("journal run %s: %w", summary.ID, err))
			}
		}

		if options.KeepClues {
			summary.Records = g.records
		}

		result.Runs = append(result.Runs, summary)
		result.CluesGenerated += summary.Clues
		result.LiesGenerated += summary.Lies
		result.GhostClues += summary.GhostClues
	}

	return result, nil
}

func writeRun(ctx context.Context, journal Journal, project string, summary RunSummary, records []store.ClueRecord) error {
	run := store.RunInput{
		ID:          summary.ID,
		Project:     project,
		Seed:        summary.Seed,
		Days:        summary.Days,
		Phases:      summary.Phases,
		Deaths:      summary.Deaths,
		Werewolf:    summary.Werewolf,
		WerewolfWon: summary.WerewolfWon,
		CreatedAt:   time.Now(),
	}
	if err := journal.SaveRun(ctx, run); err != nil {
		return err
	}
	return journal.SaveClues(ctx, summary.ID, records)
}
