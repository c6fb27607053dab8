package engine

import (
	"context"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cluegen/internal/clue"
	"cluegen/internal/config"
	"cluegen/internal/random"
	"cluegen/internal/town"
)

type Engine struct {
	population Population
	locations  Locations
	tuning     config.Tuning

	rng      *random.Selector
	logger   *log.Logger
	pacer    Pacer
	renderer Renderer
	tracer   trace.Tracer

	generating atomic.Bool

	mu              sync.Mutex
	werewolfReports int
	ghosts          *GhostSequencer

	statsMu sync.Mutex
	stats   Stats
}

type Stats struct {
	GhostClues      int
	GhostLies       int
	WerewolfReports int
}

func New(population Population, locations Locations, tuning config.Tuning, opts ...Option) *Engine {
	e := &Engine{
		population: population,
		locations:  locations,
		tuning:     tuning,
		rng:        random.NewSeeded(0),
		logger:     log.New(io.Discard, "", 0),
		pacer:      noPacer{},
		renderer:   emoteRenderer{},
		tracer:     otel.Tracer("cluegen/engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ghosts = NewGhostSequencer(tuning, e.rng)
	return e
}

func (e *Engine) IsGenerating() bool {
	return e.generating.Load()
}

// Stats returns the counters as of the last suspension point of the current
// run, or the end of the previous one. It is safe to call from a Pacer or
// Renderer while a run is in progress.
func (e *Engine) Stats() Stats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	return e.stats
}

// publishStats snapshots the run counters for Stats. Callers hold e.mu.
func (e *Engine) publishStats() {
	snapshot := Stats{
		GhostClues:      len(e.ghosts.History()),
		GhostLies:       e.ghosts.LiesGiven(),
		WerewolfReports: e.werewolfReports,
	}
	e.statsMu.Lock()
	e.stats = snapshot
	e.statsMu.Unlock()
}

func (e *Engine) yield() {
	e.publishStats()
	e.pacer.Yield()
}

// GenerateCluesForPhase fills phase.CharacterCluesToGive. If a run is already
// in progress the request is dropped and false is returned. A started run
// always completes.
func (e *Engine) GenerateCluesForPhase(ctx context.Context, phase *clue.Phase) bool {
	if !e.generating.CompareAndSwap(false, true) {
		return false
	}
	defer e.generating.Store(false)

	e.mu.Lock()
	defer e.mu.Unlock()

	_, span := e.tracer.Start(ctx, "engine.GenerateCluesForPhase", trace.WithAttributes(
		attribute.Int("phase.number", phase.Number),
		attribute.Int("phase.day", phase.Day),
	))
	defer span.End()

	e.werewolfReports = 0

	characters := e.population.ActiveCharacters()
	for _, index := range e.rng.Permutation(len(characters)) {
		e.generateForCharacter(phase, characters[index])
	}
	e.publishStats()

	span.SetAttributes(
		attribute.Int("clues.count", len(phase.All())),
		attribute.Int("clues.werewolf_reports", e.werewolfReports),
	)
	return true
}

func (e *Engine) generateForCharacter(phase *clue.Phase, c *town.Character) {
	if !c.IsAlive && c.HasGeneratedGhostClues {
		return
	}

	phase.Begin(c)

	if !c.IsAlive {
		e.generateGhostVisualClue(phase, c)
		e.population.MarkGhostCluesGenerated(c)
		e.yield()
	} else {
		lieChance := e.tuning.CharacterLieChance
		if c.IsWerewolf {
			lieChance = e.tuning.WerewolfLieChance
		}
		shouldLie := e.rng.Chance(lieChance)

		generators := []func(*clue.Phase, *town.Character, bool){
			e.generateSawInLocationClue,
			e.generateSawPassingByClue,
			e.generateSawAtWorkClue,
			e.generateCommentFacialClue,
			e.generateCommentClothingClue,
		}
		for _, generate := range generators {
			generate(phase, c, shouldLie)
			e.yield()
		}

		e.generateGossipClue(phase, c)
		e.yield()
	}

	for _, given := range phase.Clues(c) {
		e.renderer.Render(given)
	}
	e.yield()
}
