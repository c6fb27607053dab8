package simulate

import (
	"context"
	"fmt"
	"io"
	"log"

	"cluegen/internal/clue"
	"cluegen/internal/config"
	"cluegen/internal/engine"
	"cluegen/internal/observation"
	"cluegen/internal/random"
	"cluegen/internal/store"
	"cluegen/internal/town"
)

type game struct {
	rng       *random.Selector
	directory *town.Directory
	locations *town.Locations
	engine    *engine.Engine
	logger    *log.Logger

	records []store.ClueRecord
	lies    int

	// bloodied is set after a kill; the werewolf's clothing shows it for
	// exactly one phase.
	bloodied         bool
	werewolfClothing town.ClothingCondition
}

func newGame(cfg *config.ProjectConfig, pop *config.Population, seed uint64, logger *log.Logger) (*game, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	rng := random.NewSeeded(seed)

	directory, err := town.NewDirectory(pop, rng)
	if err != nil {
		return nil, err
	}
	if len(directory.ActiveCharacters()) < 2 {
		return nil, fmt.Errorf("at least two characters are required")
	}
	locations := town.NewLocations(pop.Locations, rng)

	eng := engine.New(directory, locations, cfg.Tuning,
		engine.WithSelector(rng),
		engine.WithLogger(logger),
		engine.WithPacer(engine.SleepPacer(cfg.Pacing.Yield)),
	)

	return &game{
		rng:              rng,
		directory:        directory,
		locations:        locations,
		engine:           eng,
		logger:           logger,
		werewolfClothing: directory.Werewolf().Clothing,
	}, nil
}

// play runs day and night phases until the werewolf has outnumbered the town
// or the day limit is reached.
func (g *game) play(ctx context.Context, days int) (RunSummary, error) {
	summary := RunSummary{Werewolf: g.directory.Werewolf().Name}
	number := 0

	for day := 1; day <= days; day++ {
		for _, night := range []bool{false, true} {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			number++

			phase := clue.NewPhase(number, day, g.observe())
			g.showBlood()
			if !g.engine.GenerateCluesForPhase(ctx, phase) {
				return summary, fmt.Errorf("phase %d: generation already in progress", number)
			}
			g.record(phase)

			if night {
				g.kill(day)
			}

			summary.Phases = number
			summary.Days = day
			if g.innocentsAlive() <= 1 {
				summary.WerewolfWon = true
				return g.finish(summary), nil
			}
		}
	}

	return g.finish(summary), nil
}

func (g *game) finish(summary RunSummary) RunSummary {
	stats := g.engine.Stats()
	summary.Deaths = g.directory.DeathCount()
	summary.Clues = len(g.records)
	summary.Lies = g.lies
	summary.GhostClues = stats.GhostClues
	return summary
}

// observe moves every living character to a random location and records who
// saw whom.
func (g *game) observe() *observation.Log {
	obs := observation.NewLog()
	living := g.directory.Living()

	previous := make(map[*town.Character]int, len(living))
	occupants := make(map[int][]*town.Character)
	for _, c := range living {
		previous[c] = c.CurrentLocation
		c.CurrentLocation = g.locations.RandomLocation()
		occupants[c.CurrentLocation] = append(occupants[c.CurrentLocation], c)
	}

	for location := 0; location < g.locations.Len(); location++ {
		here := occupants[location]
		for _, observer := range here {
			for _, subject := range here {
				obs.RecordSeen(observer, subject, location)
			}
		}
	}

	for _, c := range living {
		from := previous[c]
		if !g.locations.IsValidLocation(from) || from == c.CurrentLocation {
			continue
		}
		var witnesses []*town.Character
		for _, other := range occupants[c.CurrentLocation] {
			if other != c {
				witnesses = append(witnesses, other)
			}
		}
		if len(witnesses) == 0 {
			continue
		}
		witness := witnesses[g.rng.Intn(len(witnesses))]
		obs.RecordPassingBy(witness, c, c.CurrentLocation)
	}

	return obs
}

func (g *game) showBlood() {
	werewolf := g.directory.Werewolf()
	if g.bloodied {
		werewolf.Clothing = town.ConditionBloody
		g.bloodied = false
		return
	}
	werewolf.Clothing = g.werewolfClothing
}

// kill takes one living innocent, preferring those sharing the werewolf's
// location.
func (g *game) kill(day int) {
	werewolf := g.directory.Werewolf()
	var nearby, anywhere []*town.Character
	for _, c := range g.directory.Living() {
		if c.IsWerewolf {
			continue
		}
		anywhere = append(anywhere, c)
		if c.CurrentLocation == werewolf.CurrentLocation {
			nearby = append(nearby, c)
		}
	}

	candidates := nearby
	if len(candidates) == 0 {
		candidates = anywhere
	}
	if len(candidates) == 0 {
		return
	}

	victim := candidates[g.rng.Intn(len(candidates))]
	location := victim.CurrentLocation
	victim.Kill(location, day)
	g.bloodied = true
	g.logger.Printf("night %d: %s killed %s at the %s", day, werewolf, victim, g.locations.Name(location))
}

func (g *game) innocentsAlive() int {
	n := 0
	for _, c := range g.directory.Living() {
		if !c.IsWerewolf {
			n++
		}
	}
	return n
}

func (g *game) record(phase *clue.Phase) {
	for _, giver := range phase.Givers() {
		for _, c := range phase.Clues(giver) {
			g.records = append(g.records, clueRecord(phase, c, g.locations))
			if !c.IsTruth {
				g.lies++
			}
		}
	}
}

func clueRecord(phase *clue.Phase, c *clue.Clue, locations *town.Locations) store.ClueRecord {
	rec := store.ClueRecord{
		Phase:             phase.Number,
		Day:               phase.Day,
		Giver:             c.GivenBy.Name,
		GiverIndex:        c.GivenBy.Index,
		Subject:           c.RelatesTo.Name,
		SubjectIndex:      c.RelatesTo.Index,
		SubjectIsWerewolf: c.RelatesTo.IsWerewolf,
		Type:              c.Type.String(),
		Location:          c.LocationSeenIn,
		IsTruth:           c.IsTruth,
		Text:              c.Describe(locations),
	}
	if locations.IsValidLocation(c.LocationSeenIn) {
		rec.LocationName = locations.Name(c.LocationSeenIn)
	}
	if c.Type == clue.VisualFromGhost {
		rec.GhostDescriptor = c.GhostDescriptor.String()
	}
	return rec
}
