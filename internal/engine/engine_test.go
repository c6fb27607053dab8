package engine

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"cluegen/internal/clue"
	"cluegen/internal/config"
	"cluegen/internal/observation"
	"cluegen/internal/random"
	"cluegen/internal/town"
)

type fixture struct {
	rng        *random.Selector
	characters []*town.Character
	werewolf   *town.Character
	directory  *town.Directory
	locations  *town.Locations
}

// newFixture builds n characters; index 1 is the werewolf and everyone works
// a shared trade unless changed by the test.
func newFixture(t *testing.T, n int, seed uint64) *fixture {
	t.Helper()
	rng := random.New(rand.New(rand.NewPCG(seed, seed*31+7)))
	chars := make([]*town.Character, n)
	for i := range chars {
		chars[i] = &town.Character{
			Index:           i,
			Name:            string(rune('A' + i)),
			IsAlive:         true,
			IsWerewolf:      i == 1,
			DeathLocation:   town.NoLocation,
			CurrentLocation: i % 4,
			Descriptors: map[town.Descriptor]string{
				town.Occupation: "farmer",
				town.Facial:     "beard",
				town.Clothing:   "cloak",
				town.Hairstyle:  "short",
			},
		}
	}
	var werewolf *town.Character
	if n > 1 {
		werewolf = chars[1]
	}
	return &fixture{
		rng:        rng,
		characters: chars,
		werewolf:   werewolf,
		directory:  town.NewDirectoryFromCharacters(chars, rng),
		locations:  town.NewLocations([]string{"tavern", "church", "market", "mill"}, rng),
	}
}

func (f *fixture) engine(tuning config.Tuning, opts ...Option) *Engine {
	opts = append([]Option{WithSelector(f.rng)}, opts...)
	return New(f.directory, f.locations, tuning, opts...)
}

// everyoneSees makes every living character see every other living
// character at their current location.
func (f *fixture) everyoneSees() *observation.Log {
	log := observation.NewLog()
	for _, observer := range f.characters {
		if !observer.IsAlive {
			continue
		}
		for _, subject := range f.characters {
			if subject.IsAlive {
				log.RecordSeen(observer, subject, subject.CurrentLocation)
				log.RecordPassingBy(observer, subject, subject.CurrentLocation)
			}
		}
	}
	return log
}

func honestTuning() config.Tuning {
	return config.Tuning{DeathsToClassifyLateGame: 4}
}

func TestSawInLocation_SingleWerewolfSighting(t *testing.T) {
	f := newFixture(t, 4, 1)
	a := f.characters[0]
	log := observation.NewLog()
	log.RecordSeen(a, f.werewolf, 3)

	e := f.engine(honestTuning())
	phase := clue.NewPhase(1, 1, log)
	phase.Begin(a)

	e.generateSawInLocationClue(phase, a, false)

	clues := phase.Clues(a)
	if len(clues) != 1 {
		t.Fatalf("expected 1 clue, got %d", len(clues))
	}
	if clues[0].RelatesTo != f.werewolf || clues[0].LocationSeenIn != 3 || !clues[0].IsTruth {
		t.Fatalf("unexpected clue %+v", clues[0])
	}
	if e.werewolfReports != 1 {
		t.Fatalf("expected werewolf report counter 1, got %d", e.werewolfReports)
	}
}

func TestSawInLocation_InnocentDoesNotCountAsReport(t *testing.T) {
	f := newFixture(t, 4, 2)
	a := f.characters[0]
	log := observation.NewLog()
	log.RecordSeen(a, f.characters[2], 0)

	e := f.engine(honestTuning())
	phase := clue.NewPhase(1, 1, log)
	e.generateSawInLocationClue(phase, a, false)

	if e.werewolfReports != 0 {
		t.Fatalf("expected no werewolf reports, got %d", e.werewolfReports)
	}
}

func TestWerewolfReportTilt(t *testing.T) {
	cases := map[int]float64{0: 8, 1: 4, 2: 1, 7: 1}
	for reports, want := range cases {
		if got := werewolfReportTilt(reports); got != want {
			t.Fatalf("reports %d: expected %v, got %v", reports, want, got)
		}
	}
}

func TestSightingWeights(t *testing.T) {
	werewolf := &town.Character{IsWerewolf: true}
	innocent := &town.Character{}
	sightings := []observation.Sighting{{Subject: werewolf}, {Subject: innocent}}

	weights := sightingWeights(sightings, func(s observation.Sighting) float64 {
		if s.Subject.IsWerewolf {
			return 8
		}
		return 1
	})
	if weights[0] != 400 || weights[1] != 50 {
		t.Fatalf("unexpected weights %v", weights)
	}
}

func TestClothingTilt(t *testing.T) {
	cases := []struct {
		name     string
		werewolf bool
		clothing town.ClothingCondition
		want     float64
	}{
		{"clean innocent", false, town.ConditionClean, 1},
		{"torn innocent", false, town.ConditionTorn, 1.5},
		{"bloody innocent", false, town.ConditionBloody, 2},
		{"clean werewolf", true, town.ConditionClean, 1.2},
		{"bloody werewolf", true, town.ConditionBloody, 2.4},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			s := observation.Sighting{Subject: &town.Character{IsWerewolf: tt.werewolf, Clothing: tt.clothing}}
			got := clothingTilt(s)
			if got < tt.want-1e-9 || got > tt.want+1e-9 {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSawAtWork(t *testing.T) {
	t.Run("no occupations seen", func(t *testing.T) {
		f := newFixture(t, 4, 3)
		a := f.characters[0]
		log := observation.NewLog()
		for _, c := range f.characters[1:] {
			delete(c.Descriptors, town.Occupation)
			log.RecordSeen(a, c, 0)
		}

		e := f.engine(honestTuning())
		phase := clue.NewPhase(1, 1, log)
		phase.Begin(a)
		e.generateSawAtWorkClue(phase, a, false)

		if len(phase.Clues(a)) != 0 {
			t.Fatalf("expected no clue, got %d", len(phase.Clues(a)))
		}
	})

	t.Run("only workers are picked", func(t *testing.T) {
		f := newFixture(t, 4, 4)
		a := f.characters[0]
		log := observation.NewLog()
		delete(f.characters[2].Descriptors, town.Occupation)
		log.RecordSeen(a, f.characters[2], 0)
		log.RecordSeen(a, f.characters[3], 1)

		e := f.engine(honestTuning())
		for i := 0; i < 50; i++ {
			phase := clue.NewPhase(1, 1, log)
			e.generateSawAtWorkClue(phase, a, false)
			got := phase.Clues(a)
			if len(got) != 1 || got[0].RelatesTo != f.characters[3] {
				t.Fatalf("expected clue about D, got %+v", got)
			}
			if got[0].LocationSeenIn != clue.NoLocation {
				t.Fatalf("expected no location, got %d", got[0].LocationSeenIn)
			}
		}
	})
}

func TestLiesNeverTargetWerewolf(t *testing.T) {
	f := newFixture(t, 6, 5)
	tuning := honestTuning()
	tuning.CharacterLieChance = 100
	tuning.WerewolfLieChance = 100
	e := f.engine(tuning)

	for round := 0; round < 30; round++ {
		phase := clue.NewPhase(round, 1, f.everyoneSees())
		if !e.GenerateCluesForPhase(context.Background(), phase) {
			t.Fatalf("expected generation to run")
		}
		for _, giver := range phase.Givers() {
			clues := phase.Clues(giver)
			if len(clues) != 6 {
				t.Fatalf("expected 5 lies and gossip from %s, got %d", giver, len(clues))
			}
			for _, c := range clues {
				if c.Type == clue.CommentGossip {
					if !c.IsTruth {
						t.Fatalf("gossip must never be a lie")
					}
					continue
				}
				if c.IsTruth {
					t.Fatalf("expected lie, got truthful %s", c.Type)
				}
				if c.RelatesTo.IsWerewolf || c.RelatesTo == giver {
					t.Fatalf("lie by %s targets %s", giver, c.RelatesTo)
				}
				if c.Type == clue.SawAtWork {
					if c.LocationSeenIn != clue.NoLocation {
						t.Fatalf("expected work lie without location")
					}
				} else if !f.locations.IsValidLocation(c.LocationSeenIn) {
					t.Fatalf("lie has invalid location %d", c.LocationSeenIn)
				}
			}
		}
	}
}

func TestLieDecisionSharedAcrossGiverClues(t *testing.T) {
	f := newFixture(t, 6, 17)
	tuning := honestTuning()
	tuning.CharacterLieChance = 50
	tuning.WerewolfLieChance = 50
	e := f.engine(tuning)

	liars, honest := 0, 0
	for round := 0; round < 40; round++ {
		phase := clue.NewPhase(round, 1, f.everyoneSees())
		if !e.GenerateCluesForPhase(context.Background(), phase) {
			t.Fatalf("expected generation to run")
		}
		for _, giver := range phase.Givers() {
			truths, lies := 0, 0
			for _, c := range phase.Clues(giver) {
				if c.Type == clue.CommentGossip {
					continue
				}
				if c.IsTruth {
					truths++
				} else {
					lies++
				}
			}
			if truths+lies != 5 {
				t.Fatalf("expected 5 observation clues from %s, got %d", giver, truths+lies)
			}
			if truths > 0 && lies > 0 {
				t.Fatalf("expected %s to lie in all or none of its clues, got %d truths and %d lies", giver, truths, lies)
			}
			if lies > 0 {
				liars++
			} else {
				honest++
			}
		}
	}
	if liars == 0 || honest == 0 {
		t.Fatalf("expected both liars and honest givers, got %d liars and %d honest", liars, honest)
	}
}

func TestLieProducedWithoutObservations(t *testing.T) {
	f := newFixture(t, 4, 6)
	tuning := honestTuning()
	tuning.CharacterLieChance = 100
	tuning.WerewolfLieChance = 100
	e := f.engine(tuning)

	phase := clue.NewPhase(1, 1, observation.NewLog())
	e.GenerateCluesForPhase(context.Background(), phase)

	for _, c := range phase.Clues(f.characters[0]) {
		if c.Type != clue.CommentGossip && c.IsTruth {
			t.Fatalf("expected lies only")
		}
	}
	if len(phase.Clues(f.characters[0])) != 6 {
		t.Fatalf("expected 6 clues, got %d", len(phase.Clues(f.characters[0])))
	}
}

func TestPipelineProducesAtMostOneCluePerType(t *testing.T) {
	f := newFixture(t, 6, 7)
	f.characters[4].Kill(2, 1)
	f.characters[4].HasGeneratedGhostClues = true

	tuning := honestTuning()
	tuning.CharacterLieChance = 30
	tuning.WerewolfLieChance = 60
	e := f.engine(tuning)

	for round := 0; round < 20; round++ {
		phase := clue.NewPhase(round, 1, f.everyoneSees())
		e.GenerateCluesForPhase(context.Background(), phase)

		if _, ok := phase.CharacterCluesToGive[f.characters[4]]; ok {
			t.Fatalf("expected spent ghost to be skipped")
		}
		for _, c := range f.characters {
			if !c.IsAlive {
				continue
			}
			counts := make(map[clue.Type]int)
			for _, given := range phase.Clues(c) {
				counts[given.Type]++
				if given.GivenBy != c {
					t.Fatalf("clue filed under the wrong giver")
				}
			}
			for typ, n := range counts {
				if n > 1 {
					t.Fatalf("%s produced %d %s clues", c, n, typ)
				}
			}
			if counts[clue.CommentGossip] != 1 {
				t.Fatalf("expected exactly one gossip clue from %s", c)
			}
		}
	}
}

func TestGossipWithNobodyElse(t *testing.T) {
	f := newFixture(t, 1, 8)
	e := f.engine(honestTuning())
	phase := clue.NewPhase(1, 1, nil)
	e.GenerateCluesForPhase(context.Background(), phase)

	if got := phase.Clues(f.characters[0]); len(got) != 0 {
		t.Fatalf("expected no clues, got %d", len(got))
	}
}

func TestGossipLocationFallback(t *testing.T) {
	f := newFixture(t, 3, 9)
	for _, c := range f.characters {
		c.CurrentLocation = town.NoLocation
	}
	e := f.engine(honestTuning())
	phase := clue.NewPhase(1, 1, nil)
	e.generateGossipClue(phase, f.characters[0])

	got := phase.Clues(f.characters[0])
	if len(got) != 1 {
		t.Fatalf("expected gossip clue")
	}
	if !got[0].IsTruth || !f.locations.IsValidLocation(got[0].LocationSeenIn) {
		t.Fatalf("expected truthful gossip at a random location, got %+v", got[0])
	}
}

func TestGenerateCluesForPhase_DropsReentrantRequest(t *testing.T) {
	f := newFixture(t, 3, 10)
	var e *Engine
	var nested []bool
	var generating []bool
	pacer := PacerFunc(func() {
		generating = append(generating, e.IsGenerating())
		nested = append(nested, e.GenerateCluesForPhase(context.Background(), clue.NewPhase(99, 1, nil)))
	})
	e = f.engine(honestTuning(), WithPacer(pacer))

	if !e.GenerateCluesForPhase(context.Background(), clue.NewPhase(1, 1, f.everyoneSees())) {
		t.Fatalf("expected outer run to proceed")
	}
	if len(nested) == 0 {
		t.Fatalf("expected pacer to be called")
	}
	for i, ran := range nested {
		if ran {
			t.Fatalf("nested request %d was not dropped", i)
		}
		if !generating[i] {
			t.Fatalf("expected IsGenerating during run")
		}
	}
	if e.IsGenerating() {
		t.Fatalf("expected guard released after run")
	}
}

func TestGenerateCluesForPhase_RendersEveryClue(t *testing.T) {
	f := newFixture(t, 5, 11)
	rendered := 0
	e := f.engine(honestTuning(), WithRenderer(RendererFunc(func(c *clue.Clue) {
		rendered++
	})))

	phase := clue.NewPhase(1, 1, f.everyoneSees())
	e.GenerateCluesForPhase(context.Background(), phase)

	if rendered != len(phase.All()) {
		t.Fatalf("expected %d renders, got %d", len(phase.All()), rendered)
	}
}

func TestGenerateCluesForPhase_DefaultRendererBuildsEmotes(t *testing.T) {
	f := newFixture(t, 4, 12)
	e := f.engine(honestTuning())
	phase := clue.NewPhase(1, 1, f.everyoneSees())
	e.GenerateCluesForPhase(context.Background(), phase)

	for _, c := range phase.All() {
		if len(c.Emotes) == 0 {
			t.Fatalf("expected emotes for %s", c.Type)
		}
	}
}

func TestGenerateCluesForPhase_ShufflesVisitOrder(t *testing.T) {
	f := newFixture(t, 6, 13)
	e := f.engine(honestTuning())

	firsts := make(map[*town.Character]bool)
	for round := 0; round < 40; round++ {
		phase := clue.NewPhase(round, 1, nil)
		e.GenerateCluesForPhase(context.Background(), phase)
		if len(phase.Givers()) != len(f.characters) {
			t.Fatalf("expected every character visited")
		}
		firsts[phase.Givers()[0]] = true
	}
	if len(firsts) < 2 {
		t.Fatalf("expected visit order to vary between phases")
	}
}

func TestStatsReadableFromPacer(t *testing.T) {
	f := newFixture(t, 4, 15)
	ghost := f.characters[2]
	ghost.Kill(1, 1)

	var e *Engine
	var polled []Stats
	pacer := PacerFunc(func() {
		polled = append(polled, e.Stats())
	})
	e = f.engine(honestTuning(), WithPacer(pacer))

	done := make(chan bool, 1)
	go func() {
		done <- e.GenerateCluesForPhase(context.Background(), clue.NewPhase(1, 1, f.everyoneSees()))
	}()

	select {
	case ran := <-done:
		if !ran {
			t.Fatalf("expected generation to run")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("expected Stats to be readable while generating")
	}

	if len(polled) == 0 {
		t.Fatalf("expected pacer to be called")
	}
	if last := polled[len(polled)-1]; last.GhostClues != 1 {
		t.Fatalf("expected the ghost clue counted mid-run, got %+v", last)
	}
	if got := e.Stats(); got.GhostClues != 1 {
		t.Fatalf("expected final stats to count the ghost clue, got %+v", got)
	}
}

func TestGenerateCluesForPhase_ResetsWerewolfReports(t *testing.T) {
	f := newFixture(t, 3, 14)
	e := f.engine(honestTuning())
	e.werewolfReports = 5

	e.GenerateCluesForPhase(context.Background(), clue.NewPhase(1, 1, nil))

	if got := e.Stats().WerewolfReports; got != 0 {
		t.Fatalf("expected reports reset, got %d", got)
	}
}
