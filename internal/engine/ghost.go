package engine

import (
	"fmt"

	"cluegen/internal/clue"
	"cluegen/internal/config"
	"cluegen/internal/random"
	"cluegen/internal/town"
)

// GhostSequencer holds the ghost clue history for a whole game. The history
// is shared by every ghost: the truthful ordinal that decides which
// descriptor comes next counts across all of them.
type GhostSequencer struct {
	tuning    config.Tuning
	rng       *random.Selector
	history   []*clue.Clue
	liesGiven int
}

func NewGhostSequencer(tuning config.Tuning, rng *random.Selector) *GhostSequencer {
	return &GhostSequencer{tuning: tuning, rng: rng}
}

func (g *GhostSequencer) History() []*clue.Clue {
	return g.history
}

func (g *GhostSequencer) LiesGiven() int {
	return g.liesGiven
}

// TruthfulGiven is the number of truthful ghost clues given so far.
func (g *GhostSequencer) TruthfulGiven() int {
	return len(g.history) - g.liesGiven
}

// LieChance is the ghost base chance reduced per lie already told and per day
// after the first. A non-positive result means never lie.
func (g *GhostSequencer) LieChance(day int) float64 {
	chance := g.tuning.GhostLieChance
	chance -= g.tuning.GhostLieChanceFalloff * float64(g.liesGiven)
	if day > 1 {
		chance -= g.tuning.GhostLieChanceFalloffPerDay * float64(day-1)
	}
	return chance
}

func (g *GhostSequencer) Record(c *clue.Clue) {
	g.history = append(g.history, c)
	if !c.IsTruth {
		g.liesGiven++
	}
}

// LieDescriptor picks the descriptor for a lying ghost.
func (g *GhostSequencer) LieDescriptor() town.Descriptor {
	return g.pick(town.DescriptorsExcluding(town.Occupation))
}

// NextDescriptor picks the descriptor for the next truthful ghost clue.
func (g *GhostSequencer) NextDescriptor(pop Population) town.Descriptor {
	given := g.truthfulDescriptors()

	switch len(given) {
	case 0:
		return g.pick(town.DescriptorsExcluding(town.Occupation))
	case 1:
		return g.pick(town.DescriptorsExcluding(town.Occupation, given[0]))
	case 2:
		// The third truth repeats one of the first two so they can be cross-checked.
		return g.pick(distinctDescriptors(given))
	default:
		if g.occupationRevealable(pop) {
			return g.pick(town.AllDescriptors())
		}
		return g.pick(town.DescriptorsExcluding(town.Occupation))
	}
}

// occupationRevealable reports whether the werewolf's occupation may be given
// out: it needs one, and it must either be shared with someone else or the
// game must be late enough to allow unique identifiers.
func (g *GhostSequencer) occupationRevealable(pop Population) bool {
	werewolf := pop.Werewolf()
	if werewolf == nil || !werewolf.HasOccupation() {
		return false
	}
	lateGame := g.tuning.AllowLateGameUniqueIdentifiers &&
		pop.DeathCount() >= g.tuning.DeathsToClassifyLateGame
	return pop.DescriptorMatchCount(town.Occupation) > 0 || lateGame
}

// truthfulDescriptors lists truthful ghost descriptors, most recent first.
func (g *GhostSequencer) truthfulDescriptors() []town.Descriptor {
	var out []town.Descriptor
	for i := len(g.history) - 1; i >= 0; i-- {
		if g.history[i].IsTruth {
			out = append(out, g.history[i].GhostDescriptor)
		}
	}
	return out
}

func (g *GhostSequencer) pick(candidates []town.Descriptor) town.Descriptor {
	if len(candidates) == 0 {
		panic("engine: no descriptor candidates")
	}
	return candidates[g.rng.Intn(len(candidates))]
}

func distinctDescriptors(list []town.Descriptor) []town.Descriptor {
	var out []town.Descriptor
	for _, d := range list {
		if !containsDescriptor(out, d) {
			out = append(out, d)
		}
	}
	return out
}

func containsDescriptor(list []town.Descriptor, target town.Descriptor) bool {
	for _, d := range list {
		if d == target {
			return true
		}
	}
	return false
}

func (e *Engine) generateGhostVisualClue(phase *clue.Phase, ghost *town.Character) {
	werewolf := e.population.Werewolf()
	if werewolf == nil {
		panic(fmt.Sprintf("engine: ghost %s has no werewolf to describe", ghost))
	}

	if e.rng.Chance(e.ghosts.LieChance(phase.Day)) {
		lie := clue.NewGhostVisual(ghost, werewolf, e.ghosts.LieDescriptor(), false)
		e.logger.Printf("ghost %s generating visual clue lie about werewolf %s", ghost, werewolf)
		phase.Add(ghost, lie)
		e.ghosts.Record(lie)
		return
	}

	truth := clue.NewGhostVisual(ghost, werewolf, e.ghosts.NextDescriptor(e.population), true)
	phase.Add(ghost, truth)
	e.ghosts.Record(truth)
}
