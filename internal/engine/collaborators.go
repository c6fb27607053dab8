package engine

import (
	"time"

	"cluegen/internal/clue"
	"cluegen/internal/town"
)

type Population interface {
	ActiveCharacters() []*town.Character
	RandomCharacter(excludeWerewolf bool, exclude ...*town.Character) *town.Character
	Werewolf() *town.Character
	DeathCount() int
	DescriptorMatchCount(d town.Descriptor) int
	MarkGhostCluesGenerated(c *town.Character)
}

type Locations interface {
	RandomLocation() int
	IsValidLocation(id int) bool
}

// Renderer turns a finished clue into its presentation. The engine calls it
// for every clue once the giver's pipeline has run.
type Renderer interface {
	Render(c *clue.Clue)
}

type RendererFunc func(c *clue.Clue)

func (f RendererFunc) Render(c *clue.Clue) { f(c) }

type emoteRenderer struct{}

func (emoteRenderer) Render(c *clue.Clue) { c.Generate() }

// Pacer is called at the suspension points of a generation run. It carries
// no meaning beyond spreading the work out for an interactive host.
type Pacer interface {
	Yield()
}

type PacerFunc func()

func (f PacerFunc) Yield() { f() }

type noPacer struct{}

func (noPacer) Yield() {}

// SleepPacer yields by sleeping a fixed interval.
type SleepPacer time.Duration

func (p SleepPacer) Yield() {
	if p > 0 {
		time.Sleep(time.Duration(p))
	}
}
