package clue

import (
	"cluegen/internal/observation"
	"cluegen/internal/town"
)

// Phase is one discrete step of the game. Observations are filled in by the
// host before generation; CharacterCluesToGive is filled by the engine.
type Phase struct {
	Number       int
	Day          int
	Observations *observation.Log

	CharacterCluesToGive map[*town.Character][]*Clue
	givers               []*town.Character
}

func NewPhase(number, day int, observations *observation.Log) *Phase {
	if observations == nil {
		observations = observation.NewLog()
	}
	return &Phase{
		Number:               number,
		Day:                  day,
		Observations:         observations,
		CharacterCluesToGive: make(map[*town.Character][]*Clue),
	}
}

// Begin creates the empty clue list for c.
func (p *Phase) Begin(c *town.Character) {
	if _, ok := p.CharacterCluesToGive[c]; ok {
		return
	}
	p.CharacterCluesToGive[c] = []*Clue{}
	p.givers = append(p.givers, c)
}

func (p *Phase) Add(c *town.Character, clue *Clue) {
	p.Begin(c)
	p.CharacterCluesToGive[c] = append(p.CharacterCluesToGive[c], clue)
}

func (p *Phase) Clues(c *town.Character) []*Clue {
	return p.CharacterCluesToGive[c]
}

// Givers returns the characters in the order generation visited them.
func (p *Phase) Givers() []*town.Character {
	return p.givers
}

func (p *Phase) All() []*Clue {
	var out []*Clue
	for _, c := range p.givers {
		out = append(out, p.CharacterCluesToGive[c]...)
	}
	return out
}
