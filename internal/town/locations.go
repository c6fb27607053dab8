package town

import "cluegen/internal/random"

type Locations struct {
	names []string
	rng   *random.Selector
}

func NewLocations(names []string, rng *random.Selector) *Locations {
	return &Locations{names: append([]string{}, names...), rng: rng}
}

func (l *Locations) Len() int {
	return len(l.names)
}

func (l *Locations) RandomLocation() int {
	return l.rng.Intn(len(l.names))
}

func (l *Locations) IsValidLocation(id int) bool {
	return id >= 0 && id < len(l.names)
}

func (l *Locations) Name(id int) string {
	if !l.IsValidLocation(id) {
		return "nowhere"
	}
	return l.names[id]
}
