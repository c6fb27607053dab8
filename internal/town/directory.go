package town

import (
	"errors"
	"fmt"

	"cluegen/internal/config"
	"cluegen/internal/random"
)

var ErrNoWerewolf = errors.New("population has no werewolf")

// Directory is the read-only query surface over every character in a game.
type Directory struct {
	characters []*Character
	werewolf   *Character
	rng        *random.Selector
}

func NewDirectory(pop *config.Population, rng *random.Selector) (*Directory, error) {
	if pop == nil {
		return nil, fmt.Errorf("population is required")
	}

	d := &Directory{rng: rng}
	for i, spec := range pop.Characters {
		c, err := characterFromSpec(i, spec)
		if err != nil {
			return nil, err
		}
		if c.IsWerewolf {
			if d.werewolf != nil {
				return nil, fmt.Errorf("multiple werewolves: %s and %s", d.werewolf.Name, c.Name)
			}
			d.werewolf = c
		}
		d.characters = append(d.characters, c)
	}
	if d.werewolf == nil {
		return nil, ErrNoWerewolf
	}
	return d, nil
}

func characterFromSpec(index int, spec config.CharacterSpec) (*Character, error) {
	clothing, err := ParseClothingCondition(spec.Clothing)
	if err != nil {
		return nil, fmt.Errorf("character %s: %w", spec.Name, err)
	}
	descriptors := make(map[Descriptor]string, len(spec.Descriptors))
	for key, value := range spec.Descriptors {
		d, err := ParseDescriptor(key)
		if err != nil {
			return nil, fmt.Errorf("character %s: %w", spec.Name, err)
		}
		descriptors[d] = value
	}
	return &Character{
		Index:           index,
		Name:            spec.Name,
		IsAlive:         true,
		IsWerewolf:      spec.Werewolf,
		DeathLocation:   NoLocation,
		CurrentLocation: NoLocation,
		Descriptors:     descriptors,
		Clothing:        clothing,
	}, nil
}

// NewDirectoryFromCharacters wraps already-built characters.
func NewDirectoryFromCharacters(characters []*Character, rng *random.Selector) *Directory {
	d := &Directory{characters: characters, rng: rng}
	for _, c := range characters {
		if c.IsWerewolf {
			d.werewolf = c
			break
		}
	}
	return d
}

func (d *Directory) ActiveCharacters() []*Character {
	return d.characters
}

func (d *Directory) Werewolf() *Character {
	return d.werewolf
}

func (d *Directory) Living() []*Character {
	var out []*Character
	for _, c := range d.characters {
		if c.IsAlive {
			out = append(out, c)
		}
	}
	return out
}

func (d *Directory) DeathCount() int {
	n := 0
	for _, c := range d.characters {
		if !c.IsAlive {
			n++
		}
	}
	return n
}

// RandomCharacter picks uniformly among living characters not excluded. It
// returns nil when nobody qualifies.
func (d *Directory) RandomCharacter(excludeWerewolf bool, exclude ...*Character) *Character {
	var candidates []*Character
	for _, c := range d.characters {
		if !c.IsAlive {
			continue
		}
		if excludeWerewolf && c.IsWerewolf {
			continue
		}
		if containsCharacter(exclude, c) {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[d.rng.Intn(len(candidates))]
}

// DescriptorMatchCount counts the characters other than the werewolf that
// share the werewolf's value for desc. Zero means the value identifies the
// werewolf uniquely.
func (d *Directory) DescriptorMatchCount(desc Descriptor) int {
	if d.werewolf == nil {
		return 0
	}
	value := d.werewolf.Descriptor(desc)
	if value == "" {
		return 0
	}
	n := 0
	for _, c := range d.characters {
		if c != d.werewolf && c.Descriptor(desc) == value {
			n++
		}
	}
	return n
}

func (d *Directory) MarkGhostCluesGenerated(c *Character) {
	c.HasGeneratedGhostClues = true
}

func containsCharacter(list []*Character, target *Character) bool {
	for _, c := range list {
		if c == target {
			return true
		}
	}
	return false
}
