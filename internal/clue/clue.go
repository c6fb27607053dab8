package clue

import (
	"fmt"

	"cluegen/internal/town"
)

// NoLocation is the location of clues that carry none, such as SawAtWork.
const NoLocation = town.NoLocation

type Type int

const (
	SawInLocation Type = iota
	SawPassingBy
	SawAtWork
	CommentFacialFeatures
	CommentClothing
	CommentGossip
	VisualFromGhost
)

var typeNames = []string{
	"saw_in_location",
	"saw_passing_by",
	"saw_at_work",
	"comment_facial_features",
	"comment_clothing",
	"comment_gossip",
	"visual_from_ghost",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

func AllTypes() []Type {
	return []Type{SawInLocation, SawPassingBy, SawAtWork, CommentFacialFeatures, CommentClothing, CommentGossip, VisualFromGhost}
}

func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown clue type: %q", name)
}

// Clue is one piece of testimony. It is built once by the engine and not
// mutated afterwards, except for Generate filling in Emotes.
type Clue struct {
	Type            Type
	GivenBy         *town.Character
	RelatesTo       *town.Character
	LocationSeenIn  int
	IsTruth         bool
	GhostDescriptor town.Descriptor
	Emotes          []Emote
}

func New(t Type, givenBy, relatesTo *town.Character, location int) *Clue {
	if givenBy == nil || relatesTo == nil {
		panic("clue: giver and subject are required")
	}
	return &Clue{
		Type:            t,
		GivenBy:         givenBy,
		RelatesTo:       relatesTo,
		LocationSeenIn:  location,
		IsTruth:         true,
		GhostDescriptor: town.InvalidDescriptor,
	}
}

func NewLie(t Type, givenBy, relatesTo *town.Character, location int) *Clue {
	c := New(t, givenBy, relatesTo, location)
	c.IsTruth = false
	return c
}

// NewGhostVisual builds a VisualFromGhost clue. Only the dead give these.
func NewGhostVisual(ghost, werewolf *town.Character, descriptor town.Descriptor, truth bool) *Clue {
	if ghost != nil && ghost.IsAlive {
		panic(fmt.Sprintf("clue: ghost clue given by living character %s", ghost))
	}
	c := New(VisualFromGhost, ghost, werewolf, ghost.DeathLocation)
	c.GhostDescriptor = descriptor
	c.IsTruth = truth
	return c
}

type LocationNamer interface {
	Name(id int) string
}

// Describe renders the testimony as a line of text.
func (c *Clue) Describe(locations LocationNamer) string {
	where := locations.Name(c.LocationSeenIn)
	var text string
	switch c.Type {
	case SawInLocation:
		text = fmt.Sprintf("I saw %s at the %s", c.RelatesTo.Name, where)
	case SawPassingBy:
		text = fmt.Sprintf("%s passed me on the way to the %s", c.RelatesTo.Name, where)
	case SawAtWork:
		text = fmt.Sprintf("%s was hard at work", c.RelatesTo.Name)
	case CommentFacialFeatures:
		text = fmt.Sprintf("%s looked odd at the %s, that %s", c.RelatesTo.Name, where, c.RelatesTo.Descriptor(town.Facial))
	case CommentClothing:
		text = fmt.Sprintf("%s's %s was %s at the %s", c.RelatesTo.Name, c.RelatesTo.Descriptor(town.Clothing), c.RelatesTo.Clothing, where)
	case CommentGossip:
		text = fmt.Sprintf("I hear %s is at the %s", c.RelatesTo.Name, where)
	case VisualFromGhost:
		text = fmt.Sprintf("on night %d my killer's %s was %s", c.GivenBy.DiedOnDay, c.GhostDescriptor, c.RelatesTo.Descriptor(c.GhostDescriptor))
	default:
		text = "..."
	}
	return fmt.Sprintf("%s: %s", c.GivenBy.Name, text)
}
