package clue

import "cluegen/internal/town"

type EmoteKind int

const (
	EmoteAction EmoteKind = iota
	EmoteCharacter
	EmoteLocation
	EmoteDescriptor
)

// Emote is one icon in a clue's speech bubble. Value holds the action name,
// the character index, the location id or the descriptor value.
type Emote struct {
	Kind  EmoteKind
	Value string
	Index int
}

var actionEmotes = map[Type]string{
	SawInLocation:         "eyes",
	SawPassingBy:          "footsteps",
	SawAtWork:             "work",
	CommentFacialFeatures: "face",
	CommentClothing:       "shirt",
	CommentGossip:         "speech",
	VisualFromGhost:       "ghost",
}

// Generate derives the emote representation. It is idempotent.
func (c *Clue) Generate() []Emote {
	if c.Emotes != nil {
		return c.Emotes
	}

	emotes := []Emote{
		{Kind: EmoteAction, Value: actionEmotes[c.Type], Index: -1},
		{Kind: EmoteCharacter, Value: c.RelatesTo.Name, Index: c.RelatesTo.Index},
	}

	switch {
	case c.Type == VisualFromGhost:
		emotes = append(emotes, Emote{Kind: EmoteDescriptor, Value: c.RelatesTo.Descriptor(c.GhostDescriptor), Index: int(c.GhostDescriptor)})
	case c.Type == SawAtWork:
		emotes = append(emotes, Emote{Kind: EmoteDescriptor, Value: c.RelatesTo.WorkType(), Index: int(town.Occupation)})
	case c.LocationSeenIn != NoLocation:
		emotes = append(emotes, Emote{Kind: EmoteLocation, Index: c.LocationSeenIn})
	}

	c.Emotes = emotes
	return emotes
}
