package store

import "time"

type RunInput struct {
	ID          string
	Project     string
	Seed        uint64
	Days        int
	Phases      int
	Deaths      int
	Werewolf    string
	WerewolfWon bool
	CreatedAt   time.Time
}

type Run struct {
	RunInput
	Clues int
	Lies  int
}

type ClueRecord struct {
	Phase             int
	Day               int
	Giver             string
	GiverIndex        int
	Subject           string
	SubjectIndex      int
	SubjectIsWerewolf bool
	Type              string
	Location          int
	LocationName      string
	IsTruth           bool
	GhostDescriptor   string
	Text              string
}

// ClueStat aggregates one clue type. Run-wide when the run filter is empty.
type ClueStat struct {
	Type            string
	Total           int
	Lies            int
	AboutWerewolf   int
	TruthfulPercent float64
}

// DefaultRunLimit bounds ListRuns when the caller passes a non-positive limit.
const DefaultRunLimit = 20

func TruthfulPercent(total, lies int) float64 {
	if total == 0 {
		return 0
	}
	return float64(total-lies) / float64(total) * 100
}
