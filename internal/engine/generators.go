package engine

import (
	"fmt"

	"cluegen/internal/clue"
	"cluegen/internal/observation"
	"cluegen/internal/town"
)

const (
	baseWeight = 100.0

	passingByWerewolfTilt = 2.0
	featureWerewolfTilt   = 1.2
	bloodyClothingTilt    = 2.0
	tornClothingTilt      = 1.5
)

// werewolfReportTilt favours the werewolf for the first location reports of
// a phase and stops once two have been made.
func werewolfReportTilt(reports int) float64 {
	switch reports {
	case 0:
		return 8
	case 1:
		return 4
	default:
		return 1
	}
}

func (e *Engine) generateSawInLocationClue(phase *clue.Phase, c *town.Character, lie bool) {
	if lie {
		e.addLie(phase, c, clue.SawInLocation, e.locations.RandomLocation())
		return
	}

	seen := phase.Observations.Seen(c)
	if len(seen) == 0 {
		return
	}

	tilt := werewolfReportTilt(e.werewolfReports)
	pick := seen[e.rng.Select(sightingWeights(seen, func(s observation.Sighting) float64 {
		if s.Subject.IsWerewolf {
			return tilt
		}
		return 1
	}))]

	if pick.Subject.IsWerewolf {
		e.werewolfReports++
	}
	e.addSighting(phase, c, clue.SawInLocation, pick)
}

func (e *Engine) generateSawPassingByClue(phase *clue.Phase, c *town.Character, lie bool) {
	if lie {
		e.addLie(phase, c, clue.SawPassingBy, e.locations.RandomLocation())
		return
	}

	passing := phase.Observations.PassingBy(c)
	if len(passing) == 0 {
		return
	}

	pick := passing[e.rng.Select(sightingWeights(passing, func(s observation.Sighting) float64 {
		if s.Subject.IsWerewolf {
			return passingByWerewolfTilt
		}
		return 1
	}))]
	e.addSighting(phase, c, clue.SawPassingBy, pick)
}

func (e *Engine) generateSawAtWorkClue(phase *clue.Phase, c *town.Character, lie bool) {
	if lie {
		e.addLie(phase, c, clue.SawAtWork, clue.NoLocation)
		return
	}

	var working []*town.Character
	for _, s := range phase.Observations.Seen(c) {
		if s.Subject.HasOccupation() {
			working = append(working, s.Subject)
		}
	}
	if len(working) == 0 {
		return
	}

	subject := working[e.rng.Intn(len(working))]
	phase.Add(c, clue.New(clue.SawAtWork, c, subject, clue.NoLocation))
}

func (e *Engine) generateCommentFacialClue(phase *clue.Phase, c *town.Character, lie bool) {
	if lie {
		e.addLie(phase, c, clue.CommentFacialFeatures, e.locations.RandomLocation())
		return
	}

	seen := phase.Observations.Seen(c)
	if len(seen) == 0 {
		return
	}

	pick := seen[e.rng.Select(sightingWeights(seen, func(s observation.Sighting) float64 {
		if s.Subject.IsWerewolf {
			return featureWerewolfTilt
		}
		return 1
	}))]
	e.addSighting(phase, c, clue.CommentFacialFeatures, pick)
}

func (e *Engine) generateCommentClothingClue(phase *clue.Phase, c *town.Character, lie bool) {
	if lie {
		e.addLie(phase, c, clue.CommentClothing, e.locations.RandomLocation())
		return
	}

	seen := phase.Observations.Seen(c)
	if len(seen) == 0 {
		return
	}

	pick := seen[e.rng.Select(sightingWeights(seen, clothingTilt))]
	e.addSighting(phase, c, clue.CommentClothing, pick)
}

// clothingTilt stacks the clothing condition multiplicatively on top of the
// werewolf tilt.
func clothingTilt(s observation.Sighting) float64 {
	tilt := 1.0
	if s.Subject.IsWerewolf {
		tilt = featureWerewolfTilt
	}
	switch s.Subject.Clothing {
	case town.ConditionBloody:
		tilt *= bloodyClothingTilt
	case town.ConditionTorn:
		tilt *= tornClothingTilt
	}
	return tilt
}

func (e *Engine) generateGossipClue(phase *clue.Phase, c *town.Character) {
	var subject *town.Character
	if phase.Observations.Observed(c) {
		seen := phase.Observations.Seen(c)
		subject = seen[e.rng.Intn(len(seen))].Subject
	} else {
		subject = e.population.RandomCharacter(false, c)
	}
	if subject == nil {
		return
	}

	location := subject.CurrentLocation
	if !e.locations.IsValidLocation(location) {
		location = e.locations.RandomLocation()
	}
	phase.Add(c, clue.New(clue.CommentGossip, c, subject, location))
}

// sightingWeights spreads baseWeight evenly over the sightings and applies
// the per-subject tilt.
func sightingWeights(sightings []observation.Sighting, tilt func(observation.Sighting) float64) []float64 {
	average := baseWeight / float64(len(sightings))
	weights := make([]float64, len(sightings))
	for i, s := range sightings {
		weights[i] = average * tilt(s)
	}
	return weights
}

func (e *Engine) addSighting(phase *clue.Phase, c *town.Character, t clue.Type, s observation.Sighting) {
	if s.Subject == nil {
		panic(fmt.Sprintf("engine: %s sighting by %s has no subject", t, c))
	}
	if !e.locations.IsValidLocation(s.Location) {
		panic(fmt.Sprintf("engine: %s sighting by %s has invalid location %d", t, c, s.Location))
	}
	phase.Add(c, clue.New(t, c, s.Subject, s.Location))
}

// addLie records a lie about a random living innocent other than c. Nothing
// is added when there is nobody to lie about.
func (e *Engine) addLie(phase *clue.Phase, c *town.Character, t clue.Type, location int) {
	subject := e.population.RandomCharacter(true, c)
	if subject == nil {
		return
	}
	e.logger.Printf("%s generating %s lie about %s", c, t, subject)
	phase.Add(c, clue.NewLie(t, c, subject, location))
}
