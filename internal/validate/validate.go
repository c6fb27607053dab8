// Package validate checks a population for problems that would make the
// clue engine misbehave or make games unfair.
package validate

import (
	"fmt"
	"strings"

	"cluegen/internal/config"
	"cluegen/internal/town"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeWerewolfCount       = "werewolf_count"
	codeTooFewCharacters    = "too_few_characters"
	codeDuplicateName       = "duplicate_name"
	codeDuplicateLocation   = "duplicate_location"
	codeUnknownDescriptor   = "descriptor_unknown"
	codeInvalidClothing     = "clothing_condition_invalid"
	codeMissingDescriptor   = "werewolf_descriptor_missing"
	codeUniqueOccupation    = "werewolf_occupation_unique"
	codeUniqueDescriptors   = "werewolf_descriptors_unique"
	codeLateGameUnreachable = "late_game_unreachable"
)

const minCharacters = 3

type Issue struct {
	Severity  Severity
	Code      string
	Message   string
	Character string
}

type Report struct {
	Issues []Issue
}

func (r *Report) Count(severity Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Run checks pop against tuning. Structural problems are errors; balance
// concerns are warnings.
func Run(pop *config.Population, tuning config.Tuning) (*Report, error) {
	if pop == nil {
		return nil, fmt.Errorf("population is required")
	}

	issues := make([]Issue, 0)
	issues = append(issues, validateCharacters(pop)...)
	issues = append(issues, validateLocations(pop)...)

	werewolves := werewolfSpecs(pop)
	if len(werewolves) != 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeWerewolfCount,
			Message:  fmt.Sprintf("expected exactly one werewolf, found %d", len(werewolves)),
		})
	} else {
		issues = append(issues, validateWerewolf(pop, werewolves[0], tuning)...)
	}

	if maxDeaths := len(pop.Characters) - 1; tuning.AllowLateGameUniqueIdentifiers && tuning.DeathsToClassifyLateGame > maxDeaths {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeLateGameUnreachable,
			Message:  fmt.Sprintf("deaths_to_classify_late_game is %d but at most %d characters can die", tuning.DeathsToClassifyLateGame, maxDeaths),
		})
	}

	return &Report{Issues: issues}, nil
}

func validateCharacters(pop *config.Population) []Issue {
	var issues []Issue
	if len(pop.Characters) < minCharacters {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeTooFewCharacters,
			Message:  fmt.Sprintf("at least %d characters are required, found %d", minCharacters, len(pop.Characters)),
		})
	}

	names := make(map[string]bool, len(pop.Characters))
	for _, c := range pop.Characters {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if names[key] {
			issues = append(issues, Issue{
				Severity:  SeverityError,
				Code:      codeDuplicateName,
				Message:   "duplicate character name",
				Character: c.Name,
			})
		}
		names[key] = true

		for key := range c.Descriptors {
			if _, err := town.ParseDescriptor(key); err != nil {
				issues = append(issues, Issue{
					Severity:  SeverityError,
					Code:      codeUnknownDescriptor,
					Message:   fmt.Sprintf("unknown descriptor: %s", key),
					Character: c.Name,
				})
			}
		}
		if _, err := town.ParseClothingCondition(c.Clothing); err != nil {
			issues = append(issues, Issue{
				Severity:  SeverityError,
				Code:      codeInvalidClothing,
				Message:   fmt.Sprintf("invalid clothing condition: %s", c.Clothing),
				Character: c.Name,
			})
		}
	}
	return issues
}

func validateLocations(pop *config.Population) []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(pop.Locations))
	for _, loc := range pop.Locations {
		key := strings.ToLower(strings.TrimSpace(loc))
		if seen[key] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDuplicateLocation,
				Message:  fmt.Sprintf("duplicate location: %s", loc),
			})
		}
		seen[key] = true
	}
	return issues
}

func validateWerewolf(pop *config.Population, werewolf config.CharacterSpec, tuning config.Tuning) []Issue {
	var issues []Issue

	unique := 0
	for _, d := range town.DescriptorsExcluding(town.Occupation) {
		value := descriptorValue(werewolf, d)
		if value == "" {
			issues = append(issues, Issue{
				Severity:  SeverityWarn,
				Code:      codeMissingDescriptor,
				Message:   fmt.Sprintf("werewolf has no %s; ghost clues about it will be empty", d),
				Character: werewolf.Name,
			})
			continue
		}
		if matchCount(pop, werewolf, d) == 0 {
			unique++
		}
	}
	if unique == len(town.DescriptorsExcluding(town.Occupation)) {
		issues = append(issues, Issue{
			Severity:  SeverityWarn,
			Code:      codeUniqueDescriptors,
			Message:   "every werewolf descriptor is unique; the first ghost clue identifies them",
			Character: werewolf.Name,
		})
	}

	occupation := descriptorValue(werewolf, town.Occupation)
	if occupation != "" && matchCount(pop, werewolf, town.Occupation) == 0 {
		message := "werewolf occupation is unique and will never be revealed"
		if tuning.AllowLateGameUniqueIdentifiers {
			message = fmt.Sprintf("werewolf occupation is unique; only revealed after %d deaths", tuning.DeathsToClassifyLateGame)
		}
		issues = append(issues, Issue{
			Severity:  SeverityWarn,
			Code:      codeUniqueOccupation,
			Message:   message,
			Character: werewolf.Name,
		})
	}

	return issues
}

func werewolfSpecs(pop *config.Population) []config.CharacterSpec {
	var out []config.CharacterSpec
	for _, c := range pop.Characters {
		if c.Werewolf {
			out = append(out, c)
		}
	}
	return out
}

// matchCount counts the other characters sharing werewolf's value for d.
func matchCount(pop *config.Population, werewolf config.CharacterSpec, d town.Descriptor) int {
	value := descriptorValue(werewolf, d)
	n := 0
	for _, c := range pop.Characters {
		if c.Werewolf || c.Name == werewolf.Name {
			continue
		}
		if descriptorValue(c, d) == value {
			n++
		}
	}
	return n
}

func descriptorValue(c config.CharacterSpec, d town.Descriptor) string {
	for key, value := range c.Descriptors {
		if parsed, err := town.ParseDescriptor(key); err == nil && parsed == d {
			return value
		}
	}
	return ""
}
