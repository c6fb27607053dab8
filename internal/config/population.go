package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Population models population.yaml: the town's locations and residents.
type Population struct {
	Version    int             `yaml:"version"`
	Locations  []string        `yaml:"locations"`
	Characters []CharacterSpec `yaml:"characters"`
}

type CharacterSpec struct {
	Name        string            `yaml:"name"`
	Werewolf    bool              `yaml:"werewolf"`
	Clothing    string            `yaml:"clothing_condition"`
	Descriptors map[string]string `yaml:"descriptors"`
}

func LoadPopulation(path string) (*Population, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading population: %w", err)
	}

	var pop Population
	if err := yaml.Unmarshal(data, &pop); err != nil {
		return nil, fmt.Errorf("loading population: %w", err)
	}

	if err := validatePopulation(&pop); err != nil {
		return nil, fmt.Errorf("loading population: %w", err)
	}

	return &pop, nil
}

// validatePopulation only checks the file is structurally usable; game
// balance checks live in the validate package.
func validatePopulation(p *Population) error {
	if p.Version != 1 {
		return fmt.Errorf("unsupported version: %d", p.Version)
	}
	if len(p.Locations) == 0 {
		return fmt.Errorf("at least one location is required")
	}
	for i, loc := range p.Locations {
		if strings.TrimSpace(loc) == "" {
			return fmt.Errorf("location %d name is required", i)
		}
	}
	if len(p.Characters) == 0 {
		return fmt.Errorf("at least one character is required")
	}
	for i, c := range p.Characters {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("character %d name is required", i)
		}
	}
	return nil
}
