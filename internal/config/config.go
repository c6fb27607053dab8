package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project    string         `yaml:"project"`
	Version    int            `yaml:"version"`
	Population string         `yaml:"population" env:"CLUEGEN_POPULATION"`
	Database   DatabaseConfig `yaml:"database"`
	Tuning     Tuning         `yaml:"tuning"`
	Pacing     PacingConfig   `yaml:"pacing"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"CLUEGEN_DATABASE_DSN"`
}

// Tuning holds the clue generation knobs. Chances are percentages in [0, 100].
type Tuning struct {
	CharacterLieChance             float64 `yaml:"character_lie_chance" env:"CLUEGEN_CHARACTER_LIE_CHANCE"`
	WerewolfLieChance              float64 `yaml:"werewolf_lie_chance" env:"CLUEGEN_WEREWOLF_LIE_CHANCE"`
	GhostLieChance                 float64 `yaml:"ghost_lie_chance" env:"CLUEGEN_GHOST_LIE_CHANCE"`
	GhostLieChanceFalloff          float64 `yaml:"ghost_lie_chance_falloff" env:"CLUEGEN_GHOST_LIE_CHANCE_FALLOFF"`
	GhostLieChanceFalloffPerDay    float64 `yaml:"ghost_lie_chance_falloff_per_day" env:"CLUEGEN_GHOST_LIE_CHANCE_FALLOFF_PER_DAY"`
	AllowLateGameUniqueIdentifiers bool    `yaml:"allow_late_game_unique_identifiers" env:"CLUEGEN_ALLOW_LATE_GAME_UNIQUE_IDENTIFIERS"`
	DeathsToClassifyLateGame       int     `yaml:"deaths_to_classify_late_game" env:"CLUEGEN_DEATHS_TO_CLASSIFY_LATE_GAME"`
}

type PacingConfig struct {
	Yield time.Duration `yaml:"yield" env:"CLUEGEN_PACING_YIELD"`
}

func DefaultTuning() Tuning {
	return Tuning{
		CharacterLieChance:             10,
		WerewolfLieChance:              40,
		GhostLieChance:                 20,
		GhostLieChanceFalloff:          5,
		GhostLieChanceFalloffPerDay:    2,
		AllowLateGameUniqueIdentifiers: true,
		DeathsToClassifyLateGame:       4,
	}
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	cfg := ProjectConfig{Tuning: DefaultTuning()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: parse env: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Population) == "" {
		return fmt.Errorf("population path is required")
	}
	if cfg.Pacing.Yield < 0 {
		return fmt.Errorf("pacing yield must not be negative")
	}
	return cfg.Tuning.Validate()
}

func (t Tuning) Validate() error {
	percents := []struct {
		name  string
		value float64
	}{
		{"character_lie_chance", t.CharacterLieChance},
		{"werewolf_lie_chance", t.WerewolfLieChance},
		{"ghost_lie_chance", t.GhostLieChance},
	}
	for _, p := range percents {
		if p.value < 0 || p.value > 100 {
			return fmt.Errorf("tuning %s must be within [0, 100], got %v", p.name, p.value)
		}
	}
	if t.GhostLieChanceFalloff < 0 {
		return fmt.Errorf("tuning ghost_lie_chance_falloff must not be negative")
	}
	if t.GhostLieChanceFalloffPerDay < 0 {
		return fmt.Errorf("tuning ghost_lie_chance_falloff_per_day must not be negative")
	}
	if t.DeathsToClassifyLateGame < 0 {
		return fmt.Errorf("tuning deaths_to_classify_late_game must not be negative")
	}
	return nil
}
