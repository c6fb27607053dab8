package main

import (
	"path/filepath"

	"cluegen/internal/config"
)

// loadProject reads the project config and the population it points at. A
// relative population path is resolved against the config file's directory.
func loadProject(path string) (*config.ProjectConfig, *config.Population, error) {
	cfg, err := config.LoadProjectConfig(path)
	if err != nil {
		return nil, nil, err
	}

	populationPath := cfg.Population
	if !filepath.IsAbs(populationPath) {
		populationPath = filepath.Join(filepath.Dir(path), populationPath)
	}

	pop, err := config.LoadPopulation(populationPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, pop, nil
}
