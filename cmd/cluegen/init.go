package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cluegen/internal/config"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new cluegen project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(configPath, projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(path, projectName string) error {
	populationPath := filepath.Join(filepath.Dir(path), "population.yaml")
	for _, p := range []string{path, populationPath} {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%s already exists", p)
		}
	}

	configContents := fmt.Sprintf(config.DefaultProjectConfigYAML, projectName)
	if err := os.WriteFile(path, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.WriteFile(populationPath, []byte(config.DefaultPopulationYAML), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", populationPath, err)
	}

	return nil
}
