package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "cluegen",
		Short: "Clue generation engine for a werewolf deduction game",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "cluegen.yaml", "Project config file")
	root.AddCommand(initCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(simulateCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(journalCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
