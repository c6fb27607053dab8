package main

import "github.com/spf13/cobra"

func journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect journaled runs and clues",
	}
	cmd.AddCommand(journalRunsCmd())
	cmd.AddCommand(journalStatsCmd())
	cmd.AddCommand(journalCluesCmd())
	cmd.AddCommand(journalSQLCmd())
	return cmd
}
