package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cluegen/internal/clue"
	"cluegen/internal/config"
	"cluegen/internal/store"
)

func journalCluesCmd() *cobra.Command {
	var giver, clueType string
	cmd := &cobra.Command{
		Use:   "clues <run-id>",
		Short: "List the clues of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalClues(args[0], giver, clueType)
		},
	}
	cmd.Flags().StringVar(&giver, "giver", "", "Only clues given by this character")
	cmd.Flags().StringVar(&clueType, "type", "", "Only clues of this type (e.g. saw_in_location)")
	return cmd
}

func runJournalClues(runID, giver, clueType string) error {
	ctx := context.Background()

	if clueType != "" {
		if _, err := clue.ParseType(clueType); err != nil {
			return err
		}
	}

	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	clues, err := db.ListClues(ctx, runID, giver)
	if err != nil {
		return err
	}
	clues, err = filterCluesByType(clues, clueType)
	if err != nil {
		return err
	}
	if len(clues) == 0 {
		fmt.Fprintln(os.Stdout, "No clues found.")
		return nil
	}

	for _, c := range clues {
		marker := ""
		if !c.IsTruth {
			marker = " (lie)"
		}
		fmt.Fprintf(os.Stdout, "[%d/%d] %s%s\n", c.Day, c.Phase, c.Text, marker)
	}
	return nil
}

// filterCluesByType keeps the records of the named clue type. An empty name
// keeps everything.
func filterCluesByType(records []store.ClueRecord, name string) ([]store.ClueRecord, error) {
	if name == "" {
		return records, nil
	}
	typ, err := clue.ParseType(name)
	if err != nil {
		return nil, err
	}
	var kept []store.ClueRecord
	for _, r := range records {
		if r.Type == typ.String() {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
