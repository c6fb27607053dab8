package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cluegen/internal/config"
	"cluegen/internal/store"
)

func journalRunsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List journaled runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalRuns(limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", store.DefaultRunLimit, "Maximum runs to list")
	return cmd
}

func runJournalRuns(limit int) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs found.")
		return nil
	}

	for _, run := range runs {
		outcome := "town survived"
		if run.WerewolfWon {
			outcome = "werewolf won"
		}
		fmt.Fprintf(os.Stdout, "%s  %s  seed=%d phases=%d deaths=%d clues=%d lies=%d  %s\n",
			run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.Seed, run.Phases, run.Deaths, run.Clues, run.Lies, outcome)
	}
	return nil
}
