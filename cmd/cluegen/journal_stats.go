package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cluegen/internal/clue"
	"cluegen/internal/config"
	"cluegen/internal/store"
)

func journalStatsCmd() *cobra.Command {
	var runID string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per clue type totals and lie rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalStats(runID)
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "Restrict to one run (default: every run)")
	return cmd
}

func runJournalStats(runID string) error {
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

	stats, err := db.ClueStats(ctx, runID)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(os.Stdout, "No clues found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tTOTAL\tLIES\tABOUT WEREWOLF\tTRUTHFUL")
	for _, s := range orderByClueType(stats) {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f%%\n", s.Type, s.Total, s.Lies, s.AboutWerewolf, s.TruthfulPercent)
	}
	return w.Flush()
}

// orderByClueType lists stats in clue type declaration order. Types the
// engine does not know follow in their original order.
func orderByClueType(stats []store.ClueStat) []store.ClueStat {
	byType := make(map[string]store.ClueStat, len(stats))
	for _, s := range stats {
		byType[s.Type] = s
	}
	ordered := make([]store.ClueStat, 0, len(stats))
	for _, typ := range clue.AllTypes() {
		if s, ok := byType[typ.String()]; ok {
			ordered = append(ordered, s)
			delete(byType, typ.String())
		}
	}
	for _, s := range stats {
		if _, ok := byType[s.Type]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered
}
