package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cluegen/internal/simulate"
	"cluegen/internal/telemetry"
)

func simulateCmd() *cobra.Command {
	var options simulate.Options
	var printClues bool
	var verbose bool
	var noJournal bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play headless games and journal every clue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				options.Logger = log.New(os.Stderr, "", log.LstdFlags)
			}
			options.KeepClues = printClues
			return runSimulate(options, noJournal)
		},
	}
	cmd.Flags().IntVar(&options.Games, "games", 1, "Number of games to play")
	cmd.Flags().IntVar(&options.Days, "days", simulate.DefaultDays, "Day limit per game")
	cmd.Flags().Uint64Var(&options.Seed, "seed", 0, "Seed of the first game (0 picks one)")
	cmd.Flags().BoolVar(&printClues, "print", false, "Print every clue as it would be spoken")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log lies, kills and run summaries to stderr")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "Do not write runs to the database")
	return cmd
}

func runSimulate(options simulate.Options, noJournal bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "cluegen")
	if err != nil {
		return err
	}
	defer shutdown(context.Background())

	cfg, pop, err := loadProject(configPath)
	if err != nil {
		return err
	}

	var journal simulate.Journal
	if !noJournal {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(ctx)
		journal = db
	}

	result, err := simulate.Run(ctx, cfg, pop, journal, options)
	if err != nil {
		return err
	}

	if options.KeepClues {
		printRunClues(os.Stdout, result.Runs)
	}

	wins := 0
	for _, run := range result.Runs {
		if run.WerewolfWon {
			wins++
		}
	}

	fmt.Fprintln(os.Stdout, "Simulation complete.")
	fmt.Fprintf(os.Stdout, "  Games played:    %d\n", len(result.Runs))
	fmt.Fprintf(os.Stdout, "  Werewolf wins:   %d\n", wins)
	fmt.Fprintf(os.Stdout, "  Clues generated: %d\n", result.CluesGenerated)
	fmt.Fprintf(os.Stdout, "  Lies generated:  %d\n", result.LiesGenerated)
	fmt.Fprintf(os.Stdout, "  Ghost clues:     %d\n", result.GhostClues)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("simulation completed with errors")
	}

	return nil
}

func printRunClues(out io.Writer, runs []simulate.RunSummary) {
	for _, run := range runs {
		fmt.Fprintf(out, "Run %s (seed %d, werewolf %s)\n", run.ID, run.Seed, run.Werewolf)
		phase := 0
		for _, rec := range run.Records {
			if rec.Phase != phase {
				phase = rec.Phase
				fmt.Fprintf(out, "  Phase %d, day %d\n", rec.Phase, rec.Day)
			}
			marker := ""
			if !rec.IsTruth {
				marker = " (lie)"
			}
			fmt.Fprintf(out, "    %s%s\n", rec.Text, marker)
		}
		fmt.Fprintln(out, "")
	}
}
