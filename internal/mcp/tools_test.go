package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"cluegen/internal/config"
	"cluegen/internal/store"
)

type mockStore struct {
	runs      []store.Run
	clues     []store.ClueRecord
	stats     []store.ClueStat
	savedRuns []store.RunInput
	saved     map[string][]store.ClueRecord

	lastListRunsLimit int
	lastStatsRunID    string
	lastCluesRunID    string
	lastCluesGiver    string
}

func (m *mockStore) Close(ctx context.Context) error { return nil }

func (m *mockStore) EnsureSchema(ctx context.Context) error { return nil }

func (m *mockStore) SaveRun(ctx context.Context, run store.RunInput) error {
	m.savedRuns = append(m.savedRuns, run)
	return nil
}

func (m *mockStore) SaveClues(ctx context.Context, runID string, clues []store.ClueRecord) error {
	if m.saved == nil {
		m.saved = make(map[string][]store.ClueRecord)
	}
	m.saved[runID] = append(m.saved[runID], clues...)
	return nil
}

func (m *mockStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	m.lastListRunsLimit = limit
	return m.runs, nil
}

func (m *mockStore) ListClues(ctx context.Context, runID, giver string) ([]store.ClueRecord, error) {
	m.lastCluesRunID = runID
	m.lastCluesGiver = giver
	return m.clues, nil
}

func (m *mockStore) ClueStats(ctx context.Context, runID string) ([]store.ClueStat, error) {
	m.lastStatsRunID = runID
	return m.stats, nil
}

func (m *mockStore) RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	return nil, nil
}

func testConfig() *config.ProjectConfig {
	return &config.ProjectConfig{
		Project:    "test",
		Version:    1,
		Population: "population.yaml",
		Tuning:     config.DefaultTuning(),
	}
}

func testPopulation() *config.Population {
	return &config.Population{
		Version:   1,
		Locations: []string{"mill", "tavern"},
		Characters: []config.CharacterSpec{
			{Name: "Agnes", Descriptors: map[string]string{"occupation": "baker", "facial": "freckles"}},
			{Name: "Bram", Werewolf: true, Descriptors: map[string]string{"occupation": "miller", "facial": "beard"}},
			{Name: "Cora", Descriptors: map[string]string{"occupation": "miller", "facial": "beard"}},
			{Name: "Dietrich", Descriptors: map[string]string{"occupation": "smith", "facial": "scar"}},
		},
	}
}

func TestSimulateGame(t *testing.T) {
	db := &mockStore{}
	server := NewServer(testConfig(), testPopulation(), db, "test")

	_, output, err := server.handleSimulateGame(context.Background(), nil, SimulateGameInput{Games: 2, Days: 2, Seed: 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %+v", output)
	}
	if len(db.savedRuns) != 2 {
		t.Fatalf("expected runs to be journaled, got %d", len(db.savedRuns))
	}
	if output.Runs[0].Seed != 99 || output.Runs[1].Seed != 100 {
		t.Fatalf("unexpected seeds: %d, %d", output.Runs[0].Seed, output.Runs[1].Seed)
	}
	if len(db.saved[output.Runs[0].ID]) != output.Runs[0].Clues {
		t.Fatalf("expected journaled clues to match the summary")
	}
}

func TestSimulateGame_GamesBounds(t *testing.T) {
	server := NewServer(testConfig(), testPopulation(), &mockStore{}, "test")

	for _, games := range []int{-1, maxGames + 1} {
		_, _, err := server.handleSimulateGame(context.Background(), nil, SimulateGameInput{Games: games, Days: 1})
		if err == nil {
			t.Fatalf("expected error for %d games", games)
		}
		if !strings.Contains(err.Error(), "omitted for one game") {
			t.Fatalf("unexpected error message %q", err)
		}
	}

	_, output, err := server.handleSimulateGame(context.Background(), nil, SimulateGameInput{Days: 1, Seed: 3})
	if err != nil {
		t.Fatalf("expected omitted games to be accepted, got %v", err)
	}
	if len(output.Runs) != 1 {
		t.Fatalf("expected omitted games to play one game, got %d", len(output.Runs))
	}
}

func TestListRuns(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := &mockStore{
		runs: []store.Run{{
			RunInput: store.RunInput{ID: "run-1", Seed: 7, Phases: 4, Werewolf: "Bram", CreatedAt: created},
			Clues:    12,
			Lies:     2,
		}},
	}
	server := NewServer(testConfig(), testPopulation(), db, "test")

	_, output, err := server.handleListRuns(context.Background(), nil, ListRunsInput{Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Runs) != 1 || output.Runs[0].ID != "run-1" || output.Runs[0].Lies != 2 {
		t.Fatalf("unexpected list output: %+v", output)
	}
	if output.Runs[0].CreatedAt != "2026-03-01T12:00:00Z" {
		t.Fatalf("unexpected created_at: %q", output.Runs[0].CreatedAt)
	}
	if db.lastListRunsLimit != 5 {
		t.Fatalf("unexpected limit %d", db.lastListRunsLimit)
	}
}

func TestClueStats(t *testing.T) {
	db := &mockStore{
		stats: []store.ClueStat{{Type: "saw_in_location", Total: 10, Lies: 1, AboutWerewolf: 4, TruthfulPercent: 90}},
	}
	server := NewServer(testConfig(), testPopulation(), db, "test")

	_, output, err := server.handleClueStats(context.Background(), nil, ClueStatsInput{RunID: "run-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Stats) != 1 || output.Stats[0].TruthfulPercent != 90 {
		t.Fatalf("unexpected stats output: %+v", output)
	}
	if db.lastStatsRunID != "run-1" {
		t.Fatalf("unexpected run filter %q", db.lastStatsRunID)
	}
}

func TestListClues(t *testing.T) {
	db := &mockStore{
		clues: []store.ClueRecord{{Phase: 1, Day: 1, Giver: "Agnes", Subject: "Bram", Type: "saw_in_location", LocationName: "mill", IsTruth: true, Text: "Agnes: I saw Bram at the mill"}},
	}
	server := NewServer(testConfig(), testPopulation(), db, "test")

	_, output, err := server.handleListClues(context.Background(), nil, ListCluesInput{RunID: "run-1", Giver: "agnes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Clues) != 1 || output.Clues[0].Location != "mill" {
		t.Fatalf("unexpected clues output: %+v", output)
	}
	if db.lastCluesRunID != "run-1" || db.lastCluesGiver != "agnes" {
		t.Fatalf("unexpected clue params")
	}
}

func TestListClues_RequiresRun(t *testing.T) {
	server := NewServer(testConfig(), testPopulation(), &mockStore{}, "test")

	if _, _, err := server.handleListClues(context.Background(), nil, ListCluesInput{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetTuning(t *testing.T) {
	cfg := testConfig()
	cfg.Tuning.GhostLieChance = 35
	server := NewServer(cfg, testPopulation(), &mockStore{}, "test")

	_, output, err := server.handleGetTuning(context.Background(), nil, GetTuningInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.GhostLieChance != 35 || output.DeathsToClassifyLateGame != 4 {
		t.Fatalf("unexpected tuning output: %+v", output)
	}
}

func TestValidatePopulation(t *testing.T) {
	pop := testPopulation()
	pop.Characters[0].Werewolf = true
	server := NewServer(testConfig(), pop, &mockStore{}, "test")

	_, output, err := server.handleValidatePopulation(context.Background(), nil, ValidatePopulationInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, issue := range output.Issues {
		if issue.Code == "werewolf_count" && issue.Severity == "error" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected werewolf count error, got %+v", output.Issues)
	}
}
