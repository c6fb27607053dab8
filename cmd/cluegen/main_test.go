package main

import (
	"os"
	"path/filepath"
	"testing"

	"cluegen/internal/store"
)

func TestBackendForDSN(t *testing.T) {
	tests := []struct {
		dsn     string
		want    storeBackend
		wantErr bool
	}{
		{dsn: "sqlite://cluegen.db", want: backendSQLite},
		{dsn: "sqlite://:memory:", want: backendSQLite},
		{dsn: "postgres://user@localhost/cluegen", want: backendPostgres},
		{dsn: "postgresql://user@localhost/cluegen", want: backendPostgres},
		{dsn: "", wantErr: true},
		{dsn: "mysql://localhost/cluegen", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := backendForDSN(tt.dsn)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.dsn)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseParamPairs(t *testing.T) {
	params, err := parseParamPairs([]string{"1=saw_at_work", " 2 = Bram ", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params["1"] != "saw_at_work" || params["2"] != "Bram" || len(params) != 2 {
		t.Fatalf("unexpected params: %+v", params)
	}

	if _, err := parseParamPairs([]string{"novalue"}); err == nil {
		t.Fatalf("expected error for missing '='")
	}
	if _, err := parseParamPairs([]string{"=x"}); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestFilterCluesByType(t *testing.T) {
	records := []store.ClueRecord{
		{Giver: "Agnes", Type: "saw_in_location"},
		{Giver: "Bram", Type: "comment_gossip"},
		{Giver: "Cora", Type: "saw_in_location"},
	}

	t.Run("empty keeps all", func(t *testing.T) {
		got, err := filterCluesByType(records, "")
		if err != nil || len(got) != 3 {
			t.Fatalf("expected 3 records, got %d (%v)", len(got), err)
		}
	})

	t.Run("known type", func(t *testing.T) {
		got, err := filterCluesByType(records, "saw_in_location")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].Giver != "Agnes" || got[1].Giver != "Cora" {
			t.Fatalf("unexpected records: %+v", got)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := filterCluesByType(records, "rumour"); err == nil {
			t.Fatalf("expected error for unknown type")
		}
	})
}

func TestOrderByClueType(t *testing.T) {
	stats := []store.ClueStat{
		{Type: "visual_from_ghost"},
		{Type: "legacy"},
		{Type: "comment_gossip"},
		{Type: "saw_in_location"},
	}
	got := orderByClueType(stats)
	want := []string{"saw_in_location", "comment_gossip", "visual_from_ghost", "legacy"}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Type != want[i] {
			t.Fatalf("expected %s at %d, got %s", want[i], i, got[i].Type)
		}
	}
}

func TestInitThenLoadProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cluegen.yaml")

	if err := runInit(path, "hollow"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "population.yaml")); err != nil {
		t.Fatalf("expected population.yaml to be written: %v", err)
	}

	cfg, pop, err := loadProject(path)
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	if cfg.Project != "hollow" {
		t.Fatalf("expected project hollow, got %q", cfg.Project)
	}
	if len(pop.Characters) == 0 || len(pop.Locations) == 0 {
		t.Fatalf("expected default population, got %+v", pop)
	}

	if err := runInit(path, "hollow"); err == nil {
		t.Fatalf("expected init to refuse to overwrite")
	}
}
