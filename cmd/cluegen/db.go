package main

import (
	"context"
	"fmt"
	"strings"

	"cluegen/internal/config"
	"cluegen/internal/store"
	"cluegen/internal/store/postgres"
	"cluegen/internal/store/sqlite"
)

type storeBackend string

const (
	backendSQLite   storeBackend = "sqlite"
	backendPostgres storeBackend = "postgres"
)

func backendForDSN(dsn string) (storeBackend, error) {
	switch {
	case strings.TrimSpace(dsn) == "":
		return "", fmt.Errorf("database.dsn is required")
	case strings.HasPrefix(dsn, "sqlite://"):
		return backendSQLite, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return backendPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database dsn scheme: %q", dsn)
	}
}

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	backend, err := backendForDSN(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	var db store.Store
	switch backend {
	case backendPostgres:
		db, err = postgres.New(ctx, cfg.Database.DSN)
	default:
		db, err = sqlite.New(ctx, cfg.Database.DSN)
	}
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close(ctx)
		return nil, err
	}
	return db, nil
}
