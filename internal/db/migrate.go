package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrations returns the embedded SQL migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate applies all pending migrations and returns the resulting schema version.
func Migrate(ctx context.Context, databaseURL string) (int64, error) {
	return withProvider(ctx, databaseURL, func(p *goose.Provider) (int64, error) {
		results, err := p.Up(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to apply migrations: %w", err)
		}
		for _, r := range results {
			log.Printf("[db] applied %s in %v", r.Source.Path, r.Duration)
		}
		return p.GetDBVersion(ctx)
	})
}

// Rollback reverts the most recent migration.
func Rollback(ctx context.Context, databaseURL string) (int64, error) {
	return withProvider(ctx, databaseURL, func(p *goose.Provider) (int64, error) {
		r, err := p.Down(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to roll back migration: %w", err)
		}
		if r != nil {
			log.Printf("[db] rolled back %s", r.Source.Path)
		}
		return p.GetDBVersion(ctx)
	})
}

func withProvider(ctx context.Context, databaseURL string, fn func(*goose.Provider) (int64, error)) (int64, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	p, err := newProvider(sqlDB)
	if err != nil {
		return 0, err
	}
	return fn(p)
}

func newProvider(sqlDB *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, sqlDB, Migrations())
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	return p, nil
}
