package goosemigrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationsTable = "migrations"

type Migrator struct {
	postgresURL    string
	migrationsPath string
	schemaName     string
}

func NewMigrator(postgresURL, migrationsPath, schemaName string) *Migrator {
	return &Migrator{
		postgresURL:    postgresURL,
		migrationsPath: migrationsPath,
		schemaName:     schemaName,
	}
}

// Up creates the schema if needed and applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	db, err := m.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+m.schema()); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := goose.UpContext(ctx, db, m.migrationsPath); err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}

	return nil
}

// Down rolls back the latest migration and drops the schema.
func (m *Migrator) Down(ctx context.Context) error {
	db, err := m.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.DownContext(ctx, db, m.migrationsPath); err != nil {
		return fmt.Errorf("failed to down migrations: %w", err)
	}

	if _, err := db.ExecContext(ctx, "DROP SCHEMA IF EXISTS "+m.schema()+" CASCADE"); err != nil {
		return fmt.Errorf("failed to delete schema: %w", err)
	}

	return nil
}

// Version returns the current migration version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	db, err := m.open()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to get migrations version: %w", err)
	}

	return version, nil
}

func (m *Migrator) open() (*sql.DB, error) {
	goose.SetTableName(m.schemaName + "." + migrationsTable)

	db, err := goose.OpenDBWithDriver("pgx", m.postgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB for migration: %w", err)
	}

	return db, nil
}

func (m *Migrator) schema() string {
	return pgx.Identifier{m.schemaName}.Sanitize()
}
