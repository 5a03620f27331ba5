// Package migrate applies the embedded goose migrations.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/ThurpatiNainesh/tinylink/db"
)

type Engine string

const (
	EnginePostgres Engine = "postgres"
	EngineSQLite   Engine = "sqlite"
)

func (e Engine) dialect() (goose.Dialect, error) {
	switch e {
	case EnginePostgres:
		return goose.DialectPostgres, nil
	case EngineSQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("migrate: unsupported engine %q", e)
	}
}

// Up applies all pending migrations for engine and returns how many ran.
func Up(ctx context.Context, sqlDB *sql.DB, engine Engine) (int, error) {
	p, err := provider(sqlDB, engine)
	if err != nil {
		return 0, err
	}

	results, err := p.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrate: up %s: %w", engine, err)
	}

	return len(results), nil
}

// Version reports the current schema version.
func Version(ctx context.Context, sqlDB *sql.DB, engine Engine) (int64, error) {
	p, err := provider(sqlDB, engine)
	if err != nil {
		return 0, err
	}

	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrate: version %s: %w", engine, err)
	}

	return v, nil
}

func provider(sqlDB *sql.DB, engine Engine) (*goose.Provider, error) {
	dialect, err := engine.dialect()
	if err != nil {
		return nil, err
	}

	fsys, err := fs.Sub(db.Migrations, "migrations/"+string(engine))
	if err != nil {
		return nil, fmt.Errorf("migrate: open %s migrations: %w", engine, err)
	}

	p, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("migrate: new provider: %w", err)
	}

	return p, nil
}
