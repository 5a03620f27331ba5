//go:build integration

package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ThurpatiNainesh/tinylink/internal/platform/migrate"
	"github.com/ThurpatiNainesh/tinylink/internal/platform/postgres"
)

const postgresImage = "postgres:16-alpine"

// Postgres is a migrated database inside a container.
type Postgres struct {
	DSN string
	DB  *sql.DB

	container *tcpg.PostgresContainer
}

// StartPostgres boots a container, opens a pool and applies migrations.
// Callers must Terminate it.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	pgC, err := tcpg.Run(
		ctx,
		postgresImage,
		tcpg.WithDatabase("appdb"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp").WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	p := &Postgres{container: pgC}

	p.DSN, err = pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = p.Terminate(ctx)
		return nil, fmt.Errorf("dsn: %w", err)
	}

	p.DB, err = OpenDBWithRetry(ctx, postgres.OpenConfig{
		DSN:             p.DSN,
		MaxOpenConns:    10,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
	}, DefaultDBRetryConfig())
	if err != nil {
		_ = p.Terminate(ctx)
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := migrate.Up(ctx, p.DB, migrate.EnginePostgres); err != nil {
		_ = p.Terminate(ctx)
		return nil, err
	}

	return p, nil
}

// Reset empties the links table between tests.
func (p *Postgres) Reset(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE links RESTART IDENTITY")

	return err
}

func (p *Postgres) Terminate(ctx context.Context) error {
	if p.DB != nil {
		_ = p.DB.Close()
	}

	return p.container.Terminate(ctx)
}
