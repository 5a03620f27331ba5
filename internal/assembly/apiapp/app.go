// Package apiapp wires configuration, storage and HTTP into a runnable app.
package apiapp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	httpapi "github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi"
	"github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi/stack"
	pgrepo "github.com/ThurpatiNainesh/tinylink/internal/adapters/postgres"
	sqliterepo "github.com/ThurpatiNainesh/tinylink/internal/adapters/sqlite"
	"github.com/ThurpatiNainesh/tinylink/internal/app/links"
	"github.com/ThurpatiNainesh/tinylink/internal/platform/config"
	"github.com/ThurpatiNainesh/tinylink/internal/platform/migrate"
	"github.com/ThurpatiNainesh/tinylink/internal/platform/postgres"
	"github.com/ThurpatiNainesh/tinylink/internal/platform/sqlite"
)

// Version is reported by /healthz; override with -ldflags at build time.
var Version = "1.0"

type App struct {
	cfg    config.Config
	db     *sql.DB
	log    *slog.Logger
	router http.Handler
	sentry bool
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sentryOn := cfg.SentryDSN != ""
	if sentryOn {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Release:          "tinylink@" + Version,
			AttachStacktrace: true,
		}); err != nil {
			return nil, fmt.Errorf("init sentry: %w", err)
		}
	} else {
		logger.Info("sentry disabled", "reason", "SENTRY_DSN is empty")
	}

	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if cfg.AutoMigrate {
		n, err := migrate.Up(ctx, db, migrate.Engine(cfg.DatabaseEngine))
		if err != nil {
			_ = db.Close()
			return nil, err
		}

		logger.Info("migrations applied", "engine", cfg.DatabaseEngine, "count", n)
	}

	svc := links.New(NewRepo(db, cfg.DatabaseEngine), linksSlogLogger{l: logger.With("component", "links")})

	plugins := []httpapi.EnginePlugin{
		stack.RequestID(),
		stack.Logger(logger),
		stack.Recovery(logger),
	}
	if sentryOn {
		plugins = append(plugins, stack.Sentry(cfg.SentryMiddlewareTimeout))
	}
	plugins = append(plugins,
		stack.RequestTimeout(cfg.RequestBudget),
		stack.CORS(cfg.CORSAllowedOrigins),
	)

	r := httpapi.NewEngine(plugins...)

	httpapi.RegisterRoutes(r, httpapi.RouterDeps{
		Links:        svc,
		BaseURL:      cfg.BaseURL,
		Version:      Version,
		StartedAt:    time.Now(),
		VisitTimeout: cfg.RequestBudget,
	})

	return &App{cfg: cfg, db: db, log: logger, router: r, sentry: sentryOn}, nil
}

// OpenDB opens the pool for the configured engine.
func OpenDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	switch cfg.DatabaseEngine {
	case config.EnginePostgres:
		return postgres.Open(ctx, postgres.OpenConfig{
			DSN:             cfg.DatabaseURL,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
	case config.EngineSQLite:
		return sqlite.Open(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: engine %q", config.ErrUnsupportedDatabase, cfg.DatabaseEngine)
	}
}

func NewRepo(db *sql.DB, engine config.Engine) links.Repo {
	if engine == config.EngineSQLite {
		return sqliterepo.NewRepo(db)
	}

	return pgrepo.NewRepo(db)
}

func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) Close() error {
	if a.sentry {
		sentry.Flush(a.cfg.SentryFlushTimeout)
	}

	if a.db == nil {
		return nil
	}

	return a.db.Close()
}

func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.router,
		ReadHeaderTimeout: a.cfg.HTTPReadHeaderTimeout,
		ReadTimeout:       a.cfg.HTTPReadTimeout,
		WriteTimeout:      a.cfg.HTTPWriteTimeout,
		IdleTimeout:       a.cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	a.log.Info("http server listening", "addr", a.cfg.HTTPAddr, "base_url", a.cfg.BaseURL)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("http server: %w", err)

	case <-ctx.Done():
		a.log.Info("shutting down", "timeout", a.cfg.HTTPShutdownTimeout)

		return gracefulShutdown(ctx, srv, a.cfg.HTTPShutdownTimeout, errCh)
	}
}

func gracefulShutdown(ctx context.Context, srv *http.Server, timeout time.Duration, errCh <-chan error) error {
	srv.SetKeepAlivesEnabled(false)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("http shutdown timed out; forced close: %w", err)
		}

		return fmt.Errorf("http shutdown failed; forced close: %w", err)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("http server stopped with error: %w", err)
	default:
		return nil
	}
}
