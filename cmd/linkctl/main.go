// Command linkctl manages short links directly against the database.
//
//	linkctl [-db URL] [-base URL] create -url https://example.com [-code docs]
//	linkctl get CODE | delete CODE | visit CODE
//	linkctl list [-search TERM]
//	linkctl migrate
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThurpatiNainesh/tinylink/internal/adapters/httpapi/dto"
	"github.com/ThurpatiNainesh/tinylink/internal/app/links"
	"github.com/ThurpatiNainesh/tinylink/internal/assembly/apiapp"
	"github.com/ThurpatiNainesh/tinylink/internal/platform/config"
	"github.com/ThurpatiNainesh/tinylink/internal/platform/migrate"
)

const (
	defaultBaseURL = "http://localhost:8080"
	usage          = "usage: linkctl [-db URL] [-base URL] <create|get|list|delete|visit|migrate> [args]"
)

var errUsage = errors.New(usage)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotenv(config.DefaultDotenvFiles...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("linkctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	dbURL := global.String("db", os.Getenv("DATABASE_URL"), "database URL (postgres://, sqlite://, file:, libsql://)")
	baseURL := global.String("base", envOr("BASE_URL", defaultBaseURL), "public origin used for shortUrl")
	verbose := global.Bool("v", false, "log allocator events to stderr")

	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		return errUsage
	}

	engine, err := config.EngineFor(*dbURL)
	if err != nil {
		return err
	}

	db, err := apiapp.OpenDB(ctx, config.Config{DatabaseURL: *dbURL, DatabaseEngine: engine})
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if rest[0] == "migrate" {
		n, err := migrate.Up(ctx, db, migrate.Engine(engine))
		if err != nil {
			return err
		}

		return writeJSON(stdout, map[string]any{"applied": n})
	}

	var log links.Logger
	if *verbose {
		log = cliLogger{l: slog.New(slog.NewTextHandler(stderr, nil))}
	}

	c := &cli{
		svc:     links.New(apiapp.NewRepo(db, engine), log),
		baseURL: *baseURL,
		out:     stdout,
		errOut:  stderr,
	}

	return c.dispatch(ctx, rest[0], rest[1:])
}

type cli struct {
	svc     links.UseCase
	baseURL string
	out     io.Writer
	errOut  io.Writer
}

func (c *cli) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "create":
		return c.create(ctx, args)
	case "list":
		return c.list(ctx, args)
	case "get", "delete", "visit":
		code, err := singleArg(cmd, args)
		if err != nil {
			return err
		}

		return c.byCode(ctx, cmd, code)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func (c *cli) create(ctx context.Context, args []string) error {
	fs := c.flagSet("create")
	targetURL := fs.String("url", "", "target URL (https:// is added when missing)")
	code := fs.String("code", "", "custom code, 3-20 of [A-Za-z0-9_-]")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *targetURL == "" {
		return errors.New("create: -url is required")
	}

	link, err := c.svc.Create(ctx, *targetURL, *code)
	if err != nil {
		return err
	}

	return writeJSON(c.out, dto.FromCreated(link, c.baseURL))
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := c.flagSet("list")
	search := fs.String("search", "", "case-insensitive substring of code or target URL")

	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := c.svc.List(ctx, *search)
	if err != nil {
		return err
	}

	return writeJSON(c.out, dto.FromList(items))
}

func (c *cli) byCode(ctx context.Context, cmd, code string) error {
	switch cmd {
	case "delete":
		if err := c.svc.Delete(ctx, code); err != nil {
			return err
		}

		return writeJSON(c.out, dto.DeletedLinkResponse{Success: true, Message: "Link deleted successfully", Code: code})
	case "visit":
		link, err := c.svc.Visit(ctx, code)
		if err != nil {
			return err
		}

		return writeJSON(c.out, dto.FromDomain(link))
	default:
		link, err := c.svc.Get(ctx, code)
		if err != nil {
			return err
		}

		return writeJSON(c.out, dto.FromDomain(link))
	}
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)

	return fs
}

func singleArg(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: expected exactly one CODE argument", cmd)
	}

	return args[0], nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

type cliLogger struct {
	l *slog.Logger
}

func (l cliLogger) With(kv ...any) links.Logger { return cliLogger{l: l.l.With(kv...)} }
func (l cliLogger) Info(msg string, kv ...any)  { l.l.Info(msg, kv...) }
func (l cliLogger) Warn(msg string, kv ...any)  { l.l.Warn(msg, kv...) }
func (l cliLogger) Error(msg string, kv ...any) { l.l.Error(msg, kv...) }
