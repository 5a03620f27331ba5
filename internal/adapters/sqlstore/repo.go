// Package sqlstore implements the link store over database/sql. Engine
// specifics are supplied through a Dialect by the postgres and sqlite
// adapters.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ThurpatiNainesh/tinylink/internal/app/links"
	"github.com/ThurpatiNainesh/tinylink/internal/domain"
)

type Repo struct {
	db  *sql.DB
	d   Dialect
	now func() time.Time
}

type Option func(*Repo)

// WithClock overrides the clock used for click timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repo) { r.now = now }
}

func New(db *sql.DB, d Dialect, opts ...Option) *Repo {
	r := &Repo{db: db, d: d, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

var _ links.Repo = (*Repo)(nil)

func (r *Repo) Create(ctx context.Context, nl domain.NewLink) (domain.Link, error) {
	const op = "create link"

	createdAt := nl.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}
	createdAt = createdAt.UTC()

	query, args, err := sq.Insert(sqlTableLinks).
		Columns(sqlLinkCols[1:]...).
		Values(nl.Code, nl.TargetURL, 0, nil, createdAt, createdAt).
		Suffix(returningLinkCols()).
		PlaceholderFormat(r.d.Placeholder).
		ToSql()
	if err != nil {
		return domain.Link{}, r.buildErr(op, err)
	}

	link, err := scanLink(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if r.d.uniqueViolation(err) {
			return domain.Link{}, fmt.Errorf("%s: %s %q: %w", r.d.Name, op, nl.Code, domain.ErrCodeExists)
		}

		return domain.Link{}, r.opErr(op, err)
	}

	return link, nil
}

func (r *Repo) GetByCode(ctx context.Context, code string) (domain.Link, error) {
	const op = "get link by code"

	query, args, err := sq.Select(qualifiedLinkCols()...).
		From(sqlTableLinks + " " + sqlAliasLinks).
		Where(sq.Eq{qualify(sqlAliasLinks, sqlColCode): code}).
		Limit(1).
		PlaceholderFormat(r.d.Placeholder).
		ToSql()
	if err != nil {
		return domain.Link{}, r.buildErr(op, err)
	}

	link, err := scanLink(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Link{}, domain.ErrNotFound
		}

		return domain.Link{}, r.opErr(op, err)
	}

	return link, nil
}

// List returns every link, newest first. The result is not paginated.
func (r *Repo) List(ctx context.Context, search string) ([]domain.Link, error) {
	const op = "list links"

	builder := sq.Select(qualifiedLinkCols()...).
		From(sqlTableLinks + " " + sqlAliasLinks).
		OrderBy(
			qualify(sqlAliasLinks, sqlColCreatedAt)+" DESC",
			qualify(sqlAliasLinks, sqlColID)+" DESC",
		).
		PlaceholderFormat(r.d.Placeholder)

	if search != "" {
		pattern := "%" + escapeLike(search) + "%"
		builder = builder.Where(sq.Or{
			r.likeExpr(sqlColCode, pattern),
			r.likeExpr(sqlColTargetURL, pattern),
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, r.buildErr(op, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.opErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	out := make([]domain.Link, 0)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, r.opErr(op, err)
		}

		out = append(out, link)
	}

	if err := rows.Err(); err != nil {
		return nil, r.opErr(op, err)
	}

	return out, nil
}

// IncrementClick is a single UPDATE ... RETURNING so concurrent clicks on the
// same code never lose an increment.
func (r *Repo) IncrementClick(ctx context.Context, code string) (domain.Link, error) {
	const op = "increment click"

	now := r.now().UTC()

	query, args, err := sq.Update(sqlTableLinks).
		Set(sqlColTotalClicks, sq.Expr(sqlColTotalClicks+" + 1")).
		Set(sqlColLastClickedAt, now).
		Set(sqlColUpdatedAt, now).
		Where(sq.Eq{sqlColCode: code}).
		Suffix(returningLinkCols()).
		PlaceholderFormat(r.d.Placeholder).
		ToSql()
	if err != nil {
		return domain.Link{}, r.buildErr(op, err)
	}

	link, err := scanLink(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Link{}, domain.ErrNotFound
		}

		return domain.Link{}, r.opErr(op, err)
	}

	return link, nil
}

func (r *Repo) DeleteByCode(ctx context.Context, code string) (bool, error) {
	const op = "delete link"

	query, args, err := sq.Delete(sqlTableLinks).
		Where(sq.Eq{sqlColCode: code}).
		PlaceholderFormat(r.d.Placeholder).
		ToSql()
	if err != nil {
		return false, r.buildErr(op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, r.opErr(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, r.opErr(op, err)
	}

	return n > 0, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return r.opErr("ping", err)
	}

	return nil
}

func (r *Repo) likeExpr(col, pattern string) sq.Sqlizer {
	return sq.Expr(
		fmt.Sprintf("%s %s ? ESCAPE '%s'", qualify(sqlAliasLinks, col), r.d.LikeOp, likeEscapeChar),
		pattern,
	)
}

func (r *Repo) buildErr(op string, err error) error {
	return fmt.Errorf("%s: build %s: %w", r.d.Name, op, err)
}

func (r *Repo) opErr(op string, err error) error {
	if r.d.unavailable(err) {
		return fmt.Errorf("%s: %s: %w: %w", r.d.Name, op, domain.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%s: %s: %w", r.d.Name, op, err)
}

// escapeLike makes LIKE wildcards in s match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(
		likeEscapeChar, likeEscapeChar+likeEscapeChar,
		"%", likeEscapeChar+"%",
		"_", likeEscapeChar+"_",
	).Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (domain.Link, error) {
	var (
		link          domain.Link
		lastClickedAt dbTime
		createdAt     dbTime
		updatedAt     dbTime
	)

	err := row.Scan(
		&link.ID,
		&link.Code,
		&link.TargetURL,
		&link.TotalClicks,
		&lastClickedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Link{}, err
	}

	link.CreatedAt = createdAt.Time
	link.UpdatedAt = updatedAt.Time

	if lastClickedAt.Valid {
		t := lastClickedAt.Time
		link.LastClickedAt = &t
	}

	return link, nil
}
