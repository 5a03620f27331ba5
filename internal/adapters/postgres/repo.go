package postgres

import (
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ThurpatiNainesh/tinylink/internal/adapters/sqlstore"
)

// PostgreSQL SQLSTATE error codes.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateTooManyConnections  = "53300"
	sqlStateAdminShutdown       = "57P01"
	sqlStateCannotConnectNow    = "57P03"
	sqlStateConnectionExcPrefix = "08"
)

var Dialect = sqlstore.Dialect{
	Name:              "postgres",
	Placeholder:       sq.Dollar,
	LikeOp:            "ILIKE",
	IsUniqueViolation: isUniqueViolation,
	IsUnavailable:     isUnavailable,
}

func NewRepo(db *sql.DB, opts ...sqlstore.Option) *sqlstore.Repo {
	return sqlstore.New(db, Dialect, opts...)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateUniqueViolation
	}

	return false
}

func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateTooManyConnections, sqlStateAdminShutdown, sqlStateCannotConnectNow:
			return true
		}

		return strings.HasPrefix(pgErr.Code, sqlStateConnectionExcPrefix)
	}

	return pgconn.SafeToRetry(err)
}
