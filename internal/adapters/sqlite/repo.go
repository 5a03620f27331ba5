package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ThurpatiNainesh/tinylink/internal/adapters/sqlstore"
)

// libsql reports constraint failures as plain text.
const uniqueFailedMsg = "UNIQUE constraint failed"

// SQLite LIKE folds ASCII case only; lower() is no better without ICU. Codes
// and hosts are ASCII, so only non-ASCII paths search case-sensitively here.
var Dialect = sqlstore.Dialect{
	Name:              "sqlite",
	Placeholder:       sq.Question,
	LikeOp:            "LIKE",
	IsUniqueViolation: isUniqueViolation,
	IsUnavailable:     isUnavailable,
}

func NewRepo(db *sql.DB, opts ...sqlstore.Option) *sqlstore.Repo {
	return sqlstore.New(db, Dialect, opts...)
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}

	return err != nil && strings.Contains(err.Error(), uniqueFailedMsg)
}

func isUnavailable(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}

	// extended result codes keep the primary code in the low byte
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR:
		return true
	default:
		return false
	}
}
