package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // remote libsql/Turso driver
	_ "modernc.org/sqlite"                               // embedded SQLite driver
)

const (
	driverSQLite = "sqlite"
	driverLibSQL = "libsql"

	schemeSQLite = "sqlite://"

	// applied to local databases only; libsql servers manage their own
	localPragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
)

// DriverFor picks the database/sql driver and DSN for a sqlite style URL:
// sqlite://path, file:path, :memory:, or libsql:// / wss:// for remote.
func DriverFor(url string) (driver, dsn string) {
	url = strings.TrimSpace(url)

	if strings.HasPrefix(url, "libsql://") || strings.HasPrefix(url, "wss://") {
		return driverLibSQL, url
	}

	dsn = strings.TrimPrefix(url, schemeSQLite)
	if dsn == ":memory:" {
		dsn = "file::memory:"
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return driverSQLite, dsn + sep + localPragmas
}

// Open returns a pinged pool limited to a single connection; SQLite has one
// writer and an in-memory database lives and dies with its connection.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	driver, dsn := DriverFor(url)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
