package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Dialect carries what differs between the SQL engines the store runs on.
type Dialect struct {
	// Name prefixes wrapped errors, e.g. "postgres: create link: ...".
	Name        string
	Placeholder sq.PlaceholderFormat

	// LikeOp must match case-insensitively.
	LikeOp string

	IsUniqueViolation func(error) bool
	// IsUnavailable reports driver specific connection failures on top of
	// the generic checks in isUnavailable.
	IsUnavailable func(error) bool
}

func (d Dialect) uniqueViolation(err error) bool {
	return d.IsUniqueViolation != nil && d.IsUniqueViolation(err)
}

func (d Dialect) unavailable(err error) bool {
	if isUnavailable(err) {
		return true
	}

	return d.IsUnavailable != nil && d.IsUnavailable(err)
}

// database/sql keeps its closed-pool error unexported.
const dbClosedMsg = "sql: database is closed"

func isUnavailable(err error) bool {
	if err == nil {
		return false
	}

	// deadlines surface as timeouts, not as an unavailable store
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	if strings.Contains(err.Error(), dbClosedMsg) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && !netErr.Timeout()
}
