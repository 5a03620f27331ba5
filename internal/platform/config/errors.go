package config

import "errors"

var (
	ErrBaseURLEmpty   = errors.New("BASE_URL is empty")
	ErrInvalidBaseURL = errors.New("BASE_URL is invalid")

	ErrDatabaseURLEmpty    = errors.New("DATABASE_URL is empty")
	ErrUnsupportedDatabase = errors.New("DATABASE_URL scheme is not supported")

	ErrInvalidDuration = errors.New("invalid duration env")
	ErrInvalidInt      = errors.New("invalid int env")
	ErrInvalidBool     = errors.New("invalid bool env")
	ErrInvalidLogLevel = errors.New("invalid LOG_LEVEL")

	ErrInvalidDBPool = errors.New("invalid db pool config")
)
