// Package db embeds the goose migrations for every supported engine.
package db

import "embed"

// Migrations holds postgres/*.sql and sqlite/*.sql.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var Migrations embed.FS
