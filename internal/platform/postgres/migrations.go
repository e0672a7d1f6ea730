package postgres

import (
	"embed"
	"io/fs"
)

// MigrationsTable is the goose version table used by every migration runner.
const MigrationsTable = "schema_migrations"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the embedded goose migrations rooted at the migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		// ALLOW-PANIC: the directory is embedded at compile time
		panic(err)
	}
	return sub
}
