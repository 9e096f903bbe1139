package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedMigrations embed.FS

// dialects maps a store dialect name to the goose dialect and the embedded
// migration directory for that engine.
var dialects = map[string]struct {
	goose string
	dir   string
}{
	"sqlite":   {goose: "sqlite3", dir: "sqlite"},
	"postgres": {goose: "postgres", dir: "postgres"},
}

// Migrate applies all pending migrations for the given dialect name
// ("sqlite" or "postgres") against db.
func Migrate(db *sql.DB, dialect string) error {
	d, ok := dialects[dialect]
	if !ok {
		return fmt.Errorf("migration error: unknown dialect %q", dialect)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
