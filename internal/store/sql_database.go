package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/ebalakin/credvault/internal/logger"
	"github.com/ebalakin/credvault/migrations"
)

// dialect captures the differences between the two SQL engines: the bind
// placeholder format and the case-insensitive LIKE operator. Everything
// else in the repository is shared.
type dialect struct {
	name         string
	placeholder  sq.PlaceholderFormat
	likeOperator string
}

var (
	sqliteDialect = dialect{
		name:        "sqlite",
		placeholder: sq.Question,
		// SQLite LIKE is case-insensitive for ASCII by default.
		likeOperator: "LIKE",
	}

	postgresDialect = dialect{
		name:         "postgres",
		placeholder:  sq.Dollar,
		likeOperator: "ILIKE",
	}
)

// builder returns a squirrel statement builder bound to the dialect's
// placeholder format.
func (d dialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.placeholder)
}

// DB wraps *sql.DB together with the dialect it speaks and an error
// classificator for engine-specific failure codes.
type DB struct {
	*sql.DB
	dialect            dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the pending schema migrations for the DB's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect.name)
}
