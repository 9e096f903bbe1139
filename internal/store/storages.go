package store

import (
	"context"
	"fmt"

	"github.com/ebalakin/credvault/internal/config"
	"github.com/ebalakin/credvault/internal/logger"
)

// NewSQLiteStore opens (and creates if needed) the local SQLite database,
// applies pending migrations and returns a ready [RecordStore].
func NewSQLiteStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (RecordStore, error) {
	log.Info().Msg("creating local sqlite record store...")

	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewRecordRepository(db, log), nil
}

// NewPostgresStore connects to Postgres, applies pending migrations and
// returns a ready [RecordStore].
func NewPostgresStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (RecordStore, error) {
	log.Info().Msg("creating postgres record store...")

	db, err := NewConnectPostgres(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewRecordRepository(db, log), nil
}
