package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ebalakin/credvault/internal/logger"
	"github.com/ebalakin/credvault/models"
)

// sqlRecordRepository is the shared SQL implementation of [RecordStore].
// The embedded [*DB] carries the dialect, so the same repository serves
// both the local SQLite file and a direct Postgres connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so database interactions are traced with structured
// fields (record id, query, affected rows).
type sqlRecordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordStore] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordStore {
	return &sqlRecordRepository{
		DB:     db,
		logger: logger,
	}
}

// GetAll returns every stored record ordered by updated_at descending.
func (s *sqlRecordRepository) GetAll(ctx context.Context) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.dialect.buildSelectAll()
	if err != nil {
		log.Err(err).
			Str("func", "sqlRecordRepository.GetAll").
			Msg("failed to build select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.queryRecords(ctx, "sqlRecordRepository.GetAll", query, args...)
}

// Search returns records whose service or username contains the sanitized
// query substring, case-insensitively.
func (s *sqlRecordRepository) Search(ctx context.Context, query string) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := s.dialect.buildSearch(query)
	if err != nil {
		log.Err(err).
			Str("func", "sqlRecordRepository.Search").
			Str("query", query).
			Msg("failed to build search query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.queryRecords(ctx, "sqlRecordRepository.Search", sqlQuery, args...)
}

// Add inserts the record and returns the stored row.
func (s *sqlRecordRepository) Add(ctx context.Context, record models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.dialect.buildInsert(record)
	if err != nil {
		log.Err(err).
			Str("func", "sqlRecordRepository.Add").
			Str("id", record.ID).
			Msg("failed to build insert query")
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		if s.errorClassificator.IsDuplicate(err) {
			log.Warn().
				Str("func", "sqlRecordRepository.Add").
				Str("id", record.ID).
				Msg("record id already exists")
			return models.Record{}, fmt.Errorf("%w: %s", ErrDuplicateRecordID, record.ID)
		}
		log.Err(err).
			Str("func", "sqlRecordRepository.Add").
			Str("id", record.ID).
			Msg("failed to execute insert for record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return s.getByID(ctx, record.ID)
}

// Update applies the present patch fields plus the new updated_at and
// returns the resulting record. Returns ErrRecordNotFound when no row
// matched the id.
func (s *sqlRecordRepository) Update(ctx context.Context, id string, patch models.RecordPatch, updatedAt time.Time) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.dialect.buildUpdate(id, patch, updatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "sqlRecordRepository.Update").
			Str("id", id).
			Msg("failed to build update query")
		if errors.Is(err, ErrNoFieldsToUpdate) {
			return models.Record{}, err
		}
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlRecordRepository.Update").
			Str("id", id).
			Msg("failed to execute update for record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "sqlRecordRepository.Update").
			Str("id", id).
			Msg("failed to get rows affected after update")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "sqlRecordRepository.Update").
			Str("id", id).
			Msg("no rows affected during update: record not found")
		return models.Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	return s.getByID(ctx, id)
}

// Remove deletes the record with the given id. Deleting an absent id is
// not an error; the boolean result reports whether a row went away.
func (s *sqlRecordRepository) Remove(ctx context.Context, id string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.dialect.buildDelete(id)
	if err != nil {
		log.Err(err).
			Str("func", "sqlRecordRepository.Remove").
			Str("id", id).
			Msg("failed to build delete query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlRecordRepository.Remove").
			Str("id", id).
			Msg("failed to execute delete for record")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "sqlRecordRepository.Remove").
			Str("id", id).
			Msg("failed to get rows affected after delete")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return rowsAffected > 0, nil
}

// Stats counts all records and the ones created within the trailing seven
// days. A failure of the recent-count query alone degrades to
// RecentCount = 0 instead of failing the whole call.
func (s *sqlRecordRepository) Stats(ctx context.Context) (models.Stats, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.dialect.buildCount()
	if err != nil {
		return models.Stats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err = s.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "sqlRecordRepository.Stats").
			Msg("failed to execute total count query")
		return models.Stats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	since := time.Now().UTC().Add(-models.RecentWindow)
	query, args, err = s.dialect.buildRecentCount(since)
	if err != nil {
		return models.Stats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var recent int
	if err = s.DB.QueryRowContext(ctx, query, args...).Scan(&recent); err != nil {
		log.Warn().Err(err).
			Str("func", "sqlRecordRepository.Stats").
			Msg("recent count query failed, falling back to zero")
		return models.Stats{Total: total}, nil
	}

	return models.Stats{Total: total, RecentCount: recent}, nil
}

// Ping issues the lightweight count probe used by connection diagnostics.
func (s *sqlRecordRepository) Ping(ctx context.Context) error {
	query, args, err := s.dialect.buildCount()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err = s.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// getByID re-selects a record after a mutation so callers always receive
// the row exactly as stored.
func (s *sqlRecordRepository) getByID(ctx context.Context, id string) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.dialect.buildSelectByID(id)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var record models.Record
	row := s.DB.QueryRowContext(ctx, query, args...)
	if err = row.Scan(
		&record.ID,
		&record.Service,
		&record.Username,
		&record.Password,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		log.Err(err).
			Str("func", "sqlRecordRepository.getByID").
			Str("id", id).
			Msg("failed to scan record row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// queryRecords runs a multi-row select and scans the result set.
func (s *sqlRecordRepository) queryRecords(ctx context.Context, caller, query string, args ...any) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to execute query for records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 16)

	for rows.Next() {
		var record models.Record

		if scanErr := rows.Scan(
			&record.ID,
			&record.Service,
			&record.Username,
			&record.Password,
			&record.CreatedAt,
			&record.UpdatedAt,
		); scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", caller).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}
