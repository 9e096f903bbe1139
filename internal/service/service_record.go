package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ebalakin/credvault/internal/logger"
	"github.com/ebalakin/credvault/internal/store"
	"github.com/ebalakin/credvault/internal/utils"
	"github.com/ebalakin/credvault/internal/validators"
	"github.com/ebalakin/credvault/models"
)

// recordService implements [RecordManager] on top of whichever
// [store.RecordStore] the composition point injected. All validation
// happens here, synchronously, before any storage or network call; the
// backends receive only well-formed data.
type recordService struct {
	store     store.RecordStore
	validator validators.Validator
	logger    *logger.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewRecordService constructs a [RecordManager] over the given store.
func NewRecordService(recordStore store.RecordStore, validator validators.Validator, logger *logger.Logger) RecordManager {
	return &recordService{
		store:     recordStore,
		validator: validator,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *recordService) GetAll(ctx context.Context) ([]models.Record, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all records: %w", err)
	}

	return records, nil
}

// Search sanitizes the raw query before dispatch. An empty sanitized query
// falls back to the unfiltered listing.
func (s *recordService) Search(ctx context.Context, query string) ([]models.Record, error) {
	sanitized := utils.SanitizeSearchQuery(query)
	if sanitized == "" {
		return s.GetAll(ctx)
	}

	records, err := s.store.Search(ctx, sanitized)
	if err != nil {
		return nil, fmt.Errorf("search records: %w", err)
	}

	return records, nil
}

func (s *recordService) Add(ctx context.Context, input models.RecordInput) (models.Record, error) {
	if err := s.validator.Validate(ctx, input); err != nil {
		return models.Record{}, fmt.Errorf("validate record input: %w", err)
	}

	now := s.now()
	record := models.Record{
		ID:        uuid.NewString(),
		Service:   strings.TrimSpace(input.Service),
		Username:  strings.TrimSpace(input.Username),
		Password:  strings.TrimSpace(input.Password),
		CreatedAt: now,
		UpdatedAt: now,
	}

	stored, err := s.store.Add(ctx, record)
	if err != nil {
		return models.Record{}, fmt.Errorf("add record: %w", err)
	}

	return stored, nil
}

// BatchAdd fails closed: every input is validated before the first insert
// is issued, so one bad input means zero storage calls. The inserts
// themselves are sequential and not atomic at the storage layer; a
// mid-batch failure surfaces immediately and may leave earlier rows
// committed.
func (s *recordService) BatchAdd(ctx context.Context, inputs []models.RecordInput) ([]models.Record, error) {
	if err := s.validator.Validate(ctx, inputs); err != nil {
		return nil, fmt.Errorf("validate batch: %w", err)
	}

	stored := make([]models.Record, 0, len(inputs))
	for i, input := range inputs {
		record, err := s.Add(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("batch add at index %d: %w", i, err)
		}
		stored = append(stored, record)
	}

	return stored, nil
}

func (s *recordService) Update(ctx context.Context, id string, patch models.RecordPatch) (models.Record, error) {
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.Record{}, fmt.Errorf("validate record patch: %w", err)
	}

	trimmed := models.RecordPatch{
		Service:  trimmedField(patch.Service),
		Username: trimmedField(patch.Username),
		Password: trimmedField(patch.Password),
	}

	record, err := s.store.Update(ctx, id, trimmed, s.now())
	if err != nil {
		return models.Record{}, fmt.Errorf("update record: %w", err)
	}

	return record, nil
}

func (s *recordService) Remove(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.Remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("remove record: %w", err)
	}

	return deleted, nil
}

func (s *recordService) GetStats(ctx context.Context) (models.Stats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("get stats: %w", err)
	}

	return stats, nil
}

// TestConnection measures one round trip of the backend's count probe.
func (s *recordService) TestConnection(ctx context.Context) models.ConnectionStatus {
	started := time.Now()
	if err := s.store.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "recordService.TestConnection").
			Msg("connection probe failed")
		return models.ConnectionStatus{Connected: false, Error: err.Error()}
	}

	return models.ConnectionStatus{
		Connected: true,
		LatencyMS: time.Since(started).Milliseconds(),
	}
}

func trimmedField(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
