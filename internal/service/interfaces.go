package service

import (
	"context"

	"github.com/ebalakin/credvault/models"
)

// RecordManager is the application-facing operation set over the credential
// collection. It is what the HTTP layer talks to; the storage backend
// behind it is invisible to callers.
type RecordManager interface {
	// GetAll lists every record, newest update first.
	GetAll(ctx context.Context) ([]models.Record, error)

	// Search lists the records matching the raw query case-insensitively
	// on service or username. An empty or whitespace-only query is
	// equivalent to GetAll, in result set and ordering.
	Search(ctx context.Context, query string) ([]models.Record, error)

	// Add validates the input, assigns an id and timestamps, and stores
	// the new record.
	Add(ctx context.Context, input models.RecordInput) (models.Record, error)

	// BatchAdd validates every input before issuing any insert; one
	// invalid input rejects the whole batch with zero storage calls.
	BatchAdd(ctx context.Context, inputs []models.RecordInput) ([]models.Record, error)

	// Update applies a partial update to the record with the given id,
	// refreshing its UpdatedAt. An empty patch is rejected before any
	// storage call.
	Update(ctx context.Context, id string, patch models.RecordPatch) (models.Record, error)

	// Remove deletes a record, reporting whether anything was deleted.
	Remove(ctx context.Context, id string) (bool, error)

	// GetStats summarises the collection size and recent additions.
	GetStats(ctx context.Context) (models.Stats, error)

	// TestConnection probes the active backend and reports round-trip
	// time. Diagnostics only; it never returns an error, failures are
	// reported inside the status.
	TestConnection(ctx context.Context) models.ConnectionStatus
}
