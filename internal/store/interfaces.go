package store

import (
	"context"
	"time"

	"github.com/ebalakin/credvault/models"
)

// RecordStore is the single storage contract of credvault. The SQLite
// store, the Postgres store and the remote REST client are three variants
// behind it, selected at composition time; callers never know which one
// they talk to.
//
// Operations provide no cross-operation atomicity or isolation: two
// concurrent updates of the same id may interleave and the later write
// wins. Cancellation is limited to ctx propagation.
type RecordStore interface {
	// GetAll returns every stored record ordered by UpdatedAt descending.
	// An empty collection yields an empty slice, not an error.
	GetAll(ctx context.Context) ([]models.Record, error)

	// Search returns the records whose service or username contains the
	// given substring, case-insensitively, in GetAll order. The query must
	// already be sanitized (see utils.SanitizeSearchQuery); empty-query
	// fallback to GetAll is the caller's job.
	Search(ctx context.Context, query string) ([]models.Record, error)

	// Add inserts a fully-populated record (id and timestamps assigned by
	// the caller) and returns the stored row.
	Add(ctx context.Context, record models.Record) (models.Record, error)

	// Update applies only the fields present in patch plus the new
	// UpdatedAt and returns the resulting record. Returns
	// ErrRecordNotFound when id is absent.
	Update(ctx context.Context, id string, patch models.RecordPatch, updatedAt time.Time) (models.Record, error)

	// Remove deletes the record with the given id and reports whether a
	// row was actually deleted. An absent id is not an error.
	Remove(ctx context.Context, id string) (bool, error)

	// Stats counts all records and those created within the trailing
	// seven days. When only the recent-count query fails, the call
	// succeeds with RecentCount zero.
	Stats(ctx context.Context) (models.Stats, error)

	// Ping issues a lightweight count probe against the backing table.
	Ping(ctx context.Context) error
}
