package models

import "time"

// Record is a single stored credential entry. The ID is assigned once at
// creation and never changes; UpdatedAt moves on every successful mutation.
type Record struct {
	ID        string    `json:"id"`
	Service   string    `json:"service"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecordInput carries the user-supplied fields of a new credential record.
// IDs and timestamps are assigned by the service layer, never by the caller.
type RecordInput struct {
	Service  string `json:"service"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RecordPatch describes a partial update. A nil field means "do not touch";
// a non-nil field replaces the stored value after validation.
type RecordPatch struct {
	Service  *string `json:"service,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p RecordPatch) IsEmpty() bool {
	return p.Service == nil && p.Username == nil && p.Password == nil
}

// Stats summarises the stored collection: total record count and the number
// of records created within the trailing seven days.
type Stats struct {
	Total       int `json:"total"`
	RecentCount int `json:"recentCount"`
}

// RecentWindow is the trailing period counted by Stats.RecentCount.
const RecentWindow = 7 * 24 * time.Hour

// ConnectionStatus is the result of a connectivity probe against the active
// backend. LatencyMS is only meaningful when Connected is true.
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	LatencyMS int64  `json:"latencyMs,omitempty"`
	Error     string `json:"error,omitempty"`
}
