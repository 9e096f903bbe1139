package adapter

import (
	"fmt"
	"time"

	"github.com/ebalakin/credvault/models"
)

// passwordRow is the wire shape of one row of the hosted "passwords"
// table. The backend speaks snake_case; every field is a pointer so that
// absence can be told apart from a zero value when converting.
type passwordRow struct {
	ID        *string    `json:"id"`
	Service   *string    `json:"service"`
	Username  *string    `json:"username"`
	Password  *string    `json:"password"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// toRecord renames the wire row one-to-one into the application record
// shape. A missing required field fails with ErrConversion naming the
// field, guarding against silently returning partial records.
func (r passwordRow) toRecord() (models.Record, error) {
	switch {
	case r.ID == nil:
		return models.Record{}, fmt.Errorf("%w: missing field %q", ErrConversion, "id")
	case r.Service == nil:
		return models.Record{}, fmt.Errorf("%w: missing field %q", ErrConversion, "service")
	case r.Username == nil:
		return models.Record{}, fmt.Errorf("%w: missing field %q", ErrConversion, "username")
	case r.Password == nil:
		return models.Record{}, fmt.Errorf("%w: missing field %q", ErrConversion, "password")
	case r.CreatedAt == nil:
		return models.Record{}, fmt.Errorf("%w: missing field %q", ErrConversion, "created_at")
	case r.UpdatedAt == nil:
		return models.Record{}, fmt.Errorf("%w: missing field %q", ErrConversion, "updated_at")
	}

	return models.Record{
		ID:        *r.ID,
		Service:   *r.Service,
		Username:  *r.Username,
		Password:  *r.Password,
		CreatedAt: *r.CreatedAt,
		UpdatedAt: *r.UpdatedAt,
	}, nil
}

// toRecords converts a result set, failing on the first incomplete row.
func toRecords(rows []passwordRow) ([]models.Record, error) {
	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// insertRow is the outgoing wire shape for inserts: the full record with
// snake_case timestamp names.
type insertRow struct {
	ID        string    `json:"id"`
	Service   string    `json:"service"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func insertRowFromRecord(record models.Record) insertRow {
	return insertRow{
		ID:        record.ID,
		Service:   record.Service,
		Username:  record.Username,
		Password:  record.Password,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

// patchRow is the outgoing wire shape for partial updates. Absent fields
// are omitted entirely so the backend leaves them untouched.
type patchRow struct {
	Service   *string   `json:"service,omitempty"`
	Username  *string   `json:"username,omitempty"`
	Password  *string   `json:"password,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func patchRowFromPatch(patch models.RecordPatch, updatedAt time.Time) patchRow {
	return patchRow{
		Service:   patch.Service,
		Username:  patch.Username,
		Password:  patch.Password,
		UpdatedAt: updatedAt,
	}
}
