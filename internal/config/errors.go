package config

import "errors"

var (
	// ErrUnknownBackend is returned when STORAGE_BACKEND holds a value
	// other than "sqlite", "postgres" or "remote".
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrEmptyDSN is returned when a database-backed storage backend is
	// selected but STORAGE_DSN is empty.
	ErrEmptyDSN = errors.New("storage dsn is not set")

	// ErrMissingRemoteValues is returned when the remote backend is
	// selected and one or both of its required environment values are
	// absent. The wrapped message lists every missing variable name.
	ErrMissingRemoteValues = errors.New("remote backend configuration incomplete")
)
