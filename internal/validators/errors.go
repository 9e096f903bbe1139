package validators

import "errors"

// Sentinel validation errors. Callers match them with [errors.Is]; every one
// of them signals that the request was rejected before any I/O happened.
var (
	// ErrEmptyService is returned when the service field is empty after
	// trimming.
	ErrEmptyService = errors.New("service must not be empty")

	// ErrServiceTooLong is returned when the service field exceeds
	// MaxServiceLen characters.
	ErrServiceTooLong = errors.New("service exceeds maximum length")

	// ErrEmptyUsername is returned when the username field is empty after
	// trimming.
	ErrEmptyUsername = errors.New("username must not be empty")

	// ErrUsernameTooLong is returned when the username field exceeds
	// MaxUsernameLen characters.
	ErrUsernameTooLong = errors.New("username exceeds maximum length")

	// ErrEmptyPassword is returned when the password field is empty after
	// trimming.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrPasswordTooLong is returned when the password field exceeds
	// MaxPasswordLen characters.
	ErrPasswordTooLong = errors.New("password exceeds maximum length")

	// ErrNoFieldsToUpdate is returned when a patch carries no fields at
	// all; an empty update never silently succeeds.
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")

	// ErrEmptyBatch is returned when a batch add request contains no
	// inputs.
	ErrEmptyBatch = errors.New("batch contains no inputs")

	// ErrUnsupportedType is returned when Validate receives a model it
	// does not know how to check.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrUnknownField is returned when an unrecognised field name is
	// passed to Validate.
	ErrUnknownField = errors.New("unknown validation field")
)
