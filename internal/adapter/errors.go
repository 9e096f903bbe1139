package adapter

import "errors"

var (
	// ErrConversion is returned when a row coming back from the hosted
	// backend is missing a required field. The client never silently
	// returns partially-populated records.
	ErrConversion = errors.New("remote row conversion failed")

	// ErrRemoteRequest is returned (wrapped with an operation-specific
	// prefix) when the hosted backend answers with a non-success status
	// or the transport itself fails. There is no retry: a single failed
	// call surfaces immediately to the caller.
	ErrRemoteRequest = errors.New("remote request failed")

	// ErrUnexpectedRowCount is returned when a mutation that must yield
	// exactly one representation row yields none or several.
	ErrUnexpectedRowCount = errors.New("unexpected number of rows in remote response")
)
