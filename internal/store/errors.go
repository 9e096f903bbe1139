package store

import "errors"

// Sentinel errors returned by the SQL record stores. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when an update targets an id that does
	// not exist in the passwords table.
	ErrRecordNotFound = errors.New("credential record was not found")

	// ErrDuplicateRecordID is returned when an insert violates the primary
	// key constraint on id.
	ErrDuplicateRecordID = errors.New("credential record id already exists")

	// ErrNoFieldsToUpdate is returned when an update is attempted with an
	// empty patch. The service layer rejects this case before dispatch;
	// the repository enforces it again so a raw store can never silently
	// succeed on an empty update.
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")
)

// Low-level database operation errors, returned wrapped by repository
// methods when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan record rows")
)
