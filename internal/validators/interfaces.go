package validators

import "context"

// Validator checks domain models against their field constraints before any
// storage or network call is made. Optional field name arguments restrict
// validation to a subset of fields; when omitted, a sensible default set is
// validated.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
