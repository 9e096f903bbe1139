package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/ebalakin/credvault/models"
)

// Field name constants used to scope validation to a subset of fields.
const (
	// FieldService targets the account/site label of a credential record.
	FieldService = "service"

	// FieldUsername targets the login identifier of a credential record.
	FieldUsername = "username"

	// FieldPassword targets the secret of a credential record.
	FieldPassword = "password"
)

// Maximum field lengths, measured in runes after trimming.
const (
	MaxServiceLen  = 100
	MaxUsernameLen = 100
	MaxPasswordLen = 500
)

// RecordValidator implements [Validator] for the credential record models:
// RecordInput, RecordPatch and []RecordInput (batch). Both value and
// pointer receivers are accepted for the single-record models.
type RecordValidator struct {
}

// NewRecordValidator constructs a RecordValidator and returns it as the
// Validator interface.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate dispatches to the type-specific check based on the dynamic type
// of obj.
//
// Supported types:
//   - models.RecordInput / *models.RecordInput
//   - models.RecordPatch / *models.RecordPatch
//   - []models.RecordInput (batch; every input checked before any passes)
//
// Returns ErrUnsupportedType for anything else.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RecordInput:
		return v.validateInput(ctx, value, fields...)
	case *models.RecordInput:
		return v.validateInput(ctx, *value, fields...)

	case models.RecordPatch:
		return v.validatePatch(ctx, value, fields...)
	case *models.RecordPatch:
		return v.validatePatch(ctx, *value, fields...)

	case []models.RecordInput:
		return v.validateBatch(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateInput validates a full RecordInput. Default fields: all three.
func (v *RecordValidator) validateInput(_ context.Context, input models.RecordInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldService, FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldService:
			if err := checkText(input.Service, MaxServiceLen, ErrEmptyService, ErrServiceTooLong); err != nil {
				return err
			}
		case FieldUsername:
			if err := checkText(input.Username, MaxUsernameLen, ErrEmptyUsername, ErrUsernameTooLong); err != nil {
				return err
			}
		case FieldPassword:
			if err := checkText(input.Password, MaxPasswordLen, ErrEmptyPassword, ErrPasswordTooLong); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePatch validates a partial update. Field-level checks only trigger
// when the corresponding pointer is non-nil (nil means "do not touch").
// A patch with no fields at all is rejected with ErrNoFieldsToUpdate.
func (v *RecordValidator) validatePatch(_ context.Context, patch models.RecordPatch, fields ...string) error {
	if patch.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	if len(fields) == 0 {
		fields = []string{FieldService, FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldService:
			if patch.Service != nil {
				if err := checkText(*patch.Service, MaxServiceLen, ErrEmptyService, ErrServiceTooLong); err != nil {
					return err
				}
			}
		case FieldUsername:
			if patch.Username != nil {
				if err := checkText(*patch.Username, MaxUsernameLen, ErrEmptyUsername, ErrUsernameTooLong); err != nil {
					return err
				}
			}
		case FieldPassword:
			if patch.Password != nil {
				if err := checkText(*patch.Password, MaxPasswordLen, ErrEmptyPassword, ErrPasswordTooLong); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateBatch validates every input of a batch add request. The whole
// batch is rejected on the first invalid input, before any storage call is
// made; the wrapped error names the offending index.
func (v *RecordValidator) validateBatch(ctx context.Context, inputs []models.RecordInput, fields ...string) error {
	if len(inputs) == 0 {
		return ErrEmptyBatch
	}

	for i, input := range inputs {
		if err := v.validateInput(ctx, input, fields...); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
	}

	return nil
}

// checkText enforces the shared text-field rule: non-empty after trimming
// and within the given rune limit.
func checkText(value string, limit int, emptyErr, tooLongErr error) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return emptyErr
	}
	if len([]rune(trimmed)) > limit {
		return tooLongErr
	}
	return nil
}
