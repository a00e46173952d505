package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Reasons reported by ValidationError.
const (
	ReasonAllFieldsRequired = "All fields are required"
	ReasonNoFieldsToUpdate  = "At least one field must be provided for update"
	ReasonInvalidID         = "id must be a positive integer"
	ReasonInvalidMobile     = "mobileNumber must be 3 to 15 digits with an optional leading +"
	ReasonPasswordTooLong   = "password must not be longer than 72 bytes"
)

// ValidationError reports a rejected input. Field names the offending field
// (or a comma separated list when several are missing); Reason is the
// client-facing message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func requiredError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: field + " is required"}
}
