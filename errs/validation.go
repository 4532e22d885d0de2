package errs

import (
	"errors"
	"net/http"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// Validation rule identifiers reported in FieldViolation.Rule.
const (
	RuleRequired  = "required"
	RuleType      = "type"
	RuleMinLength = "min_length"
	RuleEmail     = "email"
	RuleOneOf     = "one_of"
)

// FieldViolation names one field and the rule it broke.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a submission. It is only
// ever produced before a write is attempted.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StatusCode lets the responder treat validation failures like any other client error.
func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// Add records a violation.
func (e *ValidationError) Add(field, rule, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Rule: rule, Message: message})
}

// Fields lists the failing field names in the order they were recorded.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// HasField reports whether field has at least one violation.
func (e *ValidationError) HasField(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// OrNil returns nil when no violation was recorded, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Violations) == 0 {
		return nil
	}
	return e
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
