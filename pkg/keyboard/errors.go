package keyboard

import (
	"errors"
	"fmt"
)

// Error codes, stable for programmatic handling.
const (
	CodeConfiguration = "CONFIG_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
	CodePagination    = "PAGINATION_ERROR"
	CodeLocale        = "LOCALE_ERROR"
)

// ConfigurationError reports a malformed static setting (row width, capacity).
type ConfigurationError struct {
	Setting string
	Value   any
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("keyboard: invalid configuration %q: %s", e.Setting, e.Reason)
}

func (e *ConfigurationError) Code() string { return CodeConfiguration }

// ValidationError reports a button or keyboard that violates a validation rule.
type ValidationError struct {
	Field    string
	Value    any
	Expected string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("keyboard: validation failed for %q: %s", e.Field, e.Reason)
	}
	if e.Expected != "" {
		return fmt.Sprintf("keyboard: validation failed for %q: expected %s", e.Field, e.Expected)
	}
	return fmt.Sprintf("keyboard: validation failed for %q", e.Field)
}

func (e *ValidationError) Code() string { return CodeValidation }

// PaginationError reports invalid pagination arguments.
type PaginationError struct {
	Param  string
	Value  any
	Reason string
}

func (e *PaginationError) Error() string {
	return fmt.Sprintf("keyboard: invalid pagination param %q: %s", e.Param, e.Reason)
}

func (e *PaginationError) Code() string { return CodePagination }

// PaginationUnchangedError signals that the requested pagination row is
// identical to the previous one recorded for the same source. Callers should
// treat it as "no update needed" and skip the message edit, not as a defect.
//
// It unwraps to its embedded PaginationError, so errors.As with a
// *PaginationError target matches too.
type PaginationUnchangedError struct {
	PaginationError
	Source string
}

func (e *PaginationUnchangedError) Unwrap() error { return &e.PaginationError }

func newUnchangedError(source string) *PaginationUnchangedError {
	return &PaginationUnchangedError{
		PaginationError: PaginationError{
			Param:  "keyboard_state",
			Value:  source,
			Reason: "unchanged since last call",
		},
		Source: source,
	}
}

// IsUnchanged reports whether err is (or wraps) a PaginationUnchangedError.
func IsUnchanged(err error) bool {
	var ue *PaginationUnchangedError
	return errors.As(err, &ue)
}

// LocaleError reports invalid locale / language-selection parameters.
type LocaleError struct {
	Param  string
	Value  any
	Reason string
}

func (e *LocaleError) Error() string {
	return fmt.Sprintf("keyboard: invalid locale param %q: %s", e.Param, e.Reason)
}

func (e *LocaleError) Code() string { return CodeLocale }
