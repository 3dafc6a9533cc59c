package tracking

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField   = errors.New("missing required field")
	ErrInvalidField   = errors.New("invalid field")
	ErrMissingBase    = errors.New("client has no base configured")
	ErrNothingToApply = errors.New("no fields to update")
)

// TrackingError carries the API code and the offending field.
type TrackingError struct {
	Err     error
	Code    string
	Field   string
	Details string
}

func (e *TrackingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *TrackingError) Unwrap() error {
	return e.Err
}

func NewTrackingError(baseErr error, code, field, details string) *TrackingError {
	return &TrackingError{
		Err:     baseErr,
		Code:    code,
		Field:   field,
		Details: details,
	}
}
