package financing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for loan inputs outside the calculator's domain.
	ErrInvalidInput = errors.New("invalid loan input")

	ErrMissingBase   = errors.New("client has no base configured")
	ErrMissingRecord = errors.New("missing record id")
)

// FinanceError carries the API code and the offending field.
type FinanceError struct {
	Err     error
	Code    string
	Field   string
	Details string
}

func (e *FinanceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *FinanceError) Unwrap() error {
	return e.Err
}

func NewFinanceError(baseErr error, code, field, details string) *FinanceError {
	return &FinanceError{
		Err:     baseErr,
		Code:    code,
		Field:   field,
		Details: details,
	}
}
