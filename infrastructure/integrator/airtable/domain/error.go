package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("airtable: record not found")
	ErrRateLimited  = errors.New("airtable: rate limited")
	ErrUnauthorized = errors.New("airtable: unauthorized")
	ErrUnavailable  = errors.New("airtable: service unavailable")
)

// ErrorDetail is the error object of a failed call. The API sometimes sends
// the error as a bare string, which lands in Type.
type ErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	StatusCode int
	Detail     ErrorDetail
}

func (e *ErrorResponse) Error() string {
	if e.Detail.Message != "" {
		return fmt.Sprintf("airtable: status %d: %s: %s", e.StatusCode, e.Detail.Type, e.Detail.Message)
	}
	return fmt.Sprintf("airtable: status %d: %s", e.StatusCode, e.Detail.Type)
}

// Unwrap maps the status code to one of the package sentinels.
func (e *ErrorResponse) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case e.StatusCode >= http.StatusInternalServerError:
		return ErrUnavailable
	default:
		return nil
	}
}
