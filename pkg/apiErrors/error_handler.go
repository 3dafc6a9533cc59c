package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Error codes returned to API consumers
const (
	// Authentication
	ErrInvalidCredentials    = "AUTH_001" // Invalid credentials
	ErrUserDisabled          = "AUTH_002" // User disabled
	ErrUserNotFound          = "AUTH_003" // User not found
	ErrUserLocked            = "AUTH_004" // User temporarily locked
	ErrPasswordExpired       = "AUTH_005" // Password expired
	ErrInvalidToken          = "AUTH_006" // Invalid token
	ErrExpiredToken          = "AUTH_007" // Expired token
	ErrInsufficientPrivilege = "AUTH_008" // Insufficient privileges
	ErrUserAlreadyExists     = "AUTH_009" // User already exists

	// Validation
	ErrInvalidRequest      = "VAL_001" // Invalid request
	ErrMissingRequiredData = "VAL_002" // Missing required data
	ErrInvalidFormat       = "VAL_003" // Invalid data format
	ErrInvalidLoanInput    = "VAL_004" // Loan input outside the calculator's domain
	ErrWeakPassword        = "VAL_005" // Password does not meet requirements
	ErrPasswordMismatch    = "VAL_006" // Password confirmation does not match

	// Record store
	ErrRecordNotFound    = "REC_001" // Record not found in the client's base
	ErrRecordStore       = "REC_002" // Record store rejected or failed the request
	ErrClientHasNoBase   = "REC_003" // Client has no base configured
	ErrRecordRateLimited = "REC_004" // Record store rate limit reached

	// Server
	ErrInternalServer    = "SRV_001" // Internal server error
	ErrDatabaseOperation = "SRV_002" // Database operation error
	ErrExternalService   = "SRV_003" // External service error
	ErrCommunication     = "SRV_004" // Communication error
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrUserLocked:            http.StatusForbidden,
	ErrPasswordExpired:       http.StatusUnauthorized,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusConflict,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrInvalidLoanInput:      http.StatusUnprocessableEntity,
	ErrWeakPassword:          http.StatusBadRequest,
	ErrPasswordMismatch:      http.StatusBadRequest,
	ErrRecordNotFound:        http.StatusNotFound,
	ErrRecordStore:           http.StatusBadGateway,
	ErrClientHasNoBase:       http.StatusConflict,
	ErrRecordRateLimited:     http.StatusTooManyRequests,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
}

// APIError is the JSON body of every error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor returns the HTTP status mapped to an error code.
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError writes a standardized error response
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError wraps a Go error in an APIError with the given code
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
