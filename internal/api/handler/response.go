package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable"
	airtabledomain "github.com/vfg2006/dealer-crm-api/infrastructure/integrator/airtable/domain"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/financing"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/tracking"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
	"github.com/vfg2006/dealer-crm-api/pkg/log"
	"github.com/vfg2006/dealer-crm-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Could not encode response")
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func pathParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// pathID parses a numeric path parameter, writing the error response itself
// when it is missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := pathParam(r, name)
	if raw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, name+" is required", nil)
		return 0, false
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, name+" must be a positive integer", nil)
		return 0, false
	}

	return id, true
}

func claimsOrFail(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User not authenticated", nil)
		return nil, false
	}
	return claims, true
}

// BaseResolver maps the :id of a client route to the base the caller may use.
type BaseResolver interface {
	ResolveBaseID(ctx context.Context, claims *domain.Claims, clientID int) (string, error)
}

func resolveBase(w http.ResponseWriter, r *http.Request, resolver BaseResolver) (string, bool) {
	claims, ok := claimsOrFail(w, r)
	if !ok {
		return "", false
	}

	clientID, ok := pathID(w, r, "id")
	if !ok {
		return "", false
	}

	baseID, err := resolver.ResolveBaseID(r.Context(), claims, clientID)
	if err != nil {
		writeServiceError(w, r, err)
		return "", false
	}

	return baseID, true
}

// writeServiceError maps a use case error onto the API error contract.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var (
		authErr     *authenticating.AuthError
		financeErr  *financing.FinanceError
		trackingErr *tracking.TrackingError
		storeErr    *airtabledomain.ErrorResponse
	)

	switch {
	case errors.As(err, &authErr):
		logger.Warn("Request rejected")
		details := map[string]any{}
		if authErr.UserID != 0 {
			details["user_id"] = authErr.UserID
		}
		if len(details) == 0 {
			details = nil
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), details)

	case errors.As(err, &financeErr):
		logger.Warn("Finance request rejected")
		apiErrors.WriteError(w, financeErr.Code, financeErr.Error(), fieldDetails(financeErr.Field))

	case errors.As(err, &trackingErr):
		logger.Warn("Tracking request rejected")
		apiErrors.WriteError(w, trackingErr.Code, trackingErr.Error(), fieldDetails(trackingErr.Field))

	case errors.Is(err, airtabledomain.ErrNotFound):
		apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "Record not found", nil)

	case errors.Is(err, airtabledomain.ErrRateLimited):
		logger.Warn("Record store rate limit reached")
		apiErrors.WriteError(w, apiErrors.ErrRecordRateLimited, "Record store is busy, try again shortly", nil)

	case errors.Is(err, airtable.ErrSnapshotUnavailable), errors.As(err, &storeErr):
		logger.Error("Record store request failed")
		apiErrors.WriteError(w, apiErrors.ErrRecordStore, "Could not reach the client's records", nil)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Warn("Request cancelled")
		apiErrors.WriteError(w, apiErrors.ErrCommunication, "Request cancelled", nil)

	default:
		logger.Error("Unhandled error")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Internal server error", nil)
	}
}

func fieldDetails(field string) map[string]any {
	if field == "" {
		return nil
	}
	return map[string]any{"field": field}
}
