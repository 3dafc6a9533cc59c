package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/tracking"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
)

func ListAppointments(service tracking.Tracker, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		query := r.URL.Query()
		filters := domain.AppointmentFilters{
			Search:  query.Get("search"),
			Channel: query.Get("channel"),
		}

		appointments, err := service.ListAppointments(r.Context(), baseID, filters, time.Now())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, appointments)
	}
}

func BookAppointment(service tracking.Tracker, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		var req domain.BookAppointmentRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		appointment, err := service.BookAppointment(r.Context(), baseID, req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, appointment)
	}
}

func CancelAppointment(service tracking.Tracker, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		if err := service.CancelAppointment(r.Context(), baseID, pathParam(r, "record_id")); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
