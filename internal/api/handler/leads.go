package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/tracking"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
)

func ListLeads(service tracking.Tracker, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		query := r.URL.Query()
		filters := domain.LeadFilters{
			Search: query.Get("search"),
			Source: query.Get("source"),
		}

		leads, err := service.ListLeads(r.Context(), baseID, filters, time.Now())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, leads)
	}
}

func CreateLead(service tracking.Tracker, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		var req domain.CreateLeadRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		lead, err := service.CreateLead(r.Context(), baseID, req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, lead)
	}
}

func UpdateLead(service tracking.Tracker, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		var req domain.UpdateLeadRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		lead, err := service.UpdateLead(r.Context(), baseID, pathParam(r, "record_id"), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, lead)
	}
}

func DeleteLead(service tracking.Tracker, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		if err := service.DeleteLead(r.Context(), baseID, pathParam(r, "record_id")); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// BookLead books an appointment from an existing lead.
func BookLead(service tracking.Tracker, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		var req domain.BookFromLeadRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		appointment, err := service.BookFromLead(r.Context(), baseID, pathParam(r, "record_id"), req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, appointment)
	}
}
