package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/dealer-crm-api/internal/usecases/analyzing"
)

func GetDashboard(service analyzing.Analyzer, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		summary, err := service.GetDashboard(r.Context(), baseID, time.Now())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func GetAnalytics(service analyzing.Analyzer, resolver BaseResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseID, ok := resolveBase(w, r, resolver)
		if !ok {
			return
		}

		summary, err := service.GetAnalytics(r.Context(), baseID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func GetAdminOverview(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := service.GetAdminOverview(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, overview)
	}
}
