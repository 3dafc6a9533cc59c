package handler

import (
	"net/http"

	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
)

func ListClients(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := service.ListClients(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, clients)
	}
}

func CreateClient(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateClientRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		client, err := service.CreateClient(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, client)
	}
}

func GetClient(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		client, err := service.GetClient(r.Context(), clientID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, client)
	}
}

func UpdateClient(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req domain.UpdateClientRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}
		req.ID = clientID

		client, err := service.UpdateClient(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, client)
	}
}
