package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type GeneratePasswordResponse struct {
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{Token: token})
	}
}

// GetMe returns the profile of the authenticated user.
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrFail(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// ChangePassword lets users change their own password only.
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetUserID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		claims, ok := claimsOrFail(w, r)
		if !ok {
			return
		}

		if claims.UserID != targetUserID {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Not allowed to change another user's password", nil)
			return
		}

		var req ChangePasswordRequest
		if err := decodeBody(r, &req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		err := service.ChangePassword(r.Context(), targetUserID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func GeneratePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsOrFail(w, r)
		if !ok {
			return
		}

		targetUserID, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		newPassword, err := service.GenerateStrongPassword(r.Context(), claims.UserID, targetUserID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		logrus.WithField("target_user_id", targetUserID).Info("Generated new password")

		writeJSON(w, http.StatusOK, GeneratePasswordResponse{Password: newPassword})
	}
}
