package middleware

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealer-crm-api/internal/domain"
	"github.com/vfg2006/dealer-crm-api/pkg/apiErrors"
)

const (
	RoleAdmin  = domain.RoleAdmin
	RoleClient = domain.RoleClient
)

// RoleMiddleware restricts a route to the given roles.
func RoleMiddleware(allowedRoles []int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.Warning("Access attempt without authentication")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User not authenticated", nil)
				return
			}

			if !slices.Contains(allowedRoles, userClaims.UserRoleID) {
				logrus.Warningf("Access denied for user ID=%d, Role=%d", userClaims.UserID, userClaims.UserRoleID)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "You are not allowed to access this resource", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleAdmin})
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleAdmin, RoleClient})
}

// AdminOrSelf lets admins through and restricts clients to routes whose :id
// parameter is their own user ID.
func AdminOrSelf() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RoleMiddleware([]int{RoleAdmin, RoleClient})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, _ := ClaimsFromContext(r.Context())
			if userClaims.UserRoleID == RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			id, err := strconv.Atoi(httprouter.ParamsFromContext(r.Context()).ByName("id"))
			if err != nil || id != userClaims.UserID {
				logrus.Warningf("Client %d tried to access client %q", userClaims.UserID, httprouter.ParamsFromContext(r.Context()).ByName("id"))
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Clients can only access their own data", nil)
				return
			}

			next.ServeHTTP(w, r)
		}))
	}
}
