package middleware

import (
	"fmt"
	"net/http"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/handler/http/response"
)

// RequireIdentity lets the request through when allow accepts the caller.
// It mirrors page visibility and is not a security boundary.
func RequireIdentity(denied error, allow func(user.Identity) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allow(user.FromContext(r.Context())) {
				response.HandleError(w, denied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireTeamAccess gates the admin/hr pages
func RequireTeamAccess(next http.Handler) http.Handler {
	return RequireIdentity(user.ErrTeamAccessRequired, user.Identity.IsAdminOrHR)(next)
}

// RequireEmployee gates the self-service pages
func RequireEmployee(next http.Handler) http.Handler {
	return RequireIdentity(user.ErrEmployeeAccessRequired, user.Identity.IsEmployee)(next)
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := user.FromContext(r.Context()).Role
			if !user.HasPermission(role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
