package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityEcho(got *user.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = user.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestIdentify(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	chain := func(h http.Handler) http.Handler {
		return jwtauth.Verifier(jwtService.JWTAuth())(Identify(h))
	}

	employee := user.Identity{UserID: "u3", Name: "Amit Verma", Role: user.RoleEmployee, EmployeeID: "EMP003"}
	access, _, err := jwtService.GenerateAccessToken(employee)
	require.NoError(t, err)
	sse, _, err := jwtService.GenerateSSEToken("u3")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   user.Identity
	}{
		{"valid access token", "Bearer " + access, employee},
		{"no token", "", user.Guest()},
		{"garbage token", "Bearer not.a.jwt", user.Guest()},
		{"sse token is not a session", "Bearer " + sse, user.Guest()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got user.Identity
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			chain(identityEcho(&got)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireGates(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		gate     func(http.Handler) http.Handler
		role     user.Role
		wantCode int
	}{
		{"admin sees team pages", RequireTeamAccess, user.RoleAdmin, http.StatusOK},
		{"hr sees team pages", RequireTeamAccess, user.RoleHR, http.StatusOK},
		{"employee cannot see team pages", RequireTeamAccess, user.RoleEmployee, http.StatusForbidden},
		{"guest cannot see team pages", RequireTeamAccess, user.RoleGuest, http.StatusForbidden},
		{"employee sees self-service", RequireEmployee, user.RoleEmployee, http.StatusOK},
		{"admin cannot use self-service", RequireEmployee, user.RoleAdmin, http.StatusForbidden},
		{"unknown role sees neither", RequireTeamAccess, user.ParseRole("Manager"), http.StatusForbidden},
		{"custom gate", RequireIdentity(user.ErrAccessRestricted, func(id user.Identity) bool { return id.UserID == "u1" }), user.RoleGuest, http.StatusOK},
		{"approve permission", RequirePermission(user.PermissionLeaveApprove), user.RoleHR, http.StatusOK},
		{"approve permission denied", RequirePermission(user.PermissionLeaveApprove), user.RoleEmployee, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(user.WithIdentity(req.Context(), user.Identity{UserID: "u1", Role: tt.role}))
			rec := httptest.NewRecorder()

			tt.gate(ok).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
