package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dayflow-hrms/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hrms/dayflow-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Identify attaches the caller identity to the request context. It runs after
// jwtauth.Verifier; a missing, expired or malformed session yields a guest so
// pages can degrade instead of failing.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := user.Guest()

		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil && !errors.Is(err, jwtauth.ErrNoTokenFound) {
			slog.Debug("Ignoring unusable session token", "error", err)
		}
		if err == nil && token != nil {
			if tokenType, _ := claims["type"].(string); tokenType == jwt.TokenTypeAccess {
				identity = user.IdentityFromClaims(claims)
			}
		}

		next.ServeHTTP(w, r.WithContext(user.WithIdentity(r.Context(), identity)))
	})
}
