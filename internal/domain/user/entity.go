package user

import (
	"context"
	"strings"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access to team views and approvals
	RoleHR       Role = "hr"       // Same visibility as admin
	RoleEmployee Role = "employee" // Self-service attendance only
	RoleGuest    Role = ""         // Missing or unreadable session
)

// ParseRole normalizes a role string. Unknown values are kept lower-cased so
// that gating simply fails to match them.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Identity is the caller derived from the access token claims.
type Identity struct {
	UserID     string
	Name       string
	Role       Role
	EmployeeID string
}

// Guest is the identity used whenever no usable session exists.
func Guest() Identity {
	return Identity{Name: DefaultName, Role: RoleGuest}
}

const DefaultName = "Employee"

// IdentityFromClaims reads the session claims. Missing or wrongly typed
// claims fall back to guest values instead of failing.
func IdentityFromClaims(claims map[string]interface{}) Identity {
	id := Guest()
	if claims == nil {
		return id
	}

	id.UserID = stringClaim(claims, "user_id")
	id.EmployeeID = stringClaim(claims, "employee_id")

	role := stringClaim(claims, "role")
	if role == "" {
		role = stringClaim(claims, "user_type")
	}
	id.Role = ParseRole(role)

	for _, key := range []string{"name", "full_name", "username"} {
		if name := strings.TrimSpace(stringClaim(claims, key)); name != "" {
			id.Name = name
			break
		}
	}
	return id
}

func stringClaim(claims map[string]interface{}, key string) string {
	v, _ := claims[key].(string)
	return v
}

// IsAdminOrHR checks if the identity can see team data
func (i Identity) IsAdminOrHR() bool {
	return i.Role == RoleAdmin || i.Role == RoleHR
}

// IsEmployee checks if the identity uses the self-service pages
func (i Identity) IsEmployee() bool {
	return i.Role == RoleEmployee
}

func (i Identity) IsGuest() bool {
	return i.Role == RoleGuest
}

// Owner is the storage key of the identity's personal state.
func (i Identity) Owner() string {
	if i.UserID != "" {
		return i.UserID
	}
	return i.EmployeeID
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the request identity, or Guest when none was attached.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Guest()
}
