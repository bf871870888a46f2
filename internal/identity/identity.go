package identity

import (
	"strings"
	"time"
)

// Role is the closed set of dashboard roles. Values are canonical uppercase;
// nothing downstream ever compares raw backend strings.
type Role string

const (
	RoleFarmer Role = "FARMER"
	RoleBuyer  Role = "BUYER"
	RoleAdmin  Role = "ADMIN"
)

const authorityPrefix = "ROLE_"

// ParseRole normalizes a backend- or token-supplied role string into the
// closed set. It tolerates any casing and a ROLE_ authority prefix. A value
// outside the set is ErrUnknownRole, never a silent default.
func ParseRole(raw string) (Role, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	v = strings.TrimPrefix(v, authorityPrefix)
	switch Role(v) {
	case RoleFarmer, RoleBuyer, RoleAdmin:
		return Role(v), nil
	default:
		return "", ErrUnknownRole
	}
}

// Is reports whether the role matches any of the given roles,
// case-insensitively.
func (r Role) Is(roles ...Role) bool {
	for _, candidate := range roles {
		if strings.EqualFold(string(r), string(candidate)) {
			return true
		}
	}
	return false
}

// Identity is the normalized authenticated principal. It is either fully
// populated with a future expiry or not represented at all (callers pass
// nil); no partially-authenticated value exists.
type Identity struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Role        Role      `json:"role"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Valid reports whether the identity is fully populated and not expired
// at the given instant.
func (i Identity) Valid(now time.Time) bool {
	if i.ID == "" || i.Email == "" || i.Token == "" {
		return false
	}
	if _, err := ParseRole(string(i.Role)); err != nil {
		return false
	}
	return i.ExpiresAt.After(now)
}
