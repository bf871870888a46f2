package session

import (
	"strings"
	"time"

	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
	"github.com/Agricultural-portal/Frontend-sub001/internal/token"
)

// LoginResponse is the backend's login payload. The backend may answer with
// the full field set or with a bare token that must be decoded locally.
type LoginResponse struct {
	ID        token.OpaqueID `json:"id"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	FullName  string         `json:"fullName"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	Token     string         `json:"token"`
}

// FromLoginResponse maps a login payload into a canonical Identity.
// Deterministic: the same payload always yields the same identity.
func FromLoginResponse(resp LoginResponse) (identity.Identity, error) {
	if resp.Token == "" {
		return identity.Identity{}, identity.ErrMalformedToken
	}

	// Bare-token responses carry no profile fields; everything comes from
	// the token itself.
	if resp.Role == "" && resp.Email == "" {
		return FromToken(resp.Token)
	}

	claims, err := token.DecodeClaims(resp.Token)
	if err != nil {
		return identity.Identity{}, err
	}
	if claims.ExpiresAt <= 0 {
		return identity.Identity{}, identity.ErrMalformedToken
	}

	role, err := identity.ParseRole(resp.Role)
	if err != nil {
		return identity.Identity{}, err
	}

	email := resp.Email
	if email == "" {
		email = claims.Subject
	}

	id := resp.ID.String()
	if id == "" {
		id = claims.UserID.String()
	}
	if id == "" {
		id = email
	}

	return identity.Identity{
		ID:          id,
		Email:       email,
		DisplayName: displayName(resp),
		Role:        role,
		Token:       resp.Token,
		ExpiresAt:   time.Unix(claims.ExpiresAt, 0),
	}, nil
}

// FromToken recovers an Identity from a previously-issued bearer token.
// Role resolution tolerates both the direct role claim and the
// ROLE_-prefixed authorities list.
func FromToken(tok string) (identity.Identity, error) {
	claims, err := token.DecodeClaims(tok)
	if err != nil {
		return identity.Identity{}, err
	}
	if claims.Subject == "" || claims.ExpiresAt <= 0 {
		return identity.Identity{}, identity.ErrMalformedToken
	}

	raw := claims.Role
	if raw == "" && len(claims.Authorities) > 0 {
		raw = claims.Authorities[0].Authority
	}
	if raw == "" {
		return identity.Identity{}, identity.ErrUnknownRole
	}
	role, err := identity.ParseRole(raw)
	if err != nil {
		return identity.Identity{}, err
	}

	id := claims.UserID.String()
	if id == "" {
		id = claims.Subject
	}

	return identity.Identity{
		ID:        id,
		Email:     claims.Subject,
		Role:      role,
		Token:     tok,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}, nil
}

func displayName(resp LoginResponse) string {
	if resp.FullName != "" {
		return resp.FullName
	}
	return strings.TrimSpace(resp.FirstName + " " + resp.LastName)
}
