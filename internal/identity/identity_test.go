package identity

import (
	"errors"
	"testing"
	"time"
)

func TestParseRoleNormalizesCase(t *testing.T) {
	for _, raw := range []string{"farmer", "FARMER", "Farmer", " farmer "} {
		role, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if role != RoleFarmer {
			t.Fatalf("parse %q: expected %s got %s", raw, RoleFarmer, role)
		}
	}
}

func TestParseRoleStripsAuthorityPrefix(t *testing.T) {
	role, err := ParseRole("ROLE_ADMIN")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if role != RoleAdmin {
		t.Fatalf("expected %s got %s", RoleAdmin, role)
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "manager", "ROLE_SUPERVISOR", "farmer2"} {
		if _, err := ParseRole(raw); !errors.Is(err, ErrUnknownRole) {
			t.Fatalf("parse %q: expected ErrUnknownRole got %v", raw, err)
		}
	}
}

func TestIdentityValid(t *testing.T) {
	now := time.Now()
	id := Identity{
		ID:        "7",
		Email:     "f@demo.com",
		Role:      RoleFarmer,
		Token:     "tok",
		ExpiresAt: now.Add(time.Hour),
	}
	if !id.Valid(now) {
		t.Fatalf("expected identity to be valid")
	}

	expired := id
	expired.ExpiresAt = now.Add(-time.Minute)
	if expired.Valid(now) {
		t.Fatalf("expired identity must not be valid")
	}

	partial := id
	partial.Email = ""
	if partial.Valid(now) {
		t.Fatalf("identity without email must not be valid")
	}

	badRole := id
	badRole.Role = "SUPERVISOR"
	if badRole.Valid(now) {
		t.Fatalf("identity with unknown role must not be valid")
	}
}
