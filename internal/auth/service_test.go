package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Agricultural-portal/Frontend-sub001/internal/guard"
	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
	"github.com/Agricultural-portal/Frontend-sub001/internal/session"
)

type fakeBackend struct {
	resp session.LoginResponse
	err  error
}

func (f fakeBackend) Login(context.Context, string, string) (session.LoginResponse, error) {
	return f.resp, f.err
}

func demoToken(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	header, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload, err := json.Marshal(map[string]any{
		"sub": "f@demo.com", "userId": 7, "role": role, "exp": exp.Unix(),
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

func TestLoginEstablishesSessionAndRedirect(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	backend := fakeBackend{resp: session.LoginResponse{
		ID:    "7",
		Email: "f@demo.com",
		Role:  "FARMER",
		Token: demoToken(t, "FARMER", exp),
	}}
	svc := NewService(backend, session.NewMemoryStore(), nil)

	result, err := svc.Login(context.Background(), "f@demo.com", "x")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Redirect != "/farmer/dashboard" {
		t.Fatalf("expected farmer dashboard redirect, got %s", result.Redirect)
	}
	if result.Identity.Role != identity.RoleFarmer {
		t.Fatalf("expected FARMER got %s", result.Identity.Role)
	}

	current := svc.Current(context.Background(), result.SessionID)
	if current == nil {
		t.Fatalf("expected persisted session")
	}
	if current.Email != "f@demo.com" {
		t.Fatalf("unexpected identity: %+v", current)
	}
}

func TestLoginUnknownRoleIsHardFailure(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	backend := fakeBackend{resp: session.LoginResponse{
		ID:    "7",
		Email: "f@demo.com",
		Role:  "supervisor",
		Token: demoToken(t, "supervisor", exp),
	}}
	svc := NewService(backend, session.NewMemoryStore(), nil)

	if _, err := svc.Login(context.Background(), "f@demo.com", "x"); !errors.Is(err, identity.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole got %v", err)
	}
}

func TestLoginPropagatesBackendErrors(t *testing.T) {
	backend := fakeBackend{err: fmt.Errorf("%w: bad credentials", identity.ErrInvalidCredentials)}
	svc := NewService(backend, session.NewMemoryStore(), nil)

	if _, err := svc.Login(context.Background(), "f@demo.com", "wrong"); !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials got %v", err)
	}
}

func TestLogoutThenGuardRedirectsToLogin(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	backend := fakeBackend{resp: session.LoginResponse{
		ID:    "7",
		Email: "f@demo.com",
		Role:  "FARMER",
		Token: demoToken(t, "FARMER", exp),
	}}
	svc := NewService(backend, session.NewMemoryStore(), nil)

	result, err := svc.Login(context.Background(), "f@demo.com", "x")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background(), result.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	id := svc.Current(context.Background(), result.SessionID)
	d := guard.Evaluate(id, []identity.Role{identity.RoleFarmer})
	if d.Action != guard.ActionRedirectToLogin {
		t.Fatalf("expected login redirect after logout, got %v", d)
	}
}

func TestCurrentSwallowsStoreFailures(t *testing.T) {
	svc := NewService(fakeBackend{}, failingStore{}, nil)
	if id := svc.Current(context.Background(), "sid"); id != nil {
		t.Fatalf("expected nil identity on store failure, got %+v", id)
	}
}

type failingStore struct{}

func (failingStore) Write(context.Context, string, identity.Identity) error {
	return errors.New("store down")
}

func (failingStore) Read(context.Context, string) (*identity.Identity, error) {
	return nil, errors.New("store down")
}

func (failingStore) Clear(context.Context, string) error {
	return errors.New("store down")
}
