package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/Agricultural-portal/Frontend-sub001/internal/guard"
	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
	"github.com/Agricultural-portal/Frontend-sub001/internal/notification"
	"github.com/Agricultural-portal/Frontend-sub001/internal/session"
)

// BackendClient performs the login exchange against the external backend.
type BackendClient interface {
	Login(ctx context.Context, email, password string) (session.LoginResponse, error)
}

// Service composes the backend exchange, the session resolver and the
// credential store. The store is the only component it mutates.
type Service struct {
	backend  BackendClient
	store    session.Store
	notifier notification.Notifier
}

// NewService creates the session service.
func NewService(backend BackendClient, store session.Store, notifier notification.Notifier) *Service {
	return &Service{backend: backend, store: store, notifier: notifier}
}

// LoginResult is the outcome of a successful login: the minted session id,
// the normalized identity and the role's landing route.
type LoginResult struct {
	SessionID string
	Identity  identity.Identity
	Redirect  string
}

// Login exchanges credentials, normalizes the response into an Identity and
// persists the session. The post-login redirect comes from the same table
// the route guard uses.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	resp, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.notify(ctx, notification.Message{Kind: notification.KindLoginFailed, Subject: email, Detail: err.Error()})
		return LoginResult{}, err
	}

	id, err := session.FromLoginResponse(resp)
	if err != nil {
		s.notify(ctx, notification.Message{Kind: notification.KindLoginFailed, Subject: email, Detail: err.Error()})
		return LoginResult{}, err
	}

	redirect, ok := guard.LandingRoute(id.Role)
	if !ok {
		return LoginResult{}, identity.ErrUnknownRole
	}

	sid := uuid.NewString()
	if err := s.store.Write(ctx, sid, id); err != nil {
		return LoginResult{}, err
	}

	s.notify(ctx, notification.Message{Kind: notification.KindLogin, Subject: id.Email, Detail: string(id.Role)})
	return LoginResult{SessionID: sid, Identity: id, Redirect: redirect}, nil
}

// Current returns the identity for a session id, or nil when the session is
// absent, expired or unreadable. Store failures never escape this boundary;
// they degrade to the logged-out state.
func (s *Service) Current(ctx context.Context, sid string) *identity.Identity {
	if sid == "" {
		return nil
	}
	id, err := s.store.Read(ctx, sid)
	if err != nil {
		return nil
	}
	return id
}

// Logout clears the persisted session. Idempotent.
func (s *Service) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.store.Clear(ctx, sid); err != nil {
		return err
	}
	s.notify(ctx, notification.Message{Kind: notification.KindLogout, Subject: sid})
	return nil
}

func (s *Service) notify(ctx context.Context, msg notification.Message) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Send(ctx, msg)
}
