package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
)

type memoryEntry struct {
	token string
	data  []byte
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

// NewMemoryStore builds an in-memory credential store for development and
// tests. Identities round-trip through JSON so serialization behaves the
// same as the durable backends.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *memoryStore) Write(ctx context.Context, sid string, id identity.Identity) error {
	if !id.ExpiresAt.After(time.Now()) {
		return s.Clear(ctx, sid)
	}
	data, err := json.Marshal(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memoryEntry{token: id.Token, data: data}
	return nil
}

func (s *memoryStore) Read(ctx context.Context, sid string) (*identity.Identity, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sid]
	s.mu.RUnlock()
	if !ok || entry.token == "" {
		return nil, nil
	}

	var id identity.Identity
	if err := json.Unmarshal(entry.data, &id); err != nil {
		return nil, s.Clear(ctx, sid)
	}
	if !id.ExpiresAt.After(time.Now()) {
		return nil, s.Clear(ctx, sid)
	}
	return &id, nil
}

func (s *memoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
