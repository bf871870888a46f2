package session

import (
	"context"

	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
)

// Store is the credential store: the single owner of persisted session
// state. Each session holds two slots written and cleared together — the
// raw bearer token and the serialized identity. A read with either slot
// missing, malformed, or expired degrades to absent (nil, nil); expired
// and malformed state is cleared as a side effect so later reads stay
// cheap and consistent.
type Store interface {
	Write(ctx context.Context, sid string, id identity.Identity) error
	Read(ctx context.Context, sid string) (*identity.Identity, error)
	Clear(ctx context.Context, sid string) error
}
