package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
)

// PostgresStore persists sessions in PostgreSQL. Expected schema:
//
//	CREATE TABLE sessions (
//	    id         TEXT PRIMARY KEY,
//	    token      TEXT NOT NULL,
//	    identity   JSONB NOT NULL,
//	    expires_at TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed credential store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Write(ctx context.Context, sid string, id identity.Identity) error {
	if !id.ExpiresAt.After(time.Now()) {
		return s.Clear(ctx, sid)
	}
	data, err := json.Marshal(id)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `INSERT INTO sessions (id, token, identity, expires_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE SET token = $2, identity = $3, expires_at = $4`,
		sid, id.Token, data, id.ExpiresAt.UTC())
	return err
}

func (s *PostgresStore) Read(ctx context.Context, sid string) (*identity.Identity, error) {
	row := s.db.QueryRow(ctx, `SELECT token, identity, expires_at FROM sessions WHERE id = $1`, sid)
	var (
		tok       string
		data      []byte
		expiresAt time.Time
	)
	if err := row.Scan(&tok, &data, &expiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if tok == "" || !expiresAt.After(time.Now()) {
		return nil, s.Clear(ctx, sid)
	}

	var id identity.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, s.Clear(ctx, sid)
	}
	if !id.ExpiresAt.After(time.Now()) {
		return nil, s.Clear(ctx, sid)
	}
	return &id, nil
}

func (s *PostgresStore) Clear(ctx context.Context, sid string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sid)
	return err
}
