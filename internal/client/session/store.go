// Package session owns the authenticated principal and the bearer token.
// The token's presence is the sole determinant of "signed in": it is created
// by login/signup/OTP verification, persisted to the local database, attached
// to every outbound request (the Store is the api.TokenSource), and removed
// on sign-out or when the backend rejects it.
//
// Single-writer discipline: many components read the token, only the Store's
// own operations mutate it.
package session

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/client/models"
	"github.com/sisimpur/sisimpur-cli/internal/client/repositories/metadata"
	"github.com/sisimpur/sisimpur-cli/internal/dbx"
	"github.com/sisimpur/sisimpur-cli/internal/logging"
)

// Durable keys. The token is the one credential; the email is kept only to
// prefill the next login prompt.
const (
	keyToken = "token"
	keyEmail = "email"
)

type Store struct {
	db     *sql.DB
	client api.Client
	log    logging.Logger

	mu        sync.RWMutex
	token     string
	principal *models.Principal
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{db: db, log: log}
}

// UseClient attaches the API client needed by Revalidate. The store is the
// client's TokenSource, so the two are necessarily constructed in two steps.
func (s *Store) UseClient(c api.Client) {
	s.client = c
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Current returns the signed-in principal, or nil.
func (s *Store) Current() *models.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// SavedEmail returns the last signed-in email, or "" when none is stored.
func (s *Store) SavedEmail(ctx context.Context) string {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keyEmail)
	if err != nil {
		return ""
	}
	return string(v)
}

// SetAuthenticated persists the token and updates the in-memory principal.
// Called right after a login/signup/OTP verification succeeds.
func (s *Store) SetAuthenticated(ctx context.Context, token string, p *models.Principal) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		if p != nil && p.Email != "" {
			return repo.Set(ctx, keyEmail, []byte(p.Email))
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.principal = p
	s.mu.Unlock()
	return nil
}

// Clear removes the token from durable storage and nulls the principal
// without contacting the server. Used for local sign-out and forced logout.
func (s *Store) Clear(ctx context.Context) error {
	if err := metadata.NewSQLiteRepository(s.db).Delete(ctx, keyToken); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = ""
	s.principal = nil
	s.mu.Unlock()
	return nil
}

// Revalidate loads the persisted token and confirms it against the backend's
// who-am-I endpoint, hydrating the principal on success. Any failure,
// rejection or no response alike, clears the session. Known identity is kept
// until the call settles, so overlapping invocations resolve to whichever
// response lands last.
func (s *Store) Revalidate(ctx context.Context) error {
	if s.client == nil {
		return errors.New("session store: no api client attached")
	}

	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keyToken)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		s.mu.Lock()
		s.token = ""
		s.principal = nil
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.token = string(raw)
	s.mu.Unlock()

	p, err := s.client.Me(ctx)
	if err != nil {
		s.log.Warn(ctx, "session revalidation failed, signing out", "error", err)
		if clearErr := s.Clear(ctx); clearErr != nil {
			return clearErr
		}
		return err
	}

	s.mu.Lock()
	s.principal = p
	s.mu.Unlock()
	return nil
}
