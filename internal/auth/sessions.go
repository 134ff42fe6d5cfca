package auth

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/taskhub/internal/domain/session"
	"github.com/google/uuid"
)

// ErrUnauthenticated covers missing, unknown and expired sessions alike; the
// caller cannot tell which it was.
var ErrUnauthenticated = errors.New("unauthenticated")

// Keep this small interface so tests can fake the store easily.
type SessionStore interface {
	Create(ctx context.Context, s session.Session) error
	GetByID(ctx context.Context, id string) (session.Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager owns the session lifecycle: Active until expiresAt, then treated
// as invalid and deleted on the next lookup. Expiry is fixed from creation,
// not refreshed per request.
type Manager struct {
	store SessionStore
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(store SessionStore, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Issue creates a session for the user and returns it. The session id is the
// bearer token the client gets back as a cookie.
func (m *Manager) Issue(ctx context.Context, userID string) (session.Session, error) {
	now := m.now().UTC()

	s := session.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	err := m.store.Create(ctx, s)

	if err != nil {
		return session.Session{}, err
	}

	return s, nil
}

// Resolve maps a presented session id to a user id. Expired sessions are
// deleted on the way out (lazy cleanup, no background sweep).
func (m *Manager) Resolve(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrUnauthenticated
	}

	s, err := m.store.GetByID(ctx, sessionID)

	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return "", ErrUnauthenticated
		}

		return "", err
	}

	if s.Expired(m.now().UTC()) {
		_ = m.store.Delete(ctx, s.ID)

		return "", ErrUnauthenticated
	}

	return s.UserID, nil
}

// Revoke deletes the session. Revoking an unknown id is a no-op.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	return m.store.Delete(ctx, sessionID)
}
