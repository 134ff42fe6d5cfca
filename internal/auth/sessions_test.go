package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/taskhub/internal/domain/session"
)

// fake store with function fields, defaulting to a map-backed happy path

type fakeStore struct {
	items    map[string]session.Session
	createFn func(ctx context.Context, s session.Session) error
	getFn    func(ctx context.Context, id string) (session.Session, error)
	deleteFn func(ctx context.Context, id string) error
	deleted  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]session.Session)}
}

func (f *fakeStore) Create(ctx context.Context, s session.Session) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	f.items[s.ID] = s
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (session.Session, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	s, ok := f.items[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return s, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	delete(f.items, id)
	return nil
}

func TestManager_IssueThenResolve(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, 7*24*time.Hour)

	s, err := m.Issue(context.Background(), "user-1")

	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if s.ID == "" {
		t.Fatalf("Issue returned empty session id")
	}

	wantExpiry := s.CreatedAt.Add(7 * 24 * time.Hour)

	if !s.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("expiresAt = %v, want %v", s.ExpiresAt, wantExpiry)
	}

	userID, err := m.Resolve(context.Background(), s.ID)

	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if userID != "user-1" {
		t.Fatalf("Resolve returned user %q, want user-1", userID)
	}
}

func TestManager_ResolveUnknownOrEmpty(t *testing.T) {
	m := NewManager(newFakeStore(), time.Hour)

	_, err := m.Resolve(context.Background(), "")

	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("empty id: got %v, want ErrUnauthenticated", err)
	}

	_, err = m.Resolve(context.Background(), "no-such-session")

	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("unknown id: got %v, want ErrUnauthenticated", err)
	}
}

func TestManager_ResolveExpiredDeletesLazily(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, time.Hour)

	s, err := m.Issue(context.Background(), "user-1")

	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// jump past expiry
	m.now = func() time.Time { return s.ExpiresAt.Add(time.Minute) }

	_, err = m.Resolve(context.Background(), s.ID)

	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expired session: got %v, want ErrUnauthenticated", err)
	}

	if len(store.deleted) != 1 || store.deleted[0] != s.ID {
		t.Fatalf("expired session was not lazily deleted: %v", store.deleted)
	}

	if _, ok := store.items[s.ID]; ok {
		t.Fatalf("stale row still present after expired lookup")
	}
}

func TestManager_ResolveAtExactExpiryIsInvalid(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, time.Hour)

	s, err := m.Issue(context.Background(), "user-1")

	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	m.now = func() time.Time { return s.ExpiresAt }

	_, err = m.Resolve(context.Background(), s.ID)

	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("now == expiresAt should be invalid, got %v", err)
	}
}

func TestManager_ResolveStoreErrorIsNotUnauthenticated(t *testing.T) {
	store := newFakeStore()
	boom := errors.New("connection refused")
	store.getFn = func(context.Context, string) (session.Session, error) {
		return session.Session{}, boom
	}

	m := NewManager(store, time.Hour)

	_, err := m.Resolve(context.Background(), "anything")

	if errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("storage failure must not masquerade as unauthenticated")
	}

	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped store error", err)
	}
}

func TestManager_RevokeIdempotent(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, time.Hour)

	s, err := m.Issue(context.Background(), "user-1")

	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if err := m.Revoke(context.Background(), s.ID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	// second revoke of the same id is a no-op
	if err := m.Revoke(context.Background(), s.ID); err != nil {
		t.Fatalf("second Revoke failed: %v", err)
	}

	// empty id never touches the store
	deletedBefore := len(store.deleted)

	if err := m.Revoke(context.Background(), ""); err != nil {
		t.Fatalf("Revoke with empty id failed: %v", err)
	}

	if len(store.deleted) != deletedBefore {
		t.Fatalf("Revoke with empty id hit the store")
	}

	_, err = m.Resolve(context.Background(), s.ID)

	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("revoked session still resolves: %v", err)
	}
}
