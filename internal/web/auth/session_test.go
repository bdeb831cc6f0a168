package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
)

type memItem struct {
	value    string
	expireAt time.Time
}

// memSessionStore is an in-memory SessionStore honoring TTL against an
// adjustable clock.
type memSessionStore struct {
	mu    sync.Mutex
	now   time.Time
	items map[string]memItem
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{
		now:   time.Now(),
		items: map[string]memItem{},
	}
}

func (s *memSessionStore) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *memSessionStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = memItem{value: value, expireAt: s.now.Add(ttl)}
	return nil
}

func (s *memSessionStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[key]
	if !ok || s.now.After(it.expireAt) {
		return "", false, nil
	}

	return it.value, true, nil
}

func (s *memSessionStore) Del(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.items[key]
	delete(s.items, key)
	return ok, nil
}

// TestSessionLifecycle verifies issue/resolve/revoke round trips.
func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mgr := NewManager(newMemSessionStore())

	token, err := mgr.Issue(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := mgr.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "user-1", uid)

	require.NoError(t, mgr.Revoke(ctx, token))

	_, err = mgr.Resolve(ctx, token)
	require.True(t, errors.Is(err, ErrUnauthorized))
}

// TestSessionRevokeAbsent verifies revoking twice reports unauthorized.
func TestSessionRevokeAbsent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mgr := NewManager(newMemSessionStore())

	token, err := mgr.Issue(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(ctx, token))
	err = mgr.Revoke(ctx, token)
	require.True(t, errors.Is(err, ErrUnauthorized))

	err = mgr.Revoke(ctx, "never-issued")
	require.True(t, errors.Is(err, ErrUnauthorized))
}

// TestSessionExpiry verifies tokens die after the 24h TTL with no sliding window.
func TestSessionExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newMemSessionStore()
	mgr := NewManager(store)

	token, err := mgr.Issue(ctx, "user-1")
	require.NoError(t, err)

	store.advance(23 * time.Hour)
	uid, err := mgr.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "user-1", uid)

	// resolving above must not have refreshed the expiry
	store.advance(90 * time.Minute)
	_, err = mgr.Resolve(ctx, token)
	require.True(t, errors.Is(err, ErrUnauthorized))
}

// TestSessionTokensDistinct verifies each issue yields a fresh token.
func TestSessionTokensDistinct(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mgr := NewManager(newMemSessionStore())

	t1, err := mgr.Issue(ctx, "user-1")
	require.NoError(t, err)
	t2, err := mgr.Issue(ctx, "user-1")
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)

	// both resolve independently
	uid, err := mgr.Resolve(ctx, t1)
	require.NoError(t, err)
	require.Equal(t, "user-1", uid)
	uid, err = mgr.Resolve(ctx, t2)
	require.NoError(t, err)
	require.Equal(t, "user-1", uid)
}

// TestSessionEmptyToken verifies the empty token never resolves.
func TestSessionEmptyToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mgr := NewManager(newMemSessionStore())

	_, err := mgr.Resolve(ctx, "")
	require.True(t, errors.Is(err, ErrUnauthorized))
	err = mgr.Revoke(ctx, "")
	require.True(t, errors.Is(err, ErrUnauthorized))
}
