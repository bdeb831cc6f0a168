// Package auth issues and validates the opaque session tokens that guard
// every protected endpoint.
package auth

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/google/uuid"

	redisSDK "github.com/Laisky/laisky-files-manager/library/db/redis"
)

// DefaultSessionTTL is the absolute lifetime of a token.
// There is no sliding window; Resolve never refreshes the expiry.
const DefaultSessionTTL = 24 * time.Hour

// Manager maps opaque bearer tokens to user ids atop a TTL key-value store.
type Manager struct {
	store SessionStore
	ttl   time.Duration
}

// NewManager creates a session manager with the default 24h TTL.
func NewManager(store SessionStore) *Manager {
	return &Manager{
		store: store,
		ttl:   DefaultSessionTTL,
	}
}

func sessionKey(token string) string {
	return redisSDK.KeyPrefixSession + token
}

// Issue generates an unguessable token for the user and stores it with TTL.
// Collisions are left to the generator's negligible collision probability.
func (m *Manager) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.New().String()
	if err := m.store.Set(ctx, sessionKey(token), userID, m.ttl); err != nil {
		return "", errors.Wrap(err, "store session")
	}

	return token, nil
}

// Resolve returns the user id the token was issued for.
// Missing and expired tokens both come back as ErrUnauthorized.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", errors.WithStack(ErrUnauthorized)
	}

	userID, ok, err := m.store.Get(ctx, sessionKey(token))
	if err != nil {
		return "", errors.Wrap(err, "load session")
	}
	if !ok {
		return "", errors.WithStack(ErrUnauthorized)
	}

	return userID, nil
}

// Revoke deletes the token. Revoking a token that no longer exists is
// reported as ErrUnauthorized, which callers surface as 401.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return errors.WithStack(ErrUnauthorized)
	}

	ok, err := m.store.Del(ctx, sessionKey(token))
	if err != nil {
		return errors.Wrap(err, "delete session")
	}
	if !ok {
		return errors.WithStack(ErrUnauthorized)
	}

	return nil
}
