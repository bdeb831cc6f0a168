package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-files-manager/internal/web/user/model"
)

// memUserStore is an in-memory Store for tests.
type memUserStore struct {
	mu    sync.Mutex
	users []*model.User
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *memUserStore) Insert(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
	return nil
}

func (s *memUserStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func newTestRegistry(t *testing.T) (*Registry, *memUserStore) {
	t.Helper()
	logger, err := logSDK.NewConsoleWithName("test", logSDK.LevelInfo)
	require.NoError(t, err)

	store := new(memUserStore)
	return New(logger, store), store
}

// TestRegisterSuccess verifies registration stores the hash, not the plaintext.
func TestRegisterSuccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	registry, store := newTestRegistry(t)

	u, err := registry.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	require.False(t, u.ID.IsZero())
	require.Equal(t, "alice@example.com", u.Email)
	require.NotEmpty(t, u.Password)
	require.NotEqual(t, "secret", u.Password)

	cnt, err := store.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, cnt)
}

// TestRegisterValidation verifies the missing-field errors.
func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	registry, _ := newTestRegistry(t)

	_, err := registry.Register(ctx, "", "secret")
	require.True(t, errors.Is(err, ErrMissingEmail))

	_, err = registry.Register(ctx, "alice@example.com", "")
	require.True(t, errors.Is(err, ErrMissingPassword))
}

// TestRegisterDuplicate verifies an email registers exactly once.
func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	registry, _ := newTestRegistry(t)

	_, err := registry.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	_, err = registry.Register(ctx, "alice@example.com", "other")
	require.True(t, errors.Is(err, ErrAlreadyExists))

	// email matching is exact and case-sensitive
	_, err = registry.Register(ctx, "Alice@example.com", "secret")
	require.NoError(t, err)
}

// TestValidateLogin verifies credential checks against the stored hash.
func TestValidateLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	registry, _ := newTestRegistry(t)

	created, err := registry.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	u, err := registry.ValidateLogin(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, created.ID, u.ID)

	_, err = registry.ValidateLogin(ctx, "alice@example.com", "wrong")
	require.True(t, errors.Is(err, model.ErrInvalidCredentials))

	// unknown email is indistinguishable from a wrong password
	_, err = registry.ValidateLogin(ctx, "nobody@example.com", "secret")
	require.True(t, errors.Is(err, model.ErrInvalidCredentials))
}

// TestWhoAmI verifies id resolution.
func TestWhoAmI(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	registry, _ := newTestRegistry(t)

	created, err := registry.Register(ctx, "alice@example.com", "secret")
	require.NoError(t, err)

	u, err := registry.WhoAmI(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email)

	_, err = registry.WhoAmI(ctx, primitive.NewObjectID())
	require.True(t, errors.Is(err, model.ErrUserNotFound))
}
