// Package service implements the user registry.
package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v5"
	gcrypto "github.com/Laisky/go-utils/v5/crypto"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-files-manager/internal/web/user/model"
)

// Store is the credential-store surface the registry needs.
// The mongo dao implements it; tests substitute an in-memory fake.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	Insert(ctx context.Context, u *model.User) error
	Count(ctx context.Context) (int64, error)
}

// Registry registers users and validates their logins.
type Registry struct {
	logger logSDK.Logger
	store  Store
}

// New create new registry
func New(logger logSDK.Logger, store Store) *Registry {
	return &Registry{
		logger: logger,
		store:  store,
	}
}

// Register creates a new user. The email must not already exist; the match is
// case-sensitive and exact. Only the password hash is ever persisted.
func (s *Registry) Register(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" {
		return nil, errors.WithStack(ErrMissingEmail)
	}
	if password == "" {
		return nil, errors.WithStack(ErrMissingPassword)
	}

	// check duplicate
	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, errors.WithStack(ErrAlreadyExists)
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, errors.Wrapf(err, "check duplicate for %q", email)
	}

	pwd, err := gcrypto.PasswordHash([]byte(password), gutils.HashTypeSha256)
	if err != nil {
		return nil, errors.Wrapf(err, "generate password hash for %q", email)
	}

	user := model.NewUser()
	user.Email = email
	user.Password = pwd

	if err = s.store.Insert(ctx, user); err != nil {
		return nil, errors.WithStack(err)
	}

	s.logger.Info("insert new user", zap.String("email", email))
	return user, nil
}

// WhoAmI resolves a user id into its record.
func (s *Registry) WhoAmI(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return u, nil
}

// ValidateLogin checks the credentials against the stored hash.
// An unknown email and a wrong password are reported identically.
func (s *Registry) ValidateLogin(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, errors.WithStack(model.ErrInvalidCredentials)
		}
		return nil, errors.WithStack(err)
	}

	if err = gcrypto.VerifyHashedPassword([]byte(password), u.Password); err != nil {
		s.logger.Debug("password mismatch", zap.String("email", email))
		return nil, errors.WithStack(model.ErrInvalidCredentials)
	}

	return u, nil
}

// Count returns the total number of registered users.
func (s *Registry) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}
