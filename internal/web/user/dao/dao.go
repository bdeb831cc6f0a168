// Package dao contains the data access objects for user records.
package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"

	"github.com/Laisky/laisky-files-manager/internal/web/user/model"
	"github.com/Laisky/laisky-files-manager/library/db/mongo"
)

const colUsers = "users"

// Users dao type
type Users struct {
	logger logSDK.Logger
	db     mongo.DB
}

// New create new dao
func New(logger logSDK.Logger, db mongo.DB) *Users {
	return &Users{
		logger: logger,
		db:     db,
	}
}

// GetUsersCol get users collection
func (d *Users) GetUsersCol() *mongoLib.Collection {
	return d.db.GetCol(colUsers)
}

// GetByEmail looks a user up by exact email match.
func (d *Users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := new(model.User)
	if err := d.GetUsersCol().
		FindOne(ctx, bson.D{{Key: "email", Value: email}}).
		Decode(u); err != nil {
		if mongo.NotFound(err) {
			return nil, errors.WithStack(model.ErrUserNotFound)
		}
		return nil, errors.Wrapf(err, "find user %q", email)
	}

	return u, nil
}

// GetByID looks a user up by id.
func (d *Users) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	u := new(model.User)
	if err := d.GetUsersCol().
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(u); err != nil {
		if mongo.NotFound(err) {
			return nil, errors.WithStack(model.ErrUserNotFound)
		}
		return nil, errors.Wrapf(err, "find user %q", id.Hex())
	}

	return u, nil
}

// Insert persists a new user record.
func (d *Users) Insert(ctx context.Context, u *model.User) error {
	if _, err := d.GetUsersCol().InsertOne(ctx, u); err != nil {
		return errors.Wrapf(err, "insert user %q", u.Email)
	}

	return nil
}

// Count returns the total number of user records.
func (d *Users) Count(ctx context.Context) (int64, error) {
	cnt, err := d.GetUsersCol().CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.Wrap(err, "count users")
	}

	return cnt, nil
}
