// Package model holds the user records persisted in the credential store.
package model

import (
	"time"

	gutils "github.com/Laisky/go-utils/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account in the credential store.
// Records are immutable after registration; there is no delete path.
type User struct {
	// ID unique identifier for the user
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// CreatedAt registration time
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	// Email login account, unique, matched case-sensitively
	Email string `bson:"email" json:"email"`
	// Password one-way hashed password, never the plaintext
	//
	//  `gcrypto.VerifyHashedPassword`
	Password string `bson:"password" json:"-"`
}

// GetID get id
func (u *User) GetID() string {
	return u.ID.Hex()
}

// NewUser create a new user
func NewUser() *User {
	return &User{
		ID:        primitive.NewObjectID(),
		CreatedAt: gutils.Clock.GetUTCNow(),
	}
}
