// Package model holds the hierarchical file records.
package model

import (
	"time"

	gutils "github.com/Laisky/go-utils/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Type file record type
type Type string

const (
	// TypeFolder pure hierarchy container, carries no payload
	TypeFolder Type = "folder"
	// TypeFile regular binary payload
	TypeFile Type = "file"
	// TypeImage image payload
	TypeImage Type = "image"
)

// Valid reports whether t is one of the accepted record types.
func (t Type) Valid() bool {
	switch t {
	case TypeFolder, TypeFile, TypeImage:
		return true
	}
	return false
}

// File is a node in a user's file forest.
//
// A zero ParentID means the record sits at the root. A non-zero ParentID is
// validated against an existing folder at creation time only; nothing
// re-checks the chain afterwards.
type File struct {
	// ID unique identifier for the record
	ID primitive.ObjectID `bson:"_id,omitempty"`
	// CreatedAt creation time
	CreatedAt time.Time `bson:"created_at"`
	// UserID owning user, fixed at creation
	UserID primitive.ObjectID `bson:"userId"`
	// Name display name
	Name string `bson:"name"`
	// Type one of folder/file/image
	Type Type `bson:"type"`
	// ParentID parent folder; zero means root
	ParentID primitive.ObjectID `bson:"parentId"`
	// IsPublic public visibility flag
	IsPublic bool `bson:"isPublic"`
	// LocalPath blob storage locator; folders never set it
	LocalPath string `bson:"localPath,omitempty"`
}

// IsFolder reports whether the record is a hierarchy container.
func (f *File) IsFolder() bool {
	return f.Type == TypeFolder
}

// NewFile create a new file record owned by the given user
func NewFile(userID primitive.ObjectID) *File {
	return &File{
		ID:        primitive.NewObjectID(),
		CreatedAt: gutils.Clock.GetUTCNow(),
		UserID:    userID,
	}
}
