// Package dto shapes file records for the HTTP boundary.
package dto

import (
	"github.com/jinzhu/copier"

	"github.com/Laisky/laisky-files-manager/internal/web/files/model"
)

// RootParentID is how a root-level record reports its parent on the wire.
const RootParentID = "0"

// File is the wire form of a file record. The blob locator stays internal.
type File struct {
	ID       string     `json:"id"`
	UserID   string     `json:"userId"`
	Name     string     `json:"name"`
	Type     model.Type `json:"type"`
	IsPublic bool       `json:"isPublic"`
	ParentID string     `json:"parentId"`
}

// NewFile converts a record into its wire form.
func NewFile(f *model.File) *File {
	out := new(File)
	_ = copier.Copy(out, f)

	out.ID = f.ID.Hex()
	out.UserID = f.UserID.Hex()
	out.ParentID = RootParentID
	if !f.ParentID.IsZero() {
		out.ParentID = f.ParentID.Hex()
	}

	return out
}

// NewFiles converts a page of records. A nil page serializes as [].
func NewFiles(files []*model.File) []*File {
	out := make([]*File, 0, len(files))
	for _, f := range files {
		out = append(out, NewFile(f))
	}

	return out
}
