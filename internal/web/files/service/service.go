// Package service implements the file hierarchy manager.
package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-files-manager/internal/web/files/model"
	"github.com/Laisky/laisky-files-manager/library/storage"
)

// PageSize is the fixed listing window.
const PageSize = 20

const payloadContentType = "application/octet-stream"

// Store is the metadata-store surface the hierarchy manager needs.
// The mongo dao implements it; tests substitute an in-memory fake.
type Store interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.File, error)
	GetOwned(ctx context.Context, id, userID primitive.ObjectID) (*model.File, error)
	Insert(ctx context.Context, f *model.File) error
	List(ctx context.Context, userID, parentID primitive.ObjectID, page, pageSize int) ([]*model.File, error)
	SetPublic(ctx context.Context, id, userID primitive.ObjectID, isPublic bool) (*model.File, error)
	Count(ctx context.Context) (int64, error)
}

// Hierarchy creates and serves file records.
type Hierarchy struct {
	logger logSDK.Logger
	store  Store
	blob   storage.Blob
}

// New create new hierarchy manager
func New(logger logSDK.Logger, store Store, blob storage.Blob) *Hierarchy {
	return &Hierarchy{
		logger: logger,
		store:  store,
		blob:   blob,
	}
}

// CreateRequest carries the fields of a create call.
type CreateRequest struct {
	Name     string
	Type     model.Type
	ParentID primitive.ObjectID // zero means root
	IsPublic bool
	Data     []byte // payload bytes, required unless Type is folder
}

// Create validates the request, commits the payload to blob storage for
// non-folder types, then persists the metadata record.
//
// The blob write happens first; if it fails no metadata record is created.
// The reverse failure (metadata write after a successful blob write) leaves
// an orphaned blob behind, which is accepted and not rolled back.
func (s *Hierarchy) Create(ctx context.Context,
	userID primitive.ObjectID, req CreateRequest) (*model.File, error) {
	if req.Name == "" {
		return nil, errors.WithStack(ErrMissingName)
	}
	if !req.Type.Valid() {
		return nil, errors.WithStack(ErrMissingType)
	}
	if req.Type != model.TypeFolder && len(req.Data) == 0 {
		return nil, errors.WithStack(ErrMissingData)
	}

	// only the direct parent is checked, and only here; nothing re-validates
	// the chain on later mutations
	if !req.ParentID.IsZero() {
		parent, err := s.store.GetByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, model.ErrFileNotFound) {
				return nil, errors.WithStack(ErrParentNotFound)
			}
			return nil, errors.WithStack(err)
		}
		if !parent.IsFolder() {
			return nil, errors.WithStack(ErrParentNotAFolder)
		}
	}

	file := model.NewFile(userID)
	file.Name = req.Name
	file.Type = req.Type
	file.ParentID = req.ParentID
	file.IsPublic = req.IsPublic

	if req.Type != model.TypeFolder {
		locator, err := s.blob.Put(ctx, req.Data, payloadContentType)
		if err != nil {
			return nil, errors.Wrap(err, "store payload")
		}
		file.LocalPath = locator
	}

	if err := s.store.Insert(ctx, file); err != nil {
		return nil, errors.WithStack(err)
	}

	s.logger.Info("create file",
		zap.String("file", file.ID.Hex()),
		zap.String("type", string(file.Type)),
		zap.String("user", userID.Hex()),
	)
	return file, nil
}

// GetByID returns the record if it exists and belongs to the user.
func (s *Hierarchy) GetByID(ctx context.Context,
	userID, fileID primitive.ObjectID) (*model.File, error) {
	f, err := s.store.GetOwned(ctx, fileID, userID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return f, nil
}

// List returns the page-th window of the user's children under parentID.
func (s *Hierarchy) List(ctx context.Context,
	userID, parentID primitive.ObjectID, page int) ([]*model.File, error) {
	if page < 0 {
		page = 0
	}

	files, err := s.store.List(ctx, userID, parentID, page, PageSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return files, nil
}

// SetPublic flips the visibility flag and returns the post-update record.
// Setting a flag to its current value succeeds.
func (s *Hierarchy) SetPublic(ctx context.Context,
	userID, fileID primitive.ObjectID, isPublic bool) (*model.File, error) {
	f, err := s.store.SetPublic(ctx, fileID, userID, isPublic)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return f, nil
}

// Count returns the total number of file records.
func (s *Hierarchy) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}
