// Package dao contains the data access objects for file records.
package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Laisky/laisky-files-manager/internal/web/files/model"
	"github.com/Laisky/laisky-files-manager/library/db/mongo"
)

const colFiles = "files"

// Files dao type
type Files struct {
	logger logSDK.Logger
	db     mongo.DB
}

// New create new dao
func New(logger logSDK.Logger, db mongo.DB) *Files {
	return &Files{
		logger: logger,
		db:     db,
	}
}

// GetFilesCol get files collection
func (d *Files) GetFilesCol() *mongoLib.Collection {
	return d.db.GetCol(colFiles)
}

// GetByID fetches a record by id alone. Used only for parent-folder checks;
// user-facing reads must go through GetOwned.
func (d *Files) GetByID(ctx context.Context, id primitive.ObjectID) (*model.File, error) {
	f := new(model.File)
	if err := d.GetFilesCol().
		FindOne(ctx, bson.D{{Key: "_id", Value: id}}).
		Decode(f); err != nil {
		if mongo.NotFound(err) {
			return nil, errors.WithStack(model.ErrFileNotFound)
		}
		return nil, errors.Wrapf(err, "find file %q", id.Hex())
	}

	return f, nil
}

// GetOwned fetches a record scoped by both id and owner in one query, so a
// non-owned record is indistinguishable from a nonexistent one.
func (d *Files) GetOwned(ctx context.Context, id, userID primitive.ObjectID) (*model.File, error) {
	f := new(model.File)
	if err := d.GetFilesCol().
		FindOne(ctx, bson.D{
			{Key: "_id", Value: id},
			{Key: "userId", Value: userID},
		}).
		Decode(f); err != nil {
		if mongo.NotFound(err) {
			return nil, errors.WithStack(model.ErrFileNotFound)
		}
		return nil, errors.Wrapf(err, "find file %q", id.Hex())
	}

	return f, nil
}

// Insert persists a new file record.
func (d *Files) Insert(ctx context.Context, f *model.File) error {
	if _, err := d.GetFilesCol().InsertOne(ctx, f); err != nil {
		return errors.Wrapf(err, "insert file %q", f.Name)
	}

	return nil
}

// List returns one page of the user's children under parentID in
// store-defined order. Pages past the end come back empty.
func (d *Files) List(ctx context.Context,
	userID, parentID primitive.ObjectID, page, pageSize int) ([]*model.File, error) {
	cur, err := d.GetFilesCol().Find(ctx,
		bson.D{
			{Key: "userId", Value: userID},
			{Key: "parentId", Value: parentID},
		},
		options.Find().SetSkip(int64(page*pageSize)),
		options.Find().SetLimit(int64(pageSize)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find files")
	}
	defer cur.Close(ctx)

	files := []*model.File{}
	if err = cur.All(ctx, &files); err != nil {
		return nil, errors.Wrap(err, "load files")
	}

	return files, nil
}

// SetPublic flips the visibility flag on an owned record and returns the
// post-update document. Ownership scoping and update happen in one operation.
func (d *Files) SetPublic(ctx context.Context,
	id, userID primitive.ObjectID, isPublic bool) (*model.File, error) {
	f := new(model.File)
	if err := d.GetFilesCol().
		FindOneAndUpdate(ctx,
			bson.D{
				{Key: "_id", Value: id},
				{Key: "userId", Value: userID},
			},
			bson.M{"$set": bson.M{"isPublic": isPublic}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).
		Decode(f); err != nil {
		if mongo.NotFound(err) {
			return nil, errors.WithStack(model.ErrFileNotFound)
		}
		return nil, errors.Wrapf(err, "update file %q", id.Hex())
	}

	return f, nil
}

// Count returns the total number of file records.
func (d *Files) Count(ctx context.Context) (int64, error) {
	cnt, err := d.GetFilesCol().CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.Wrap(err, "count files")
	}

	return cnt, nil
}
