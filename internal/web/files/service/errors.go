package service

import "github.com/Laisky/errors/v2"

var (
	// ErrMissingName indicates the create request had no name.
	ErrMissingName = errors.New("missing name")
	// ErrMissingType indicates the create request had no valid type.
	ErrMissingType = errors.New("missing type")
	// ErrMissingData indicates a non-folder create request had no payload.
	ErrMissingData = errors.New("missing data")
	// ErrParentNotFound indicates the requested parent does not exist.
	ErrParentNotFound = errors.New("parent not found")
	// ErrParentNotAFolder indicates the requested parent is not a folder.
	ErrParentNotAFolder = errors.New("parent is not a folder")
)
