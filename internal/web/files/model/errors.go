package model

import "github.com/Laisky/errors/v2"

// ErrFileNotFound covers both a missing record and a record owned by someone
// else; ownership-scoped lookups never reveal which.
var ErrFileNotFound = errors.New("file not found")
