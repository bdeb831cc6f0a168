package model

import "github.com/Laisky/errors/v2"

// ErrUserNotFound indicates no user record matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials indicates the login credentials are invalid.
var ErrInvalidCredentials = errors.New("invalid credentials")
