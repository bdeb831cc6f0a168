package service

import "github.com/Laisky/errors/v2"

var (
	// ErrMissingEmail indicates the registration request had no email.
	ErrMissingEmail = errors.New("missing email")
	// ErrMissingPassword indicates the registration request had no password.
	ErrMissingPassword = errors.New("missing password")
	// ErrAlreadyExists indicates the email is already registered.
	ErrAlreadyExists = errors.New("user already exists")
)
