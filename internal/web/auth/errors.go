package auth

import "github.com/Laisky/errors/v2"

// ErrUnauthorized covers every token failure the caller may see.
// Missing, expired and revoked tokens are deliberately indistinguishable.
var ErrUnauthorized = errors.New("unauthorized")
