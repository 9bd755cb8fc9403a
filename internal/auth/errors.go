package auth

import "errors"

// Validation failures all surface to the caller as 401; the distinct
// sentinels exist so the internal reason can be logged.
var (
	ErrNoToken          = errors.New("no bearer token in request")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrTokenExpired     = errors.New("token is expired")
	ErrTokenNotYetValid = errors.New("token is not valid yet")
	ErrTokenInvalid     = errors.New("token signature or claims invalid")
	ErrTokenInactive    = errors.New("token is not active")
	ErrUserInactive     = errors.New("user account is inactive")
	ErrMissingSubject   = errors.New("token has no subject claim")
)
