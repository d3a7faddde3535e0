package identity

import "errors"

// Domain errors for the identity package.
var (
	// ErrUserNotFound is returned when a user ID does not exist.
	ErrUserNotFound = errors.New("identity: user not found")
)
