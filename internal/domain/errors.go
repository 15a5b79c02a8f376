package domain

import "errors"

// MinPasswordLength is the shortest password, in characters, accepted on
// registration or reset.
const MinPasswordLength = 4

var (
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrPasswordTooShort is returned when a password is shorter than MinPasswordLength.
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")
	// ErrUserNotFound is returned when resetting the password of an unknown user.
	ErrUserNotFound = errors.New("username not found")
	// ErrInvalidCredentials is returned when a username/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrStorageCorrupt is returned when the persisted credential document cannot be decoded.
	ErrStorageCorrupt = errors.New("credential storage is corrupt")
)
