package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username or email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrRefreshTokenMismatch indicates that the stored refresh token differs from the expected one
	// (already rotated away, cleared by logout, or the user is gone)
	ErrRefreshTokenMismatch = errors.New("refresh token mismatch")
)
