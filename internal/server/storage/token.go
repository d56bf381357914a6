package storage

import (
	"context"
)

// TokenStorage defines interface for the refresh token kept on the user record.
// A user has at most one live refresh token; writing a new one invalidates the old.
type TokenStorage interface {
	// SetRefreshToken unconditionally replaces the stored refresh token (login)
	// Returns ErrUserNotFound if user doesn't exist
	SetRefreshToken(ctx context.Context, userID, token string) error

	// RotateRefreshToken replaces oldToken with newToken only if oldToken is still
	// the stored value. The check and the write are a single statement.
	// Returns ErrRefreshTokenMismatch if the stored value differs
	RotateRefreshToken(ctx context.Context, userID, oldToken, newToken string) error

	// ClearRefreshToken removes the stored refresh token (logout)
	// Clearing an absent token or unknown user is not an error
	ClearRefreshToken(ctx context.Context, userID string) error
}
