package sqlite

import (
	"context"
	"fmt"

	"github.com/iudanet/vidtube/internal/server/storage"
)

// SetRefreshToken stores a refresh token for the user, replacing any previous one
func (s *Storage) SetRefreshToken(ctx context.Context, userID, token string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = ? WHERE id = ?`,
		nullString(token), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}

	return requireOneRow(result, storage.ErrUserNotFound)
}

// RotateRefreshToken swaps oldToken for newToken in one conditional UPDATE
func (s *Storage) RotateRefreshToken(ctx context.Context, userID, oldToken, newToken string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = ? WHERE id = ? AND refresh_token = ?`,
		newToken, userID, oldToken,
	)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return requireOneRow(result, storage.ErrRefreshTokenMismatch)
}

// ClearRefreshToken removes the user's refresh token
func (s *Storage) ClearRefreshToken(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = NULL WHERE id = ?`,
		userID,
	); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	return nil
}
