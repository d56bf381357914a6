package sqlite

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vidtube/internal/server/storage"
)

func TestTokenStorage_SetRefreshToken(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, s, "alice", "alice@example.com")

	require.NoError(t, s.SetRefreshToken(ctx, alice.ID, "r1"))
	require.NoError(t, s.SetRefreshToken(ctx, alice.ID, "r2"))

	user, err := s.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "r2", user.RefreshToken)

	err = s.SetRefreshToken(ctx, uuid.New().String(), "r3")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestTokenStorage_RotateRefreshToken(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, s, "alice", "alice@example.com")
	require.NoError(t, s.SetRefreshToken(ctx, alice.ID, "r1"))

	tests := []struct {
		wantErr error
		name    string
		userID  string
		old     string
		new     string
	}{
		{name: "current token rotates", userID: alice.ID, old: "r1", new: "r2"},
		{name: "old token is rejected", userID: alice.ID, old: "r1", new: "r3", wantErr: storage.ErrRefreshTokenMismatch},
		{name: "unknown user", userID: uuid.New().String(), old: "r2", new: "r3", wantErr: storage.ErrRefreshTokenMismatch},
		{name: "second rotation", userID: alice.ID, old: "r2", new: "r4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.RotateRefreshToken(ctx, tt.userID, tt.old, tt.new)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	user, err := s.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "r4", user.RefreshToken)
}

func TestTokenStorage_RotateAfterClear(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, s, "alice", "alice@example.com")
	require.NoError(t, s.SetRefreshToken(ctx, alice.ID, "r1"))
	require.NoError(t, s.ClearRefreshToken(ctx, alice.ID))

	err := s.RotateRefreshToken(ctx, alice.ID, "r1", "r2")
	assert.ErrorIs(t, err, storage.ErrRefreshTokenMismatch)

	// NULL не совпадает даже с пустой строкой
	err = s.RotateRefreshToken(ctx, alice.ID, "", "r2")
	assert.ErrorIs(t, err, storage.ErrRefreshTokenMismatch)
}

func TestTokenStorage_ConcurrentRotation(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, s, "alice", "alice@example.com")
	require.NoError(t, s.SetRefreshToken(ctx, alice.ID, "r1"))

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.RotateRefreshToken(ctx, alice.ID, "r1", "r2-"+string(rune('a'+i)))
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, storage.ErrRefreshTokenMismatch)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success, "exactly one rotation must win")
}

func TestTokenStorage_ClearRefreshToken_Idempotent(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, s, "alice", "alice@example.com")
	require.NoError(t, s.SetRefreshToken(ctx, alice.ID, "r1"))

	require.NoError(t, s.ClearRefreshToken(ctx, alice.ID))
	require.NoError(t, s.ClearRefreshToken(ctx, alice.ID))
	require.NoError(t, s.ClearRefreshToken(ctx, uuid.New().String()))

	user, err := s.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, user.RefreshToken)
}
