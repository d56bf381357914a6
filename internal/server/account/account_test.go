package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/vidtube/internal/crypto"
	"github.com/iudanet/vidtube/internal/models"
	"github.com/iudanet/vidtube/internal/server/session"
	"github.com/iudanet/vidtube/internal/server/storage"
	"github.com/iudanet/vidtube/internal/server/storage/sqlite"
)

func newTestService(t *testing.T) (*Service, *sqlite.Storage, *crypto.PasswordHasher) {
	t.Helper()

	db, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	hasher, err := crypto.NewPasswordHasher(crypto.HasherConfig{
		Algorithm:  crypto.AlgorithmBcrypt,
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, db, hasher), db, hasher
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, db, hasher := newTestService(t)

	user, err := svc.Register(ctx, RegisterInput{
		Username: "Alice",
		Email:    "Alice@X.com",
		FullName: "Alice Liddell",
		Password: "wonderland",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Equal(t, "Alice Liddell", user.FullName)
	assert.Empty(t, user.PasswordHash, "hash must not leave the service")
	assert.False(t, user.CreatedAt.IsZero())

	stored, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	ok, err := hasher.Verify("wonderland", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	valid := RegisterInput{Username: "alice", Email: "alice@x.com", Password: "wonderland"}

	tests := []struct {
		mutate func(*RegisterInput)
		name   string
	}{
		{name: "short username", mutate: func(in *RegisterInput) { in.Username = "al" }},
		{name: "bad username chars", mutate: func(in *RegisterInput) { in.Username = "al ice" }},
		{name: "bad email", mutate: func(in *RegisterInput) { in.Email = "alice" }},
		{name: "short password", mutate: func(in *RegisterInput) { in.Password = "short" }},
		{name: "multiline full name", mutate: func(in *RegisterInput) { in.FullName = "a\nb" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := svc.Register(ctx, in)
			assert.ErrorIs(t, err, session.ErrValidation)
		})
	}
}

func TestRegister_Conflict(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@x.com", Password: "wonderland"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "ALICE", Email: "other@x.com", Password: "wonderland"})
	assert.ErrorIs(t, err, session.ErrConflict)

	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Email: "ALICE@x.com", Password: "wonderland"})
	assert.ErrorIs(t, err, session.ErrConflict)
}

func TestRegister_StoreFailure(t *testing.T) {
	hasher, err := crypto.NewPasswordHasher(crypto.HasherConfig{Algorithm: crypto.AlgorithmBcrypt, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	store := &storage.StorageMock{
		CreateUserFunc: func(context.Context, *models.User) error {
			return errors.New("db down")
		},
	}
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), store, hasher)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "alice@x.com", Password: "wonderland"})
	assert.ErrorIs(t, err, session.ErrInternal)
	assert.Len(t, store.CreateUserCalls(), 1)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	created, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@x.com", Password: "wonderland"})
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.CurrentUser(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	svc.now = func() time.Time { return time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC) }

	alice, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@x.com", Password: "wonderland"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Email: "bob@x.com", Password: "wonderland"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC) }

	updated, err := svc.UpdateProfile(ctx, alice.ID, "Alice L.", "Liddell@X.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", updated.FullName)
	assert.Equal(t, "liddell@x.com", updated.Email)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = svc.UpdateProfile(ctx, alice.ID, "Alice", "bob@x.com")
	assert.ErrorIs(t, err, session.ErrConflict)

	_, err = svc.UpdateProfile(ctx, alice.ID, "Alice", "not-an-email")
	assert.ErrorIs(t, err, session.ErrValidation)

	_, err = svc.UpdateProfile(ctx, "missing", "Ghost", "ghost@x.com")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
