package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/vidtube/internal/client/api"
	"github.com/iudanet/vidtube/internal/client/storage"
	"github.com/iudanet/vidtube/pkg/api"
)

var errUnauthorized = &clientapi.StatusError{StatusCode: http.StatusUnauthorized, Message: "invalid or expired token"}

// memStore - AuthStorageMock поверх одной переменной
func memStore(initial *storage.AuthData) (*storage.AuthStorageMock, func() *storage.AuthData) {
	current := initial
	m := &storage.AuthStorageMock{
		SaveAuthFunc: func(_ context.Context, auth *storage.AuthData) error {
			c := *auth
			current = &c
			return nil
		},
		GetAuthFunc: func(context.Context) (*storage.AuthData, error) {
			if current == nil {
				return nil, storage.ErrAuthNotFound
			}
			c := *current
			return &c, nil
		},
		DeleteAuthFunc: func(context.Context) error {
			if current == nil {
				return storage.ErrAuthNotFound
			}
			current = nil
			return nil
		},
		IsAuthenticatedFunc: func(context.Context) (bool, error) {
			return current != nil, nil
		},
	}
	return m, func() *storage.AuthData { return current }
}

func newTestService(apiClient APIClient, store storage.AuthStorage) *Service {
	s := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), apiClient, store, "http://test")
	s.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return s
}

func session() *storage.AuthData {
	return &storage.AuthData{
		UserID:       "u1",
		Username:     "alice",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    1_700_000_900,
	}
}

func TestService_Register(t *testing.T) {
	apiMock := &APIClientMock{
		RegisterFunc: func(_ context.Context, req api.RegisterRequest) (*api.User, error) {
			return &api.User{ID: "u1", Username: "alice", Email: req.Email}, nil
		},
	}
	store, _ := memStore(nil)
	s := newTestService(apiMock, store)

	user, err := s.Register(context.Background(), RegisterInput{
		Username: "Alice",
		Email:    "alice@example.com",
		Password: "p1-long-enough",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	require.Len(t, apiMock.RegisterCalls(), 1)
	assert.Empty(t, store.SaveAuthCalls(), "register does not open a session")
}

func TestService_Register_ValidatesLocally(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"short username", RegisterInput{Username: "al", Email: "a@example.com", Password: "p1-long-enough"}},
		{"bad email", RegisterInput{Username: "alice", Email: "nope", Password: "p1-long-enough"}},
		{"short password", RegisterInput{Username: "alice", Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiMock := &APIClientMock{}
			store, _ := memStore(nil)

			_, err := newTestService(apiMock, store).Register(context.Background(), tt.in)
			assert.Error(t, err)
			assert.Empty(t, apiMock.RegisterCalls())
		})
	}
}

func TestService_Login(t *testing.T) {
	tests := []struct {
		name         string
		login        string
		wantUsername string
		wantEmail    string
	}{
		{"by username", "alice", "alice", ""},
		{"by email", "alice@example.com", "", "alice@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiMock := &APIClientMock{
				LoginFunc: func(_ context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
					assert.Equal(t, tt.wantUsername, req.Username)
					assert.Equal(t, tt.wantEmail, req.Email)
					return &api.LoginResponse{
						User:          api.User{ID: "u1", Username: "alice", Email: "alice@example.com"},
						TokenResponse: api.TokenResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900},
					}, nil
				},
			}
			store, current := memStore(session())

			authData, err := newTestService(apiMock, store).Login(context.Background(), tt.login, "p1-long-enough")
			require.NoError(t, err)

			// новая сессия заменяет сохраненную
			assert.Equal(t, authData, current())
			assert.Equal(t, "r", current().RefreshToken)
			assert.Equal(t, int64(1_700_000_900), current().ExpiresAt)
			assert.Equal(t, "http://test", current().ServerURL)
		})
	}
}

func TestService_Login_Failure(t *testing.T) {
	apiMock := &APIClientMock{
		LoginFunc: func(context.Context, api.LoginRequest) (*api.LoginResponse, error) {
			return nil, errUnauthorized
		},
	}
	store, current := memStore(session())
	s := newTestService(apiMock, store)

	_, err := s.Login(context.Background(), "alice", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, session(), current(), "failed login keeps previous session")

	_, err = s.Login(context.Background(), "", "p")
	assert.Error(t, err)
	_, err = s.Login(context.Background(), "alice", "")
	assert.Error(t, err)
	assert.Len(t, apiMock.LoginCalls(), 1)
}

func TestService_Refresh(t *testing.T) {
	apiMock := &APIClientMock{
		RefreshFunc: func(_ context.Context, token string) (*api.TokenResponse, error) {
			assert.Equal(t, "refresh-1", token)
			return &api.TokenResponse{AccessToken: "access-2", RefreshToken: "refresh-2", ExpiresIn: 60}, nil
		},
	}
	store, current := memStore(session())

	authData, err := newTestService(apiMock, store).Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", authData.RefreshToken)
	assert.Equal(t, "access-2", current().AccessToken)
	assert.Equal(t, "alice", current().Username)
	assert.Equal(t, int64(1_700_000_060), current().ExpiresAt)
}

func TestService_Refresh_Rejected(t *testing.T) {
	apiMock := &APIClientMock{
		RefreshFunc: func(context.Context, string) (*api.TokenResponse, error) {
			return nil, errUnauthorized
		},
	}
	store, current := memStore(session())

	_, err := newTestService(apiMock, store).Refresh(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Nil(t, current(), "rejected refresh drops the local session")
}

func TestService_Refresh_NetworkErrorKeepsSession(t *testing.T) {
	apiMock := &APIClientMock{
		RefreshFunc: func(context.Context, string) (*api.TokenResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
	store, current := memStore(session())

	_, err := newTestService(apiMock, store).Refresh(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, session(), current())
}

func TestService_NotAuthenticated(t *testing.T) {
	store, _ := memStore(nil)
	s := newTestService(&APIClientMock{}, store)
	ctx := context.Background()

	_, err := s.WhoAmI(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = s.Refresh(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = s.Logout(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	err = s.ChangePassword(ctx, "old-password", "new-password")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestService_WhoAmI(t *testing.T) {
	apiMock := &APIClientMock{
		CurrentUserFunc: func(_ context.Context, token string) (*api.User, error) {
			assert.Equal(t, "access-1", token)
			return &api.User{ID: "u1", Username: "alice"}, nil
		},
	}
	store, _ := memStore(session())

	user, err := newTestService(apiMock, store).WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, apiMock.RefreshCalls())
}

func TestService_WhoAmI_RefreshesOnceOn401(t *testing.T) {
	apiMock := &APIClientMock{
		CurrentUserFunc: func(_ context.Context, token string) (*api.User, error) {
			if token == "access-1" {
				return nil, errUnauthorized
			}
			return &api.User{ID: "u1", Username: "alice"}, nil
		},
		RefreshFunc: func(context.Context, string) (*api.TokenResponse, error) {
			return &api.TokenResponse{AccessToken: "access-2", RefreshToken: "refresh-2", ExpiresIn: 60}, nil
		},
	}
	store, current := memStore(session())

	user, err := newTestService(apiMock, store).WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	calls := apiMock.CurrentUserCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "access-2", calls[1].AccessToken)
	assert.Len(t, apiMock.RefreshCalls(), 1)
	assert.Equal(t, "refresh-2", current().RefreshToken)
}

func TestService_WhoAmI_GivesUpAfterOneRefresh(t *testing.T) {
	apiMock := &APIClientMock{
		CurrentUserFunc: func(context.Context, string) (*api.User, error) {
			return nil, errUnauthorized
		},
		RefreshFunc: func(context.Context, string) (*api.TokenResponse, error) {
			return &api.TokenResponse{AccessToken: "access-2", RefreshToken: "refresh-2", ExpiresIn: 60}, nil
		},
	}
	store, _ := memStore(session())

	_, err := newTestService(apiMock, store).WhoAmI(context.Background())
	assert.True(t, clientapi.IsUnauthorized(err))
	assert.Len(t, apiMock.CurrentUserCalls(), 2)
	assert.Len(t, apiMock.RefreshCalls(), 1)
}

func TestService_WhoAmI_RefreshRejected(t *testing.T) {
	apiMock := &APIClientMock{
		CurrentUserFunc: func(context.Context, string) (*api.User, error) {
			return nil, errUnauthorized
		},
		RefreshFunc: func(context.Context, string) (*api.TokenResponse, error) {
			return nil, errUnauthorized
		},
	}
	store, current := memStore(session())

	_, err := newTestService(apiMock, store).WhoAmI(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Nil(t, current())
}

func TestService_ChangePassword(t *testing.T) {
	apiMock := &APIClientMock{
		ChangePasswordFunc: func(_ context.Context, token string, req api.ChangePasswordRequest) error {
			assert.Equal(t, "access-1", token)
			assert.Equal(t, "old-password", req.OldPassword)
			assert.Equal(t, "new-password", req.NewPassword)
			return nil
		},
	}
	store, current := memStore(session())
	s := newTestService(apiMock, store)

	require.NoError(t, s.ChangePassword(context.Background(), "old-password", "new-password"))
	assert.Equal(t, session(), current(), "session stays valid")

	err := s.ChangePassword(context.Background(), "old-password", "short")
	assert.Error(t, err)
	assert.Len(t, apiMock.ChangePasswordCalls(), 1)
}

func TestService_ChangePassword_WrongOldPasswordKeepsTokens(t *testing.T) {
	tests := []struct {
		err  error
		name string
	}{
		{name: "forbidden", err: &clientapi.StatusError{StatusCode: 403, Message: "invalid old password"}},
		{name: "unauthorized with invalid credentials", err: &clientapi.StatusError{StatusCode: 401, Message: "invalid credentials"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiMock := &APIClientMock{
				ChangePasswordFunc: func(context.Context, string, api.ChangePasswordRequest) error {
					return tt.err
				},
			}
			store, current := memStore(session())
			s := newTestService(apiMock, store)

			err := s.ChangePassword(context.Background(), "wrong-old", "new-password")
			require.Error(t, err)
			assert.Len(t, apiMock.ChangePasswordCalls(), 1)
			assert.Empty(t, apiMock.RefreshCalls())
			assert.Equal(t, session(), current(), "tokens are not rotated")
		})
	}
}

func TestService_Logout(t *testing.T) {
	t.Run("server confirms", func(t *testing.T) {
		apiMock := &APIClientMock{
			LogoutFunc: func(_ context.Context, token string) error {
				assert.Equal(t, "access-1", token)
				return nil
			},
		}
		store, current := memStore(session())

		notified, err := newTestService(apiMock, store).Logout(context.Background())
		require.NoError(t, err)
		assert.True(t, notified)
		assert.Nil(t, current())
	})

	t.Run("server unavailable", func(t *testing.T) {
		apiMock := &APIClientMock{
			LogoutFunc: func(context.Context, string) error {
				return errors.New("connection refused")
			},
		}
		store, current := memStore(session())

		notified, err := newTestService(apiMock, store).Logout(context.Background())
		require.NoError(t, err)
		assert.False(t, notified)
		assert.Nil(t, current(), "local session is removed anyway")
	})
}

func TestService_Status(t *testing.T) {
	apiMock := &APIClientMock{
		HealthFunc: func(context.Context) (*api.HealthResponse, error) {
			return nil, errors.New("connection refused")
		},
	}

	store, _ := memStore(session())
	st, err := newTestService(apiMock, store).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", st.Session.Username)
	assert.Nil(t, st.Server)
	assert.Error(t, st.ServerError)

	store, _ = memStore(nil)
	st, err = newTestService(apiMock, store).Status(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st.Session)
}

func TestService_WhoAmI_RefreshesExpiredAccessFirst(t *testing.T) {
	apiMock := &APIClientMock{
		CurrentUserFunc: func(_ context.Context, token string) (*api.User, error) {
			assert.Equal(t, "access-2", token, "expired token is not sent")
			return &api.User{ID: "u1", Username: "alice"}, nil
		},
		RefreshFunc: func(context.Context, string) (*api.TokenResponse, error) {
			return &api.TokenResponse{AccessToken: "access-2", RefreshToken: "refresh-2", ExpiresIn: 60}, nil
		},
	}
	expired := session()
	expired.ExpiresAt = 1_699_999_000
	store, _ := memStore(expired)

	_, err := newTestService(apiMock, store).WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Len(t, apiMock.CurrentUserCalls(), 1)
	assert.Len(t, apiMock.RefreshCalls(), 1)
}
