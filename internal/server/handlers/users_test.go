package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/vidtube/internal/models"
	"github.com/iudanet/vidtube/internal/server/account"
	"github.com/iudanet/vidtube/internal/server/session"
	"github.com/iudanet/vidtube/pkg/api"
)

// mockAccountService is a mock implementation of AccountService for testing
type mockAccountService struct {
	registerFn      func(ctx context.Context, in account.RegisterInput) (*models.User, error)
	currentUserFn   func(ctx context.Context, userID string) (*models.User, error)
	updateProfileFn func(ctx context.Context, userID, fullName, email string) (*models.User, error)
}

func (m *mockAccountService) Register(ctx context.Context, in account.RegisterInput) (*models.User, error) {
	return m.registerFn(ctx, in)
}

func (m *mockAccountService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return m.currentUserFn(ctx, userID)
}

func (m *mockAccountService) UpdateProfile(ctx context.Context, userID, fullName, email string) (*models.User, error) {
	return m.updateProfileFn(ctx, userID, fullName, email)
}

func TestUserHandler_Register(t *testing.T) {
	tests := []struct {
		err        error
		name       string
		body       string
		wantStatus int
	}{
		{name: "created", body: `{"username":"alice","email":"alice@x.com","password":"wonderland"}`, wantStatus: http.StatusCreated},
		{name: "conflict", body: `{"username":"alice","email":"alice@x.com","password":"wonderland"}`, err: session.ErrConflict, wantStatus: http.StatusConflict},
		{name: "validation", body: `{"username":"a","email":"alice@x.com","password":"wonderland"}`, err: session.Validation(errors.New("username too short")), wantStatus: http.StatusBadRequest},
		{name: "bad json", body: `[`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAccountService{
				registerFn: func(_ context.Context, in account.RegisterInput) (*models.User, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &models.User{ID: "user-1", Username: in.Username, Email: in.Email, PasswordHash: "secret-hash"}, nil
				},
			}
			handler := NewUserHandler(setupTestLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotContains(t, w.Body.String(), "secret-hash")
		})
	}
}

func TestUserHandler_CurrentUser(t *testing.T) {
	svc := &mockAccountService{
		currentUserFn: func(_ context.Context, userID string) (*models.User, error) {
			assert.Equal(t, "user-1", userID)
			return testAlice, nil
		},
	}
	handler := NewUserHandler(setupTestLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req = req.WithContext(WithUser(req.Context(), testAlice))
	w := httptest.NewRecorder()

	handler.CurrentUser(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var user api.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email)
}

func TestUserHandler_CurrentUser_Unauthenticated(t *testing.T) {
	handler := NewUserHandler(setupTestLogger(), &mockAccountService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	w := httptest.NewRecorder()

	handler.CurrentUser(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_UpdateAccount_KeepsOmittedFields(t *testing.T) {
	var gotName, gotEmail string
	svc := &mockAccountService{
		updateProfileFn: func(_ context.Context, _ string, fullName, email string) (*models.User, error) {
			gotName, gotEmail = fullName, email
			return &models.User{ID: "user-1", FullName: fullName, Email: email}, nil
		},
	}
	handler := NewUserHandler(setupTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/update-account", bytes.NewBufferString(`{"full_name":"Alice L."}`))
	req = req.WithContext(WithUser(req.Context(), testAlice))
	w := httptest.NewRecorder()

	handler.UpdateAccount(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice L.", gotName)
	assert.Equal(t, "alice@x.com", gotEmail)
}

func TestUserHandler_UpdateAccount_Conflict(t *testing.T) {
	svc := &mockAccountService{
		updateProfileFn: func(context.Context, string, string, string) (*models.User, error) {
			return nil, session.ErrConflict
		},
	}
	handler := NewUserHandler(setupTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/update-account", bytes.NewBufferString(`{"email":"bob@x.com"}`))
	req = req.WithContext(WithUser(req.Context(), testAlice))
	w := httptest.NewRecorder()

	handler.UpdateAccount(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
