package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/vidtube/internal/models"
	"github.com/iudanet/vidtube/internal/server/session"
	"github.com/iudanet/vidtube/pkg/api"
)

// SessionService - операции жизненного цикла сессии
type SessionService interface {
	Login(ctx context.Context, username, email, password string) (*models.User, *models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger   *slog.Logger
	sessions SessionService
	cookies  CookieConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, sessions SessionService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		sessions: sessions,
		cookies:  cookies,
	}
}

// Login обрабатывает POST /api/v1/users/login
// Аутентификация по username или email
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(r, w, &req, false); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, pair, err := h.sessions.Login(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	h.cookies.setAuthCookies(w, pair)

	sendJSON(h.logger, w, api.LoginResponse{
		User:          toAPIUser(user),
		TokenResponse: tokenResponse(pair),
	}, http.StatusOK)
}

// Refresh обрабатывает POST /api/v1/users/refresh-token
// Refresh token берется из cookie, иначе из тела запроса
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var refreshToken string
	if c, err := r.Cookie(RefreshTokenCookie); err == nil {
		refreshToken = c.Value
	}

	if refreshToken == "" {
		var req api.RefreshRequest
		if err := decodeJSON(r, w, &req, true); err != nil {
			h.logger.WarnContext(ctx, "failed to decode refresh request", slog.Any("error", err))
			sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
			return
		}
		refreshToken = req.RefreshToken
	}

	pair, err := h.sessions.Refresh(ctx, refreshToken)
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	h.cookies.setAuthCookies(w, pair)

	sendJSON(h.logger, w, tokenResponse(pair), http.StatusOK)
}

// Logout обрабатывает POST /api/v1/users/logout
// Очищает refresh token пользователя и cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		sendError(h.logger, w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := h.sessions.Logout(r.Context(), userID); err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	h.cookies.clearAuthCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword обрабатывает POST /api/v1/users/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req api.ChangePasswordRequest
	if err := decodeJSON(r, w, &req, false); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.sessions.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword)
	if errors.Is(err, session.ErrInvalidCredentials) {
		// токен валиден, неверен только старый пароль: 403, а не 401
		sendError(h.logger, w, "invalid old password", http.StatusForbidden)
		return
	}
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "password changed successfully"}, http.StatusOK)
}

func tokenResponse(pair *models.TokenPair) api.TokenResponse {
	return api.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int64(time.Until(pair.AccessExpiresAt).Seconds()),
	}
}
