package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/iudanet/vidtube/internal/models"
	"github.com/iudanet/vidtube/internal/server/account"
	"github.com/iudanet/vidtube/pkg/api"
)

// AccountService - регистрация и профиль
type AccountService interface {
	Register(ctx context.Context, in account.RegisterInput) (*models.User, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, fullName, email string) (*models.User, error)
}

// UserHandler обрабатывает запросы к профилю пользователя
type UserHandler struct {
	logger   *slog.Logger
	accounts AccountService
}

// NewUserHandler создает новый handler профиля
func NewUserHandler(logger *slog.Logger, accounts AccountService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		accounts: accounts,
	}
}

// Register обрабатывает POST /api/v1/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(r, w, &req, false); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.accounts.Register(ctx, account.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	sendJSON(h.logger, w, toAPIUser(user), http.StatusCreated)
}

// CurrentUser обрабатывает GET /api/v1/users/current-user
func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		sendError(h.logger, w, "authentication required", http.StatusUnauthorized)
		return
	}

	user, err := h.accounts.CurrentUser(r.Context(), userID)
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	sendJSON(h.logger, w, toAPIUser(user), http.StatusOK)
}

// UpdateAccount обрабатывает PATCH /api/v1/users/update-account
func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current, ok := GetUser(ctx)
	if !ok {
		sendError(h.logger, w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req api.UpdateAccountRequest
	if err := decodeJSON(r, w, &req, false); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	// PATCH: пустые поля остаются как были
	fullName, email := req.FullName, req.Email
	if fullName == "" {
		fullName = current.FullName
	}
	if email == "" {
		email = current.Email
	}

	user, err := h.accounts.UpdateProfile(ctx, current.ID, fullName, email)
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	sendJSON(h.logger, w, toAPIUser(user), http.StatusOK)
}
