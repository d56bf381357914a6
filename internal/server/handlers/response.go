package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/iudanet/vidtube/internal/models"
	"github.com/iudanet/vidtube/internal/server/session"
	"github.com/iudanet/vidtube/pkg/api"
)

// maxBodySize ограничивает размер JSON тела запроса
const maxBodySize = 1 << 20

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{
		Error: message,
	}, statusCode)
}

// sendServiceError переводит ошибку сервиса в HTTP статус
func sendServiceError(logger *slog.Logger, r *http.Request, w http.ResponseWriter, err error) {
	status, message := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", slog.Any("error", err))
	}
	sendError(logger, w, message, status)
}

// StatusFor сопоставляет ошибку сервиса со статусом и сообщением для клиента
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, session.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized, api.ErrInvalidCredentials
	case errors.Is(err, session.ErrTokenReuseOrExpired):
		return http.StatusUnauthorized, "refresh token reused or expired"
	case errors.Is(err, session.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, session.ErrConflict):
		return http.StatusConflict, "username or email already taken"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// decodeJSON читает тело запроса. Пустое тело допустимо, если allowEmpty.
func decodeJSON(r *http.Request, w http.ResponseWriter, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// toAPIUser конвертирует модель в публичное представление
func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// WriteServiceError отправляет ошибку сервиса в формате API (для middleware)
func WriteServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	sendServiceError(logger, r, w, err)
}

// WriteError отправляет JSON ошибку с заданным статусом (для middleware)
func WriteError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendError(logger, w, message, statusCode)
}
