package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/vidtube/internal/models"
	"github.com/iudanet/vidtube/internal/server/handlers"
)

// Authenticator проверяет access токен и возвращает его владельца
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

// AuthMiddleware создает middleware для проверки access токена.
// Токен берется из cookie accessToken, иначе из заголовка Authorization: Bearer.
func AuthMiddleware(logger *slog.Logger, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractAccessToken(r)

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.WarnContext(r.Context(), "request not authenticated",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
					"error", err)
				handlers.WriteServiceError(logger, w, r, err)
				return
			}

			logger.DebugContext(r.Context(), "User authenticated", "user_id", user.ID, "username", user.Username)

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), user)))
		})
	}
}

// extractAccessToken возвращает пустую строку, если токена нет
// или заголовок не в формате "Bearer <token>"
func extractAccessToken(r *http.Request) string {
	if c, err := r.Cookie(handlers.AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
