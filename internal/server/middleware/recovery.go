package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/iudanet/vidtube/internal/server/handlers"
)

// RecoveryMiddleware превращает panic в 500 с телом в формате API.
// http.ErrAbortHandler пробрасывается дальше: его обрабатывает net/http.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler { //nolint:errorlint // sentinel value, not wrapped
					panic(rvr)
				}

				logger.ErrorContext(r.Context(), "Panic recovered",
					slog.Any("panic", rvr),
					// LoggingMiddleware внутри цепочки уже выставил заголовок
					slog.String("request_id", w.Header().Get(RequestIDHeader)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)

				handlers.WriteError(logger, w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
