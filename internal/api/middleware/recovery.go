package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/mcoot/scrabblegame-go/internal/api/apierr"
)

// Recovery turns handler panics into a JSON internal_error response. Nothing
// is written when the response has already started or the connection was
// upgraded to a websocket.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := NewResponseWriter(w)

			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("panic recovered",
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					if !wrapped.Written() {
						apierr.WriteError(wrapped, apierr.NewInternalError())
					}
				}
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}
