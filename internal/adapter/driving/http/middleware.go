package httphandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/licensepanel/internal/application"
	"github.com/ericfisherdev/licensepanel/internal/domain/model"
)

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader captures the status code and delegates to the embedded writer.
func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs each HTTP request with method, path, status, and duration.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// recoveryMiddleware recovers from panics in HTTP handlers, logs the error,
// and returns a 500 response.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("panic recovered",
					"panic", v,
					"path", r.URL.Path,
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requireSession wraps a handler so it only runs for an authenticated
// identity, regardless of role. The session is re-derived from the cookie on
// every request.
func (h *Handler) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.sessionFromRequest(r) == nil {
			w.Header().Set("Location", "/")
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}

// requireRole wraps a handler with the server-side authorization guard for a
// view declared for a single role. Unauthenticated requests are denied back
// to the entry point; authenticated requests with a different role are
// redirected to their own dashboard.
func (h *Handler) requireRole(role model.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := h.sessionFromRequest(r)

		decision, location := application.Authorize(role, session)
		switch decision {
		case application.DecisionDeny:
			w.Header().Set("Location", location)
			writeError(w, http.StatusUnauthorized, "authentication required")
		case application.DecisionRedirect:
			w.Header().Set("Location", location)
			writeJSON(w, http.StatusSeeOther, redirectResponse{Redirect: location})
		default:
			next(w, r)
		}
	}
}
