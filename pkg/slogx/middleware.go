package slogx

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/aussiebroadwan/ideadesk/pkg/idx"
)

// RequestIDHeader carries the request id in and out of the console.
const RequestIDHeader = "X-Request-ID"

// HTTPMiddleware attaches a request scoped logger to the request context and
// logs one http_request line per request. Requests to quiet paths, such as
// health checks, are logged at debug.
func HTTPMiddleware(base *slog.Logger, quiet ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = idx.New().String()
			}
			w.Header().Set(RequestIDHeader, reqID)

			logger := base.With("req_id", reqID)
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(WithContext(r.Context(), logger)))

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelWarn
			case slices.Contains(quiet, r.URL.Path):
				level = slog.LevelDebug
			}
			logger.Log(r.Context(), level, "http_request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", rec.written,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter

	status  int
	written int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.written += n
	return n, err
}
