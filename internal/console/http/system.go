package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/ideadesk/internal/session"
	"github.com/aussiebroadwan/ideadesk/internal/store"
	"github.com/aussiebroadwan/ideadesk/pkg/httpx"
)

type HealthChecks struct {
	Storage string `json:"storage"`
	Session string `json:"session"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// LivezHandler always answers 200 while the process runs.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler reports degraded when the session store is unreachable or the
// last session write failed.
func ReadyzHandler(startTime time.Time, version string, st store.Store, sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{Storage: "ok", Session: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Storage = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := sess.PersistErr(); err != nil {
			checks.Session = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
