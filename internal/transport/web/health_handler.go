package web

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// HealthResponse represents the response structure for health check endpoints.
type HealthResponse struct {
	Status    string            `json:"status"`           // "ok" or "error"
	Timestamp time.Time         `json:"timestamp"`        // Current server time
	Checks    map[string]string `json:"checks,omitempty"` // Individual component health
	Uptime    string            `json:"uptime,omitempty"`
}

var startTime = time.Now()

// readinessTimeout bounds the database ping of /readiness.
const readinessTimeout = 2 * time.Second

// HealthCheck handles the /health endpoint. It always answers 200 while the
// process serves requests and does not check dependencies; see /readiness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Uptime:    formatUptime(time.Since(startTime)),
	})
}

// ReadinessCheck handles the /readiness endpoint: 200 when the database
// answers a ping, 503 otherwise.
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": h.checkDatabase(r.Context())}

	status, code := "ok", http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			status, code = "error", http.StatusServiceUnavailable
		}
	}

	jsonResponse(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}

// checkDatabase returns "ok" if the database is reachable, "error" otherwise.
func (h *Handler) checkDatabase(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	if err := h.container.Ping(ctx); err != nil {
		return "error"
	}
	return "ok"
}

// formatUptime renders the two most significant units, e.g. "1d 5h", "2h 15m", "45s".
func formatUptime(d time.Duration) string {
	total := int(d.Seconds())
	units := []struct {
		value  int
		suffix string
	}{
		{total / 86400, "d"},
		{total / 3600 % 24, "h"},
		{total / 60 % 60, "m"},
		{total % 60, "s"},
	}

	out := ""
	shown := 0
	for _, u := range units {
		if shown == 2 {
			break
		}
		if u.value == 0 && shown == 0 {
			continue
		}
		if u.value > 0 {
			if out != "" {
				out += " "
			}
			out += strconv.Itoa(u.value) + u.suffix
		}
		shown++
	}
	if out == "" {
		return "0s"
	}
	return out
}
