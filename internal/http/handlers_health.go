package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthCheck reports whether a backing dependency can serve requests.
type HealthCheck func(ctx context.Context) error

const healthCheckTimeout = 2 * time.Second

type healthResponse struct {
	Status string `json:"status"`
}

// healthHandler answers readiness/liveness probes. With a check configured,
// a failing dependency turns the probe into a 503.
type healthHandler struct {
	check  HealthCheck
	logger *slog.Logger
}

func (h healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status, body := http.StatusOK, healthResponse{Status: "ok"}
	if h.check != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.check(ctx); err != nil {
			if h.logger != nil {
				h.logger.WarnContext(r.Context(), "health check failed", "error", err)
			}
			status, body = http.StatusServiceUnavailable, healthResponse{Status: "unavailable"}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	// Nothing more to do if the client connection is gone.
	_ = json.NewEncoder(w).Encode(body)
}
