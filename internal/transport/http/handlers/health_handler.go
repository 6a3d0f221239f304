package handlers

import (
	"context"
	"net/http"
	"time"

	httperrors "github.com/renwic/trusthub/internal/transport/http/errors"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

type healthResponse struct {
	OK       bool              `json:"ok"`
	Services map[string]string `json:"services,omitempty"`
}

// Get always answers 200 so the process stays routable in degraded mode;
// per-service state is reported in the body.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{OK: true}
	if len(h.checks) > 0 {
		resp.Services = make(map[string]string, len(h.checks))
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for name, check := range h.checks {
			if check == nil {
				resp.Services[name] = "disabled"
				continue
			}
			if err := check.Ping(ctx); err != nil {
				resp.Services[name] = "down"
				continue
			}
			resp.Services[name] = "up"
		}
	}
	httperrors.Write(w, http.StatusOK, resp)
}
