package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/afya-yetu/casework-gateway/internal/core/ports"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// pinger is implemented by session stores with a connectivity check.
type pinger interface {
	Ping(ctx context.Context) error
}

// registryProber checks that the upstream registry answers at all.
type registryProber interface {
	CSRFToken(ctx context.Context) (string, error)
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// Checks the upstream registry and the session mirror before declaring the
// gateway ready.
type ReadinessHandler struct {
	registry registryProber
	store    ports.SessionStore
}

func NewReadinessHandler(registry registryProber, store ports.SessionStore) *ReadinessHandler {
	return &ReadinessHandler{registry: registry, store: store}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	// --- Upstream registry ---
	if _, err := h.registry.CSRFToken(ctx); err != nil {
		deps["registry"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["registry"] = dependencyStatus{Status: "ok"}
	}

	// --- Session mirror (only stores with a connectivity check) ---
	if p, ok := h.store.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			deps["session_store"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["session_store"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
