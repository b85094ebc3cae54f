// Package health serves the health, readiness and liveness endpoints of the API.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Status values reported by /health
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusError    = "error"
)

// DatabaseChecker defines the interface for checking database connectivity.
type DatabaseChecker interface {
	CheckConnectivity(ctx context.Context) error
}

// HealthResponse represents the JSON response for /health.
type HealthResponse struct {
	Version string `json:"version"`
	Status  string `json:"status"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Handler answers health probes for the API server.
type Handler struct {
	serviceName string
	version     string
	logger      logrus.FieldLogger
	db          DatabaseChecker
	timeout     time.Duration
	mu          sync.RWMutex
	ready       bool
}

// Config holds the configuration for the health handler.
type Config struct {
	ServiceName string
	Version     string
	Logger      logrus.FieldLogger
	DB          DatabaseChecker
}

// NewHandler creates a new health handler. It starts out not ready.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		logger:      cfg.Logger,
		db:          cfg.DB,
		timeout:     3 * time.Second,
	}
}

// Register mounts /health, /ready and /live on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /ready", h.handleReady)
	mux.HandleFunc("GET /live", h.handleLive)
}

// SetReady marks the server as ready to accept traffic.
func (h *Handler) SetReady(ready bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ready = ready
}

// IsReady returns whether the server is ready.
func (h *Handler) IsReady() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ready
}

func (h *Handler) checkDatabase(ctx context.Context) error {
	if h.db == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.db.CheckConnectivity(ctx)
}

// handleHealth reports the version and whether the database is reachable.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{Version: h.version, Status: StatusOK}
	status := http.StatusOK

	if err := h.checkDatabase(r.Context()); err != nil {
		if h.logger != nil {
			h.logger.WithError(err).Error("Cannot reach database")
		}
		response.Status = StatusError
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, response)
}

// handleLive handles the /live endpoint - kubernetes liveness probe.
func (h *Handler) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ReadyResponse{Status: StatusOK, Service: h.serviceName})
}

// handleReady handles the /ready endpoint - checks database connectivity.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !h.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = StatusOK
	}

	if h.db != nil {
		if err := h.checkDatabase(r.Context()); err != nil {
			if h.logger != nil {
				h.logger.WithError(err).Error("Cannot reach database")
			}
			allHealthy = false
			checks["database"] = StatusError
		} else {
			checks["database"] = StatusOK
		}
	}

	response := ReadyResponse{
		Service:  h.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	status := http.StatusOK
	if allHealthy {
		response.Status = StatusOK
	} else {
		response.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, response)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
