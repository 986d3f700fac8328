package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"humata-ai/internal/contextutil"
	"humata-ai/internal/storage"
)

// CacheInspector reports on the extraction cache. *storage.ExtractionRepo implements it.
type CacheInspector interface {
	PingContext(ctx context.Context) error
	Stats(ctx context.Context) (storage.CacheStats, error)
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	reasoningConfigured bool
	imageStrategy       string
	cache               CacheInspector
	healthCheckTimeout  time.Duration
}

// NewHealthHandler creates a new HealthHandler. cache may be nil when the
// extraction cache is disabled.
func NewHealthHandler(reasoningConfigured bool, imageStrategy string, cache CacheInspector) *HealthHandler {
	return &HealthHandler{
		reasoningConfigured: reasoningConfigured,
		imageStrategy:       imageStrategy,
		cache:               cache,
		healthCheckTimeout:  5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`

	// Extraction cache usage (only present when the cache is enabled and reachable)
	Cache *storage.CacheStats `json:"cache,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// Check the health status of the system and its dependencies.
// Returns 200 OK if healthy, 503 Service Unavailable otherwise.
//
// swagger:route GET /api/health healthCheck
//
// # Health check endpoint
//
// Returns the reasoning credential state, the active image strategy and the
// extraction cache state with its entry and hit counts.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: System is healthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
//	'503':
//	  description: System is unhealthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Create context with timeout for health checks
	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := map[string]string{
		"image_strategy": h.imageStrategy,
	}
	var issues []string
	var cacheStats *storage.CacheStats

	if h.reasoningConfigured {
		checks["reasoning_credential"] = "ok"
	} else {
		checks["reasoning_credential"] = "missing"
		issues = append(issues, "reasoning_credential_missing")
	}

	if h.cache == nil {
		checks["extraction_cache"] = "disabled"
	} else if stats, ok := h.checkCache(checkCtx, logger); ok {
		checks["extraction_cache"] = "ok"
		cacheStats = &stats
	} else {
		checks["extraction_cache"] = "error"
		issues = append(issues, "extraction_cache_unavailable")
	}

	// Determine overall status
	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(ctx, w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
		Cache:     cacheStats,
	})
}

// checkCache checks if the extraction cache database is accessible and reads its usage.
func (h *HealthHandler) checkCache(ctx context.Context, logger *slog.Logger) (storage.CacheStats, bool) {
	if err := h.cache.PingContext(ctx); err != nil {
		logger.WarnContext(ctx, "extraction cache health check failed", "error", err)
		return storage.CacheStats{}, false
	}
	stats, err := h.cache.Stats(ctx)
	if err != nil {
		logger.WarnContext(ctx, "extraction cache stats failed", "error", err)
		return storage.CacheStats{}, false
	}
	return stats, true
}
