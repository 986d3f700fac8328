package handlers

import (
	"net/http"

	"humata-ai/internal/contextutil"
	"humata-ai/internal/service"
)

// StatusHandler reports configured credentials.
type StatusHandler struct {
	statusService service.StatusService
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(statusService service.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// StatusResponse mirrors service.APIKeyStatus.
//
// swagger:model StatusResponse
type StatusResponse struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Failed    int `json:"failed"`
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	status := h.statusService.APIKeyStatus()
	writeJSON(ctx, w, http.StatusOK, StatusResponse{
		Total:     status.Total,
		Available: status.Available,
		Failed:    status.Failed,
	})
}
