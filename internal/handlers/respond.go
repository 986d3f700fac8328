package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"humata-ai/internal/contextutil"
	"humata-ai/internal/service"
)

// User-visible messages for failures detected before the service layer.
const (
	msgMethodNotAllowed = "طريقة الطلب غير مسموح بها"
	msgInvalidBody      = "صيغة الطلب غير صالحة"
	msgRequestTooLarge  = "حجم الطلب يتجاوز الحد المسموح"
	msgFileTooLarge     = "حجم الملف يتجاوز الحد المسموح"
	msgMissingFile      = "لم يتم إرفاق أي ملف"
	msgUploadFailed     = "فشل في حفظ الملف المرفوع"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrExtraction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrRateLimitExhausted):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrMissingCredential):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrInvalidCredential), errors.Is(err, service.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError logs err and writes the user-visible message with the mapped status.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusForError(err)
	contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "service error", "error", err, "status", status)
	writeError(w, status, service.UserMessage(err))
}

// writeJSON writes v as a JSON response.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
