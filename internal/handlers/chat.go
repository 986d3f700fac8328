package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"humata-ai/internal/contextutil"
	"humata-ai/internal/extract"
	"humata-ai/internal/service"
)

// chatBodyOverhead covers the message, system prompt and history around the
// base64 attachments.
const chatBodyOverhead = 4 << 20

// ChatHandler handles HTTP requests for chat.
type ChatHandler struct {
	chatService service.ChatService
	maxBytes    int64
}

// NewChatHandler creates a new ChatHandler. A maxBytes of zero or less leaves
// the request body uncapped.
func NewChatHandler(chatService service.ChatService, maxBytes int64) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		maxBytes:    maxBytes,
	}
}

// ChatBodyLimit returns the request body cap for /api/chat: the largest
// allowed set of attachments after base64 encoding, plus room for the text.
func ChatBodyLimit(maxUploadBytes int64) int64 {
	if maxUploadBytes <= 0 {
		return 0
	}
	encoded := (maxUploadBytes + 2) / 3 * 4
	return encoded*service.MaxFiles + chatBodyOverhead
}

// TurnPayload is one prior conversation message.
type TurnPayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatOptionsPayload carries the optional request parts. The single file is
// inlined next to the other options.
type ChatOptionsPayload struct {
	SystemPrompt    string         `json:"systemPrompt,omitempty"`
	Base64Data      string         `json:"base64Data,omitempty"`
	MimeType        string         `json:"mimeType,omitempty"`
	FileName        string         `json:"fileName,omitempty"`
	EnableGrounding bool           `json:"enableGrounding,omitempty"`
	Files           []extract.File `json:"files,omitempty"`
}

// ChatRequest represents the HTTP request payload for chat.
//
// swagger:model ChatRequest
type ChatRequest struct {
	Message string             `json:"message"`
	History []TurnPayload      `json:"history,omitempty"`
	Options ChatOptionsPayload `json:"options"`
}

// ChatResponse represents the HTTP response payload for chat.
//
// swagger:model ChatResponse
type ChatResponse struct {
	Reply string `json:"reply"`
}

// toServiceRequest converts the HTTP payload to the service request.
func (r ChatRequest) toServiceRequest() service.ChatRequest {
	history := make([]service.Turn, 0, len(r.History))
	for _, t := range r.History {
		history = append(history, service.Turn{Role: t.Role, Content: t.Content})
	}

	return service.ChatRequest{
		Message: r.Message,
		History: history,
		Options: service.ChatOptions{
			SystemPrompt: r.Options.SystemPrompt,
			File: extract.File{
				Base64Data: r.Options.Base64Data,
				MimeType:   r.Options.MimeType,
				FileName:   r.Options.FileName,
			},
			Files:           r.Options.Files,
			EnableGrounding: r.Options.EnableGrounding,
		},
	}
}

// ServeHTTP handles HTTP requests for chat.
//
// swagger:route POST /api/chat chat
//
// Send a message with optional history and attachments to the reasoning model.
//
// responses:
//
//	'200': ChatResponse
//	'400': ErrorResponse
//	'413': ErrorResponse
//	'422': ErrorResponse
//	'429': ErrorResponse
//	'502': ErrorResponse
//	'503': ErrorResponse
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.WarnContext(ctx, "chat request too large", "limit", maxErr.Limit)
			writeError(w, http.StatusRequestEntityTooLarge, msgRequestTooLarge)
			return
		}
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	svcResp, err := h.chatService.SendMessage(ctx, req.toServiceRequest())
	if err != nil {
		handleServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, ChatResponse{
		Reply: svcResp.Reply,
	})
}
