package service

import "fmt"

const (
	// MaxMessageBytes is the maximum size of the user message (100KB).
	MaxMessageBytes = 100 * 1024

	// MaxSystemPromptBytes is the maximum size of the caller's system prompt addition (50KB).
	MaxSystemPromptBytes = 50 * 1024

	// MaxHistoryTurns is the maximum number of prior conversation turns.
	MaxHistoryTurns = 100

	// MaxFiles is the maximum number of attached files, counting the single file.
	MaxFiles = 10
)

// validateChatRequest checks size limits and that there is something to send.
func validateChatRequest(req ChatRequest) error {
	if len(req.Message) > MaxMessageBytes {
		return &ValidationError{
			Field:     "message",
			Message:   fmt.Sprintf("exceeds maximum size: %d bytes (max %d)", len(req.Message), MaxMessageBytes),
			Localized: msgMessageTooLarge,
		}
	}

	if len(req.Options.SystemPrompt) > MaxSystemPromptBytes {
		return &ValidationError{
			Field:     "options.systemPrompt",
			Message:   fmt.Sprintf("exceeds maximum size: %d bytes (max %d)", len(req.Options.SystemPrompt), MaxSystemPromptBytes),
			Localized: msgSystemPromptTooBig,
		}
	}

	if len(req.History) > MaxHistoryTurns {
		return &ValidationError{
			Field:     "history",
			Message:   fmt.Sprintf("exceeds maximum length: %d turns (max %d)", len(req.History), MaxHistoryTurns),
			Localized: msgHistoryTooLong,
		}
	}

	fileCount := len(req.Options.Files)
	if req.Options.hasSingleFile() {
		fileCount++
	}
	if fileCount > MaxFiles {
		return &ValidationError{
			Field:     "options.files",
			Message:   fmt.Sprintf("too many files: %d (max %d)", fileCount, MaxFiles),
			Localized: msgTooManyFiles,
		}
	}

	if req.Message == "" && fileCount == 0 {
		return &ValidationError{
			Field:     "message",
			Message:   "cannot be empty",
			Localized: msgEmptyMessage,
		}
	}

	return nil
}
