package service

import (
	"errors"
	"strings"
	"testing"

	"humata-ai/internal/extract"
)

func TestValidateChatRequest(t *testing.T) {
	file := extract.File{Base64Data: "eA==", MimeType: "text/plain", FileName: "x.txt"}
	manyFiles := make([]extract.File, MaxFiles)
	for i := range manyFiles {
		manyFiles[i] = file
	}

	tests := []struct {
		name      string
		req       ChatRequest
		wantField string
		wantMsg   string
	}{
		{
			name: "message only",
			req:  ChatRequest{Message: "مرحبا"},
		},
		{
			name: "file only",
			req:  ChatRequest{Options: ChatOptions{File: file}},
		},
		{
			name: "files at limit",
			req:  ChatRequest{Message: "x", Options: ChatOptions{Files: manyFiles}},
		},
		{
			name:      "empty",
			req:       ChatRequest{},
			wantField: "message",
			wantMsg:   msgEmptyMessage,
		},
		{
			name:      "message too large",
			req:       ChatRequest{Message: strings.Repeat("a", MaxMessageBytes+1)},
			wantField: "message",
			wantMsg:   msgMessageTooLarge,
		},
		{
			name:      "system prompt too large",
			req:       ChatRequest{Message: "x", Options: ChatOptions{SystemPrompt: strings.Repeat("a", MaxSystemPromptBytes+1)}},
			wantField: "options.systemPrompt",
			wantMsg:   msgSystemPromptTooBig,
		},
		{
			name:      "history too long",
			req:       ChatRequest{Message: "x", History: make([]Turn, MaxHistoryTurns+1)},
			wantField: "history",
			wantMsg:   msgHistoryTooLong,
		},
		{
			name:      "single file counts toward limit",
			req:       ChatRequest{Message: "x", Options: ChatOptions{File: file, Files: manyFiles}},
			wantField: "options.files",
			wantMsg:   msgTooManyFiles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateChatRequest(tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("validateChatRequest() unexpected error: %v", err)
				}
				return
			}
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("validateChatRequest() error = %v, want *ValidationError", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", valErr.Field, tt.wantField)
			}
			if got := UserMessage(err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}
