package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode"

	"humata-ai/internal/extract"
	"humata-ai/internal/provider"
	"humata-ai/internal/service"
	"humata-ai/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewChatHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockChatService := mocks.NewMockChatService(ctrl)
	handler := NewChatHandler(mockChatService, 1024)

	if handler == nil {
		t.Fatal("NewChatHandler() returned nil")
	}
	if handler.chatService != mockChatService {
		t.Error("NewChatHandler() chatService not set correctly")
	}
	if handler.maxBytes != 1024 {
		t.Errorf("NewChatHandler() maxBytes = %d, want 1024", handler.maxBytes)
	}
}

// decodeError reads the error message from an ErrorResponse body.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Error
}

// isArabic reports whether s has Arabic letters and no Latin ones.
func isArabic(s string) bool {
	hasArabic := false
	for _, r := range s {
		if unicode.In(r, unicode.Latin) {
			return false
		}
		if unicode.In(r, unicode.Arabic) {
			hasArabic = true
		}
	}
	return hasArabic
}

func TestChatHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		method        string
		body          string
		mockSetup     func(*mocks.MockChatService)
		wantStatus    int
		checkResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "successful POST request",
			method: http.MethodPost,
			body:   `{"message":"مرحبا"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					SendMessage(gomock.Any(), service.ChatRequest{
						Message: "مرحبا",
						History: []service.Turn{},
					}).
					Return(service.ChatResponse{Reply: "أهلاً"}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp ChatResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.Reply != "أهلاً" {
					t.Errorf("reply = %q, want أهلاً", resp.Reply)
				}
			},
		},
		{
			name:   "history and options mapped",
			method: http.MethodPost,
			body: `{
				"message": "لخص",
				"history": [{"role":"user","content":"سؤال"},{"role":"assistant","content":"جواب"}],
				"options": {
					"systemPrompt": "Scientific Mode",
					"base64Data": "eA==",
					"mimeType": "text/plain",
					"fileName": "a.txt",
					"enableGrounding": true,
					"files": [{"base64Data":"eQ==","mimeType":"image/png","fileName":"b.png"}]
				}
			}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					SendMessage(gomock.Any(), service.ChatRequest{
						Message: "لخص",
						History: []service.Turn{
							{Role: "user", Content: "سؤال"},
							{Role: "assistant", Content: "جواب"},
						},
						Options: service.ChatOptions{
							SystemPrompt:    "Scientific Mode",
							File:            extract.File{Base64Data: "eA==", MimeType: "text/plain", FileName: "a.txt"},
							Files:           []extract.File{{Base64Data: "eQ==", MimeType: "image/png", FileName: "b.png"}},
							EnableGrounding: true,
						},
					}).
					Return(service.ChatResponse{Reply: "تم"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "method not allowed",
			method: http.MethodGet,
			mockSetup: func(m *mocks.MockChatService) {
				// No calls expected
			},
			wantStatus: http.StatusMethodNotAllowed,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				if got := decodeError(t, w); got != msgMethodNotAllowed {
					t.Errorf("error = %q, want %q", got, msgMethodNotAllowed)
				}
			},
		},
		{
			name:   "invalid JSON body",
			method: http.MethodPost,
			body:   "invalid json",
			mockSetup: func(m *mocks.MockChatService) {
				// No calls expected
			},
			wantStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				if got := decodeError(t, w); got != msgInvalidBody {
					t.Errorf("error = %q, want %q", got, msgInvalidBody)
				}
			},
		},
		{
			name:   "body over limit",
			method: http.MethodPost,
			body:   `{"message":"` + strings.Repeat("ب", 2048) + `"}`,
			mockSetup: func(m *mocks.MockChatService) {
				// No calls expected
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				if got := decodeError(t, w); got != msgRequestTooLarge {
					t.Errorf("error = %q, want %q", got, msgRequestTooLarge)
				}
			},
		},
		{
			name:   "validation error",
			method: http.MethodPost,
			body:   `{"message":""}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					SendMessage(gomock.Any(), gomock.Any()).
					Return(service.ChatResponse{}, &service.ValidationError{
						Field:     "message",
						Message:   "cannot be empty",
						Localized: "الرسالة فارغة",
					})
			},
			wantStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				if got := decodeError(t, w); got != "الرسالة فارغة" {
					t.Errorf("error = %q, want localized validation message", got)
				}
			},
		},
		{
			name:   "missing credential",
			method: http.MethodPost,
			body:   `{"message":"مرحبا"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					SendMessage(gomock.Any(), gomock.Any()).
					Return(service.ChatResponse{}, &service.LocalizedError{
						Kind:    service.ErrMissingCredential,
						Message: "لا يوجد مفتاح API متاح - يرجى إضافة GROQ_API_KEY",
					})
			},
			wantStatus: http.StatusServiceUnavailable,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.Error != "لا يوجد مفتاح API متاح - يرجى إضافة GROQ_API_KEY" {
					t.Errorf("error = %q", resp.Error)
				}
			},
		},
		{
			name:   "extraction failure",
			method: http.MethodPost,
			body:   `{"message":"اقرأ"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					SendMessage(gomock.Any(), gomock.Any()).
					Return(service.ChatResponse{}, &extract.ExtractionError{Kind: extract.KindPDF, Message: "فشل في قراءة ملف PDF"})
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "rate limit exhausted",
			method: http.MethodPost,
			body:   `{"message":"مرحبا"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					SendMessage(gomock.Any(), gomock.Any()).
					Return(service.ChatResponse{}, &service.LocalizedError{
						Kind: service.ErrRateLimitExhausted,
						Err:  provider.ErrRateLimited,
					})
			},
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:   "invalid credential",
			method: http.MethodPost,
			body:   `{"message":"مرحبا"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					SendMessage(gomock.Any(), gomock.Any()).
					Return(service.ChatResponse{}, &service.LocalizedError{Kind: service.ErrInvalidCredential})
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:   "ErrExternalService",
			method: http.MethodPost,
			body:   `{"message":"مرحبا"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					SendMessage(gomock.Any(), gomock.Any()).
					Return(service.ChatResponse{}, service.ErrExternalService)
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:   "unknown error",
			method: http.MethodPost,
			body:   `{"message":"مرحبا"}`,
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					SendMessage(gomock.Any(), gomock.Any()).
					Return(service.ChatResponse{}, errors.New("service error"))
			},
			wantStatus: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.Error != "حدث خطأ في معالجة الرسالة" {
					t.Errorf("error = %q, want generic message", resp.Error)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockChatService := mocks.NewMockChatService(ctrl)
			tt.mockSetup(mockChatService)

			handler := NewChatHandler(mockChatService, 1024)

			req := httptest.NewRequest(tt.method, "/api/chat", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestChatHandler_ValidationErrorsAreArabic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	chatService := service.NewChatService(
		mocks.NewMockReasoningClient(ctrl),
		mocks.NewMockContentExtractor(ctrl),
		service.ChatSettings{APIKey: "test-key"},
	)
	handler := NewChatHandler(chatService, 0)

	bodies := map[string]string{
		"empty message":    `{"message":""}`,
		"history too long": `{"message":"x","history":[` + strings.TrimSuffix(strings.Repeat(`{"role":"user","content":"x"},`, service.MaxHistoryTurns+1), ",") + `]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, http.StatusBadRequest)
			}
			if got := decodeError(t, w); !isArabic(got) {
				t.Errorf("error = %q, want an Arabic message", got)
			}
		})
	}
}

func TestChatBodyLimit(t *testing.T) {
	if got := ChatBodyLimit(0); got != 0 {
		t.Errorf("ChatBodyLimit(0) = %d, want 0", got)
	}
	const upload = 3 << 20
	got := ChatBodyLimit(upload)
	if min := int64(upload/3*4) * service.MaxFiles; got <= min {
		t.Errorf("ChatBodyLimit(%d) = %d, want more than %d to fit %d encoded files", upload, got, min, service.MaxFiles)
	}
}
