package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"humata-ai/internal/extract"
	"humata-ai/internal/service"
	"humata-ai/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

// multipartBody builds a request body with one "file" part.
func multipartBody(t *testing.T, fileName, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("part.Write() error = %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("multipart Close() error = %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pdf := []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")

	tests := []struct {
		name        string
		fileName    string
		contentType string
		content     []byte
		mockSetup   func(*mocks.MockFileService)
		wantStatus  int
	}{
		{
			name:        "declared mime type kept",
			fileName:    "notes.txt",
			contentType: "text/markdown",
			content:     []byte("# hi"),
			mockSetup: func(m *mocks.MockFileService) {
				m.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), "text/markdown", "notes.txt").
					DoAndReturn(func(_ context.Context, path, mimeType, fileName string) (extract.File, error) {
						data, err := os.ReadFile(path)
						if err != nil || string(data) != "# hi" {
							return extract.File{}, errors.New("temp file not written")
						}
						return extract.File{Base64Data: "IyBoaQ==", MimeType: mimeType, FileName: fileName}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "generic mime type sniffed",
			fileName:    "scan.pdf",
			contentType: "application/octet-stream",
			content:     pdf,
			mockSetup: func(m *mocks.MockFileService) {
				m.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), "application/pdf", "scan.pdf").
					Return(extract.File{MimeType: "application/pdf", FileName: "scan.pdf"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:     "path components stripped from file name",
			fileName: "../../etc/report.pdf",
			content:  pdf,
			mockSetup: func(m *mocks.MockFileService) {
				m.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), "application/pdf", "report.pdf").
					Return(extract.File{MimeType: "application/pdf", FileName: "report.pdf"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "too large",
			fileName:    "big.txt",
			contentType: "text/plain",
			content:     bytes.Repeat([]byte("a"), 4096),
			mockSetup:   func(m *mocks.MockFileService) {},
			wantStatus:  http.StatusRequestEntityTooLarge,
		},
		{
			name:        "read failure",
			fileName:    "a.txt",
			contentType: "text/plain",
			content:     []byte("a"),
			mockSetup: func(m *mocks.MockFileService) {
				m.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(extract.File{}, service.WrapError(os.ErrPermission, "failed to read uploaded file"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploadDir := t.TempDir()
			fileService := mocks.NewMockFileService(ctrl)
			tt.mockSetup(fileService)

			handler := NewUploadHandler(fileService, uploadDir, 1024)

			body, contentType := multipartBody(t, tt.fileName, tt.contentType, tt.content)
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("ServeHTTP() status = %v, want %v (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var resp UploadResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.FileName == "" || resp.MimeType == "" {
					t.Errorf("response = %+v, want name and mime type", resp)
				}
			} else if got := decodeError(t, w); !isArabic(got) {
				t.Errorf("error = %q, want an Arabic message", got)
			}

			entries, err := os.ReadDir(uploadDir)
			if err != nil {
				t.Fatalf("ReadDir() error = %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("upload dir has %d leftover files", len(entries))
			}
		})
	}
}

func TestUploadHandler_MissingField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewUploadHandler(mocks.NewMockFileService(ctrl), t.TempDir(), 1024)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("other", "value")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("ServeHTTP() status = %v, want %v", w.Code, http.StatusBadRequest)
	}
	if got := decodeError(t, w); got != msgMissingFile {
		t.Errorf("error = %q, want %q", got, msgMissingFile)
	}
}

func TestUploadHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewUploadHandler(mocks.NewMockFileService(ctrl), t.TempDir(), 1024)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/upload", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("ServeHTTP() status = %v, want %v", w.Code, http.StatusMethodNotAllowed)
	}
}
