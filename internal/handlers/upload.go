package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"humata-ai/internal/contextutil"
	"humata-ai/internal/service"
)

const genericMimeType = "application/octet-stream"

// UploadHandler stores a multipart upload on disk and returns it as a chat attachment.
type UploadHandler struct {
	fileService service.FileService
	uploadDir   string
	maxBytes    int64
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(fileService service.FileService, uploadDir string, maxBytes int64) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
		uploadDir:   uploadDir,
		maxBytes:    maxBytes,
	}
}

// UploadResponse is the attachment returned to the client.
//
// swagger:model UploadResponse
type UploadResponse struct {
	Base64Data string `json:"base64Data"`
	MimeType   string `json:"mimeType"`
	FileName   string `json:"fileName"`
}

// ServeHTTP handles HTTP requests for file uploads.
//
// swagger:route POST /api/upload upload
//
// Upload a file in the multipart field "file".
//
// responses:
//
//	'200': UploadResponse
//	'400': ErrorResponse
//	'413': ErrorResponse
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	part, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.WarnContext(ctx, "upload too large", "limit", maxErr.Limit)
			writeError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		logger.WarnContext(ctx, "invalid upload", "error", err)
		writeError(w, http.StatusBadRequest, msgMissingFile)
		return
	}
	defer func() {
		_ = part.Close()
	}()

	tmpPath := filepath.Join(h.uploadDir, "upload-"+uuid.NewString())
	if err := saveUpload(tmpPath, part); err != nil {
		logger.ErrorContext(ctx, "failed to store upload", "error", err)
		writeError(w, http.StatusInternalServerError, msgUploadFailed)
		return
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			logger.WarnContext(ctx, "failed to remove upload", "path", tmpPath, "error", err)
		}
	}()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == genericMimeType {
		mimeType = detectMimeType(tmpPath)
	}
	fileName := filepath.Base(header.Filename)

	file, err := h.fileService.UploadFile(ctx, tmpPath, mimeType, fileName)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read upload", "error", err)
		writeError(w, http.StatusInternalServerError, msgUploadFailed)
		return
	}

	writeJSON(ctx, w, http.StatusOK, UploadResponse{
		Base64Data: file.Base64Data,
		MimeType:   file.MimeType,
		FileName:   file.FileName,
	})
}

func saveUpload(path string, src io.Reader) error {
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return err
	}
	return dst.Close()
}

// detectMimeType sniffs the file content and drops any parameters.
func detectMimeType(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return genericMimeType
	}
	base, _, _ := strings.Cut(mt.String(), ";")
	return base
}
