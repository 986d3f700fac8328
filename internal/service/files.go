package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_file_service.go -package=mocks -mock_names=FileService=MockFileService humata-ai/internal/service FileService

import (
	"context"
	"encoding/base64"
	"os"

	"humata-ai/internal/contextutil"
	"humata-ai/internal/extract"
)

// FileService turns files on local disk into attachments for chat requests.
type FileService interface {
	// UploadFile reads the file at path and returns it base64 encoded.
	UploadFile(ctx context.Context, path, mimeType, fileName string) (extract.File, error)
}

type fileService struct{}

// NewFileService creates a new FileService.
func NewFileService() FileService {
	return &fileService{}
}

// UploadFile reads path fully. Read failures keep the underlying I/O error.
func (s *fileService) UploadFile(ctx context.Context, path, mimeType, fileName string) (extract.File, error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "reading uploaded file", "file_name", fileName, "mime_type", mimeType)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read uploaded file", "file_name", fileName, "error", err)
		return extract.File{}, WrapError(err, "failed to read uploaded file")
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	logger.DebugContext(ctx, "uploaded file encoded", "size_bytes", len(data), "base64_length", len(encoded))

	return extract.File{
		Base64Data: encoded,
		MimeType:   mimeType,
		FileName:   fileName,
	}, nil
}
