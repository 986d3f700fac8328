// Package extract turns uploaded files into text for the chat prompt.
package extract

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_cache.go -package=mocks humata-ai/internal/extract Cache

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"humata-ai/internal/contextutil"
)

// File is an uploaded file as it travels between the client and the dispatcher.
type File struct {
	Base64Data string `json:"base64Data"`
	MimeType   string `json:"mimeType"`
	FileName   string `json:"fileName"`
}

// Cache stores extracted text keyed by content hash.
type Cache interface {
	// Get returns the cached text and true, or "" and false on a miss.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put stores text for key.
	Put(ctx context.Context, key, kind, text string) error
}

// Dispatcher routes a file to the extractor for its Kind.
type Dispatcher struct {
	image ImageTextExtractor
	cache Cache
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCache enables caching of PDF, Word and image results.
func WithCache(cache Cache) Option {
	return func(d *Dispatcher) {
		d.cache = cache
	}
}

// NewDispatcher creates a Dispatcher that reads images with image.
func NewDispatcher(image ImageTextExtractor, opts ...Option) *Dispatcher {
	d := &Dispatcher{image: image}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ImageStrategy reports which image strategy is active.
func (d *Dispatcher) ImageStrategy() string {
	return d.image.Strategy()
}

// Extract returns the text content of f. Unsupported types yield a placeholder
// naming the file and never fail.
func (d *Dispatcher) Extract(ctx context.Context, f File) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	kind := Classify(f.MimeType)
	logger.InfoContext(ctx, "processing file", "file_name", f.FileName, "mime_type", f.MimeType, "kind", kind.String())

	if kind == KindUnsupported {
		return UnsupportedPlaceholder(f.FileName), nil
	}

	data, err := decodeBase64(f.Base64Data)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode file data", "file_name", f.FileName, "error", err)
		return "", &ExtractionError{Kind: kind, Message: msgDecodeFailed, Err: err}
	}

	var key string
	if d.cache != nil && kind != KindText {
		key = d.cacheKey(kind, data)
		if text, ok := d.lookup(ctx, key); ok {
			logger.InfoContext(ctx, "extraction cache hit", "file_name", f.FileName, "kind", kind.String())
			return text, nil
		}
	}

	text, err := d.extract(ctx, kind, data, f.MimeType)
	if err != nil {
		logger.ErrorContext(ctx, "extraction failed", "file_name", f.FileName, "kind", kind.String(), "error", err)
		return "", err
	}
	logger.InfoContext(ctx, "file extracted", "file_name", f.FileName, "kind", kind.String(), "chars", len([]rune(text)))

	if key != "" && text != ImageFailedMarker {
		if err := d.cache.Put(ctx, key, kind.String(), text); err != nil {
			logger.WarnContext(ctx, "failed to store extraction in cache", "error", err)
		}
	}

	return text, nil
}

func (d *Dispatcher) extract(ctx context.Context, kind Kind, data []byte, mimeType string) (string, error) {
	switch kind {
	case KindPDF:
		return ExtractPDF(data)
	case KindWord:
		return ExtractWord(data)
	case KindText:
		return ExtractText(data), nil
	case KindImage:
		return d.image.ExtractImageText(ctx, data, mimeType)
	case KindUnsupported:
		return "", fmt.Errorf("no extractor for kind %s", kind)
	}
	return "", fmt.Errorf("unknown kind %d", int(kind))
}

func (d *Dispatcher) lookup(ctx context.Context, key string) (string, bool) {
	text, ok, err := d.cache.Get(ctx, key)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "extraction cache lookup failed", "error", err)
		return "", false
	}
	return text, ok
}

// cacheKey scopes image entries to the active strategy so OCR text and vision
// descriptions never answer for each other.
func (d *Dispatcher) cacheKey(kind Kind, data []byte) string {
	var strategy string
	if kind == KindImage {
		strategy = d.image.Strategy()
	}
	return cacheKey(kind, strategy, data)
}

func cacheKey(kind Kind, strategy string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(kind.String()))
	h.Write([]byte{0})
	h.Write([]byte(strategy))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// decodeBase64 accepts padded or unpadded standard base64 and ignores whitespace.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(s); rawErr == nil {
		return raw, nil
	}
	return nil, err
}
