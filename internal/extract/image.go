package extract

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_image.go -package=mocks humata-ai/internal/extract OCREngine,ImageDescriber

import (
	"context"
	"fmt"
	"strings"
	"time"

	"humata-ai/internal/contextutil"
	"humata-ai/internal/provider"
	"humata-ai/internal/retry"
)

// Image extraction strategies reported by ImageTextExtractor.Strategy.
const (
	StrategyOCR    = "ocr"
	StrategyVision = "vision"
)

// DefaultVisionPrompt asks the vision model for a description plus any visible text.
const DefaultVisionPrompt = "صف محتوى هذه الصورة بالتفصيل باللغة العربية، وإذا كانت تحتوي على نص فاستخرجه كما هو."

// ImageTextExtractor turns an image into text. Exactly one implementation is
// selected at startup.
type ImageTextExtractor interface {
	ExtractImageText(ctx context.Context, image []byte, mimeType string) (string, error)
	Strategy() string
}

// OCREngine recognises printed text in an image.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// ImageDescriber asks a remote vision model to describe an image.
type ImageDescriber interface {
	DescribeImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
}

// OCRImageExtractor reads images with a local OCR engine. It never returns an error:
// failures and empty results degrade to marker strings.
type OCRImageExtractor struct {
	engine OCREngine
}

// NewOCRImageExtractor creates an OCR-backed ImageTextExtractor.
func NewOCRImageExtractor(engine OCREngine) *OCRImageExtractor {
	return &OCRImageExtractor{engine: engine}
}

// Strategy implements ImageTextExtractor.
func (e *OCRImageExtractor) Strategy() string {
	return StrategyOCR
}

// ExtractImageText implements ImageTextExtractor.
func (e *OCRImageExtractor) ExtractImageText(ctx context.Context, image []byte, mimeType string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "starting local OCR", "mime_type", mimeType, "bytes", len(image))

	text, err := e.engine.Recognize(ctx, image)
	if err != nil {
		logger.ErrorContext(ctx, "OCR failed", "error", err)
		return ImageFailedMarker, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		logger.InfoContext(ctx, "no text found in image")
		return ImageNoTextMarker, nil
	}

	logger.InfoContext(ctx, "OCR extracted text", "chars", len([]rune(text)))
	return ocrTextPrefix + text, nil
}

// VisionImageExtractor describes images with a remote vision model, retrying
// rate-limited calls according to its policy.
type VisionImageExtractor struct {
	describer ImageDescriber
	policy    retry.Policy
	prompt    string
}

// DefaultVisionPolicy retries twice, waiting 2s then 4s.
func DefaultVisionPolicy() retry.Policy {
	return retry.Policy{
		MaxRetries: 2,
		Backoff:    retry.Linear(2 * time.Second),
	}
}

// NewVisionImageExtractor creates a vision-backed ImageTextExtractor using DefaultVisionPrompt.
func NewVisionImageExtractor(describer ImageDescriber, policy retry.Policy) *VisionImageExtractor {
	return &VisionImageExtractor{
		describer: describer,
		policy:    policy,
		prompt:    DefaultVisionPrompt,
	}
}

// Strategy implements ImageTextExtractor.
func (e *VisionImageExtractor) Strategy() string {
	return StrategyVision
}

// ExtractImageText implements ImageTextExtractor.
func (e *VisionImageExtractor) ExtractImageText(ctx context.Context, image []byte, mimeType string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var description string
	err := retry.Do(ctx, e.policy, provider.IsRateLimited,
		func(attempt int, delay time.Duration, err error) {
			logger.WarnContext(ctx, "vision model rate limited, retrying", "attempt", attempt, "delay", delay, "error", err)
		},
		func(ctx context.Context) error {
			var err error
			description, err = e.describer.DescribeImage(ctx, image, mimeType, e.prompt)
			return err
		},
	)
	if err != nil {
		logger.ErrorContext(ctx, "vision model failed", "error", err)
		return "", fmt.Errorf("failed to describe image: %w", err)
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return ImageNoTextMarker, nil
	}
	return description, nil
}
