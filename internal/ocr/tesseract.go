// Package ocr recognises printed text in images with a local Tesseract installation.
package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguages combines the Arabic and Latin-script models.
var DefaultLanguages = []string{"ara", "eng"}

// Tesseract runs OCR through libtesseract. Each call uses its own client, so a
// Tesseract value is safe for concurrent use.
type Tesseract struct {
	languages []string
}

// NewTesseract creates an OCR engine for the given language models.
func NewTesseract(languages []string) *Tesseract {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &Tesseract{languages: languages}
}

// Languages returns the configured language models.
func (t *Tesseract) Languages() []string {
	return t.languages
}

// Recognize returns the raw text Tesseract finds in image.
func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer func() {
		_ = client.Close()
	}()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("failed to set OCR languages: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to recognize text: %w", err)
	}
	return text, nil
}
