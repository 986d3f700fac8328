package extract

import (
	"errors"
	"fmt"
)

// ErrExtraction matches every *ExtractionError with errors.Is.
var ErrExtraction = errors.New("extraction failed")

// User-visible extraction messages.
const (
	msgPDFFailed    = "فشل في قراءة ملف PDF"
	msgWordFailed   = "فشل في قراءة ملف Word"
	msgDecodeFailed = "فشل في فك ترميز الملف"
)

// Markers returned in place of extracted text. They are never empty.
const (
	ImageNoTextMarker = "[صورة - لم يتم العثور على نص قابل للقراءة في الصورة]"
	ImageFailedMarker = "[صورة - فشل في استخراج النص من الصورة]"
	ocrTextPrefix     = "[نص مستخرج من الصورة باستخدام OCR]:\n"
)

// ExtractionError reports a file that could not be read. Message is safe to show to users.
type ExtractionError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	return e.Message
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrExtraction) true for any ExtractionError.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}

// UnsupportedPlaceholder is returned for files whose type has no extractor.
func UnsupportedPlaceholder(fileName string) string {
	return fmt.Sprintf("[ملف: %s] - نوع الملف غير مدعوم للقراءة التلقائية", fileName)
}
