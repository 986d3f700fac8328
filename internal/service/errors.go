package service

import (
	"errors"
	"fmt"

	"humata-ai/internal/extract"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingCredential is returned when no reasoning credential is configured.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential is returned when the provider rejects the credential.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrRateLimitExhausted is returned when every retry was rate limited.
	ErrRateLimitExhausted = errors.New("rate limit retries exhausted")
	// ErrExtraction is returned when a file could not be read. It is the same
	// value as extract.ErrExtraction.
	ErrExtraction = extract.ErrExtraction
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
)

// User-visible messages.
const (
	msgMissingCredential  = "لا يوجد مفتاح API متاح - يرجى إضافة GROQ_API_KEY"
	msgInvalidCredential  = "خطأ في مفتاح API - تحقق من إعدادات الخادم"
	msgRateLimitExhausted = "تم تجاوز الحد المسموح من الطلبات - يرجى المحاولة لاحقاً"
	msgProcessingFailed   = "حدث خطأ في معالجة الرسالة"
	msgInvalidRequest     = "الطلب غير صالح"

	msgEmptyMessage       = "الرسالة فارغة - يرجى كتابة رسالة أو إرفاق ملف"
	msgMessageTooLarge    = "حجم الرسالة يتجاوز الحد المسموح"
	msgSystemPromptTooBig = "حجم التعليمات الإضافية يتجاوز الحد المسموح"
	msgHistoryTooLong     = "سجل المحادثة أطول من الحد المسموح - يرجى بدء محادثة جديدة"
	msgTooManyFiles       = "عدد الملفات المرفقة يتجاوز الحد المسموح"
)

// ValidationError represents a validation error with a field name. Message is
// for logs; Localized is shown to the user.
type ValidationError struct {
	Field     string
	Message   string
	Localized string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Is reports ValidationError as ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// LocalizedError carries a message safe to show to the user. It matches both
// its Kind sentinel and the underlying cause with errors.Is.
type LocalizedError struct {
	Kind    error
	Message string
	Err     error
}

func (e *LocalizedError) Error() string {
	return e.Message
}

func (e *LocalizedError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// UserMessage returns the message to show for err. Errors without a localized
// message fall back to the generic processing failure.
func UserMessage(err error) string {
	var locErr *LocalizedError
	if errors.As(err, &locErr) && locErr.Message != "" {
		return locErr.Message
	}
	var extErr *extract.ExtractionError
	if errors.As(err, &extErr) {
		return extErr.Message
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		if valErr.Localized != "" {
			return valErr.Localized
		}
		return msgInvalidRequest
	}
	return msgProcessingFailed
}
