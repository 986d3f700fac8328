package extract

import (
	"mime"
	"strings"
)

// Kind is the closed set of formats the dispatcher knows how to read.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPDF
	KindWord
	KindText
	KindImage
)

// MIME types matched exactly by Classify.
const (
	MimePDF      = "application/pdf"
	MimeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC      = "application/msword"
	MimeText     = "text/plain"
	MimeMarkdown = "text/markdown"

	imagePrefix = "image/"
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindWord:
		return "word"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "unsupported"
	}
}

// Classify maps a declared MIME type to a Kind. Parameters such as charset and
// letter case are ignored; the first matching rule wins.
func Classify(mimeType string) Kind {
	mt := normalizeMIME(mimeType)

	switch {
	case mt == MimePDF:
		return KindPDF
	case mt == MimeDOCX || mt == MimeDOC:
		return KindWord
	case mt == MimeText || mt == MimeMarkdown:
		return KindText
	case strings.HasPrefix(mt, imagePrefix):
		return KindImage
	default:
		return KindUnsupported
	}
}

func normalizeMIME(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		return parsed
	}
	return mt
}
