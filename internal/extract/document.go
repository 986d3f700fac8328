package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	wordNamespace    = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	wordDocumentPath = "word/document.xml"
)

// ExtractPDF returns the plain text of every page in the document.
func ExtractPDF(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Kind: KindPDF, Message: msgPDFFailed, Err: fmt.Errorf("pdf reader panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Kind: KindPDF, Message: msgPDFFailed, Err: err}
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Kind: KindPDF, Message: msgPDFFailed, Err: err}
	}

	raw, err := io.ReadAll(plain)
	if err != nil {
		return "", &ExtractionError{Kind: KindPDF, Message: msgPDFFailed, Err: err}
	}
	return string(raw), nil
}

// ExtractWord returns the raw text of an OOXML (.docx) document, one blank line
// after each paragraph. Legacy binary .doc files fail with an ExtractionError.
func ExtractWord(data []byte) (string, error) {
	text, err := readWordDocument(data)
	if err != nil {
		return "", &ExtractionError{Kind: KindWord, Message: msgWordFailed, Err: err}
	}
	return text, nil
}

func readWordDocument(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == wordDocumentPath {
			document = f
			break
		}
	}
	if document == nil {
		return "", errors.New("docx archive has no " + wordDocumentPath)
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", wordDocumentPath, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var b strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false
	// Tab stops and breaks inside property elements are formatting, not content.
	propsDepth := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", wordDocumentPath, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Space != wordNamespace {
				continue
			}
			switch el.Name.Local {
			case "pPr", "rPr", "sectPr":
				propsDepth++
			case "t":
				inText = propsDepth == 0
			case "tab":
				if propsDepth == 0 {
					b.WriteByte('\t')
				}
			case "br", "cr":
				if propsDepth == 0 {
					b.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if el.Name.Space != wordNamespace {
				continue
			}
			switch el.Name.Local {
			case "pPr", "rPr", "sectPr":
				propsDepth--
			case "t":
				inText = false
			case "p":
				b.WriteString("\n\n")
			}
		case xml.CharData:
			if inText {
				b.Write(el)
			}
		}
	}

	return b.String(), nil
}

// ExtractText returns data as UTF-8 text, byte for byte.
func ExtractText(data []byte) string {
	return string(data)
}
