package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildDOCX returns a minimal .docx archive whose body is documentXML.
func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   documentXML,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func wordBody(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		inner +
		`</w:body></w:document>`
}

// buildPDF returns a single-page PDF showing text in Helvetica, with a correct xref table.
func buildPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 24 Tf 72 712 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractPDF(t *testing.T) {
	text, err := ExtractPDF(buildPDF("Hello PDF"))
	if err != nil {
		t.Fatalf("ExtractPDF() unexpected error: %v", err)
	}
	if !strings.Contains(text, "Hello PDF") {
		t.Errorf("ExtractPDF() = %q, want it to contain %q", text, "Hello PDF")
	}
}

func TestExtractPDF_Invalid(t *testing.T) {
	inputs := map[string][]byte{
		"not a pdf": []byte("plain bytes"),
		"empty":     {},
		"truncated": buildPDF("Hello")[:40],
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractPDF(data)
			if err == nil {
				t.Fatal("ExtractPDF() expected error")
			}
			if !errors.Is(err, ErrExtraction) {
				t.Errorf("ExtractPDF() error should match ErrExtraction, got %v", err)
			}
			if err.Error() != msgPDFFailed {
				t.Errorf("ExtractPDF() error = %q, want %q", err.Error(), msgPDFFailed)
			}
		})
	}
}

func TestExtractWord(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "paragraphs separated by blank lines",
			body: `<w:p><w:r><w:t>السلام عليكم</w:t></w:r></w:p><w:p><w:r><w:t>Second</w:t></w:r></w:p>`,
			want: "السلام عليكم\n\nSecond\n\n",
		},
		{
			name: "runs joined, tabs and breaks kept",
			body: `<w:p><w:r><w:t xml:space="preserve">one </w:t></w:r><w:r><w:tab/><w:t>two</w:t><w:br/><w:t>three</w:t></w:r></w:p>`,
			want: "one \ttwo\nthree\n\n",
		},
		{
			name: "tab stops in paragraph properties ignored",
			body: `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>body</w:t></w:r></w:p>`,
			want: "body\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractWord(buildDOCX(t, wordBody(tt.body)))
			if err != nil {
				t.Fatalf("ExtractWord() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractWord() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractWord_Invalid(t *testing.T) {
	var emptyZip bytes.Buffer
	if err := zip.NewWriter(&emptyZip).Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	inputs := map[string][]byte{
		"legacy doc bytes": {0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1},
		"zip without body": emptyZip.Bytes(),
		"malformed xml":    buildDOCX(t, `<w:document xmlns:w="x"><w:body>`),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractWord(data)
			if err == nil {
				t.Fatal("ExtractWord() expected error")
			}
			var extErr *ExtractionError
			if !errors.As(err, &extErr) || extErr.Kind != KindWord {
				t.Fatalf("ExtractWord() error = %#v, want *ExtractionError for word", err)
			}
			if err.Error() != msgWordFailed {
				t.Errorf("ExtractWord() error = %q, want %q", err.Error(), msgWordFailed)
			}
		})
	}
}

func TestExtractText_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain ascii",
		"مرحبا بالعالم\nسطر ثاني",
		"# Markdown **kept** verbatim\n\n- item",
		"emoji 🚀 and tabs\t\r\n",
	}
	for _, in := range inputs {
		if got := ExtractText([]byte(in)); got != in {
			t.Errorf("ExtractText() = %q, want %q", got, in)
		}
	}
}
