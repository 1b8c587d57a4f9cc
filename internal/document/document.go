// Package document extracts raw text from uploaded CV files (PDF, DOCX, legacy DOC)
// using lightweight format heuristics.
package document

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format names the detected document type.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatDOC     Format = "doc"
	FormatText    Format = "text"
	FormatUnknown Format = "unknown"
)

// Method names the heuristic that produced the text.
const (
	MethodPDFBlocks  = "pdf-text-blocks"
	MethodPDFReader  = "pdf-reader"
	MethodPDFStreams = "pdf-streams"
	MethodPDFStrip   = "pdf-strip"
	MethodDOCXXML    = "docx-xml"
	MethodDOCStrip   = "doc-strip"
	MethodPlain      = "plain"
	MethodStrip      = "strip"
)

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Result is the text extracted from one document.
type Result struct {
	Format Format `json:"format"`
	Method string `json:"method"`
	Text   string `json:"-"`
}

// Extract dispatches on the file extension, sniffing the content when the
// extension is missing or unknown. Text that cannot be recovered yields an
// empty Result.Text rather than an error; errors are reserved for archives
// that are structurally broken.
func Extract(filename string, data []byte) (*Result, error) {
	switch DetectFormat(filename, data) {
	case FormatPDF:
		return extractPDF(data), nil
	case FormatDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return nil, err
		}
		return &Result{Format: FormatDOCX, Method: MethodDOCXXML, Text: text}, nil
	case FormatDOC:
		return &Result{Format: FormatDOC, Method: MethodDOCStrip, Text: extractDOC(data)}, nil
	case FormatText:
		return &Result{Format: FormatText, Method: MethodPlain, Text: decodeText(data)}, nil
	default:
		return &Result{Format: FormatUnknown, Method: MethodStrip, Text: stripBinary(data)}, nil
	}
}

// DetectFormat resolves the document type from the extension, falling back to magic bytes.
func DetectFormat(filename string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".doc":
		return FormatDOC
	case ".txt", ".md", ".text":
		return FormatText
	}

	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return FormatPDF
	case bytes.HasPrefix(data, zipMagic):
		return FormatDOCX
	case bytes.HasPrefix(data, oleMagic):
		return FormatDOC
	case utf8.Valid(data):
		return FormatText
	}
	return FormatUnknown
}

func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF")))
	}
	return latin1(data)
}

// latin1 maps each byte to the code point of the same value.
func latin1(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String()
}
