package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

// extractDOCX reads the main document part and joins the text runs of each
// paragraph, emitting one newline per paragraph.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &FormatError{Format: FormatDOCX, Message: "not a zip archive", Cause: err}
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", &FormatError{Format: FormatDOCX, Message: "missing " + docxBodyPart}
	}

	rc, err := part.Open()
	if err != nil {
		return "", &FormatError{Format: FormatDOCX, Message: "failed to open " + docxBodyPart, Cause: err}
	}
	defer func() { _ = rc.Close() }()

	text, err := scanDocumentXML(rc)
	if err != nil {
		return "", &FormatError{Format: FormatDOCX, Message: "malformed " + docxBodyPart, Cause: err}
	}
	return text, nil
}

func scanDocumentXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if b.Len() > 0 {
				break
			}
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
