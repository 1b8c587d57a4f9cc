package document

import (
	"bytes"
	"io"
	"log"

	"github.com/ledongthuc/pdf"
)

// readPDFStructured reads the document through a real PDF object parser, which
// handles compressed content streams. The parser panics on some malformed
// inputs, so failures are logged and reported as no text.
func readPDFStructured(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[document] pdf reader panicked: %v", r)
			text = ""
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return ""
	}
	return buf.String()
}
