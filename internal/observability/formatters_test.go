package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/ingestion"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResume(&types.ParsedResume{
		Contact: types.Contact{Name: "Jane Doe", Email: "jane@example.com"},
		Experience: []types.Job{
			{Company: "Acme", Title: "Engineer", Dates: "2020 – Present", Bullets: []string{"a", "b"}},
		},
		Skills:   "Go, SQL",
		Metadata: types.Metadata{Source: "request"},
	})
	output := buf.String()

	assert.Contains(t, output, "PROFILE RÉSUMÉ")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Engineer @ Acme (2020 – Present) [2 bullets]")
	assert.Contains(t, output, "Go, SQL")
	assert.NotContains(t, output, "Phone:")
}

func TestPrintResume_NoExperience(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResume(&types.ParsedResume{Contact: types.Contact{Name: "Jane"}})
	assert.Contains(t, buf.String(), "Experience: none")
}

func TestPrintCVData(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	jobs := make([]types.WorkExperience, 7)
	for i := range jobs {
		jobs[i] = types.WorkExperience{Company: "Co", Title: "Dev", StartDate: "2019", EndDate: "2020"}
	}
	p.PrintCVData(&types.CVData{
		PersonalInfo:   types.PersonalInfo{FirstName: "Jane", LastName: "Doe"},
		WorkExperience: jobs,
		Skills:         []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED CV DATA")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Work Experience (7)")
	assert.Contains(t, output, "Dev @ Co (2019 – 2020)")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "(+2)")
}

func TestPrintCVData_NoWorkExperience(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCVData(&types.CVData{})
	assert.Contains(t, buf.String(), "No work experience extracted")
}

func TestPrintExtraction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction(&types.ExtractionJob{
		RequestID:      "req-1",
		FilePath:       "u/cv.pdf",
		Format:         "pdf",
		Method:         "pdf-blocks",
		FileSize:       2048,
		TextLength:     900,
		Readable:       true,
		Strategy:       types.StrategyFullText,
		Provider:       "groq",
		Model:          "llama-3.3-70b-versatile",
		SecondPass:     true,
		SecondPassUsed: true,
	})
	output := buf.String()

	assert.Contains(t, output, "CV EXTRACTION")
	assert.Contains(t, output, "pdf via pdf-blocks (2048 bytes)")
	assert.Contains(t, output, "full_text")
	assert.Contains(t, output, "groq (llama-3.3-70b-versatile)")
	assert.Contains(t, output, "recovered by second pass")
}

func TestPrintIngestion(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintIngestion(&ingestion.Metadata{
		Filename: "cv.doc", Format: "doc", Method: "doc-strip", Characters: 80, Warning: "text looks garbled",
	})
	assert.Equal(t, "cv.doc: doc via doc-strip, 80 chars, unreadable ⚠ text looks garbled\n", buf.String())
}

func TestPrinter_NilInputs(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResume(nil)
	p.PrintCVData(nil)
	p.PrintExtraction(nil)
	p.PrintIngestion(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
