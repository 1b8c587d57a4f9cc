package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const readableCV = `Jane Doe
jane@example.com | +1 2345678901

PROFESSIONAL SUMMARY
Backend engineer with eight years of experience building payment systems.

WORK EXPERIENCE
Senior Engineer, Acme Corp, 2019 - Present
- Led the team that rebuilt the billing platform.

EDUCATION
BSc Computer Science, State University`

func TestIsReadable(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "resume text", text: readableCV, want: true},
		{name: "empty", text: "", want: false},
		{name: "short with vocabulary", text: "Work experience and education and skills", want: false},
		{name: "99 chars", text: strings.Repeat("experience ", 9), want: false},
		{name: "binary noise", text: strings.Repeat("\x01\x02\x03\x04\x05experience education ", 20), want: false},
		{name: "long prose without vocabulary", text: strings.Repeat("The quick brown fox jumps over the lazy dog. ", 5), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReadable(tt.text))
		})
	}
}

func TestIsReadable_ShortTextAlwaysUnreadable(t *testing.T) {
	for n := 0; n < MinReadableChars; n += 7 {
		text := strings.Repeat("x", n)
		if n >= 30 {
			text = "experience education skills " + strings.Repeat("y", n-28)
		}
		assert.False(t, IsReadable(text), "length %d", n)
	}
}

func TestReadability_Report(t *testing.T) {
	report := Readability(readableCV)

	assert.True(t, report.Readable)
	assert.GreaterOrEqual(t, report.AllowedRatio, MinAllowedRatio)
	assert.GreaterOrEqual(t, report.VocabularyHits, MinVocabularyHits)
	assert.Equal(t, len([]rune(strings.TrimSpace(readableCV))), report.Characters)
}
