// Package ingestion cleans extracted CV text and decides how it is handed to the AI extractor.
package ingestion

import (
	"strings"
	"unicode"
)

const (
	// MinReadableChars is the length below which text is never considered readable.
	MinReadableChars = 100
	// MinAllowedRatio is the minimum share of letters, digits, whitespace and common punctuation.
	MinAllowedRatio = 0.85
	// MinVocabularyHits is the number of distinct résumé terms readable text must contain.
	MinVocabularyHits = 2
)

const allowedPunctuation = ".,;:!?'\"()[]{}-–—_/\\@#&%+*•·|<>=$€£~`’‘“”…"

var resumeVocabulary = []string{
	"experience", "education", "skills", "work", "employment", "professional",
	"summary", "university", "college", "degree", "bachelor", "master",
	"engineer", "developer", "manager", "analyst", "project", "team",
	"responsibilities", "certification", "company", "email", "phone", "linkedin",
}

// ReadabilityReport explains the readability verdict for a piece of text.
type ReadabilityReport struct {
	Characters     int     `json:"characters"`
	AllowedRatio   float64 `json:"allowedRatio"`
	VocabularyHits int     `json:"vocabularyHits"`
	Readable       bool    `json:"readable"`
}

// IsReadable reports whether extracted text is good enough to send as text.
func IsReadable(text string) bool {
	return Readability(text).Readable
}

// Readability scores text by character composition and résumé vocabulary.
func Readability(text string) ReadabilityReport {
	trimmed := strings.TrimSpace(text)
	report := ReadabilityReport{Characters: len([]rune(trimmed))}
	if report.Characters < MinReadableChars {
		return report
	}

	allowed := 0
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
			strings.ContainsRune(allowedPunctuation, r) {
			allowed++
		}
	}
	report.AllowedRatio = float64(allowed) / float64(report.Characters)

	lower := strings.ToLower(trimmed)
	for _, word := range resumeVocabulary {
		if strings.Contains(lower, word) {
			report.VocabularyHits++
		}
	}

	report.Readable = report.AllowedRatio >= MinAllowedRatio && report.VocabularyHits >= MinVocabularyHits
	return report
}
