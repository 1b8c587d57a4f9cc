package ingestion

import (
	"encoding/base64"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

const (
	// MaxFullTextChars caps the text sent on the first pass.
	MaxFullTextChars = 15000
	// MaxSnippetBytes is the raw file prefix encoded when the text is unreadable.
	MaxSnippetBytes = 12000
)

// PrepareInput chooses how CV content is sent to the AI provider. Readable text
// is sent as text with its work-experience excerpt precomputed; anything else
// falls back to a base64 prefix of the raw file.
func PrepareInput(text string, raw []byte) types.AIInput {
	if IsReadable(text) {
		return types.AIInput{
			Strategy: types.StrategyFullText,
			Text:     truncateChars(text, MaxFullTextChars),
			Focused:  FocusWorkExperience(text),
			Readable: true,
		}
	}

	return types.AIInput{
		Strategy: types.StrategyBase64,
		Base64:   Base64Snippet(raw),
	}
}

// Base64Snippet encodes the first MaxSnippetBytes of raw.
func Base64Snippet(raw []byte) string {
	if len(raw) > MaxSnippetBytes {
		raw = raw[:MaxSnippetBytes]
	}
	return base64.StdEncoding.EncodeToString(raw)
}
