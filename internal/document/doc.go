package document

import (
	"regexp"
	"strings"
)

var (
	horizontalSpaceRegex = regexp.MustCompile(`[ \t]+`)
	blankLinesRegex      = regexp.MustCompile(`\n\s*\n+`)
)

// extractDOC handles legacy Word files without structural parsing.
// NUL bytes are dropped so that UTF-16 text survives as ASCII.
func extractDOC(data []byte) string {
	return stripBinary(data)
}

// stripBinary keeps printable ASCII and line breaks; every other byte becomes a space.
func stripBinary(data []byte) string {
	out := make([]byte, 0, len(data))
	for i, c := range data {
		switch {
		case c == 0:
			continue
		case c == '\n' || c == '\t':
			out = append(out, c)
		case c == '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				continue
			}
			out = append(out, '\n')
		case c >= 0x20 && c < 0x7F:
			out = append(out, c)
		default:
			out = append(out, ' ')
		}
	}

	text := horizontalSpaceRegex.ReplaceAllString(string(out), " ")
	text = blankLinesRegex.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
