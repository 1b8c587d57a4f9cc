package ingestion

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxFocusedChars caps the work-experience excerpt.
const MaxFocusedChars = 8000

var (
	experienceHeaders = []string{"WORK EXPERIENCE", "PROFESSIONAL EXPERIENCE", "EXPERIENCE", "EMPLOYMENT HISTORY"}

	sectionTerminators = []string{
		"EDUCATION", "SKILLS", "CERTIFICATIONS", "PROJECTS", "AWARDS",
		"LANGUAGES", "REFERENCES", "VOLUNTEER", "PUBLICATIONS", "INTERESTS",
	}

	headerLineRegex     = headerRegex(experienceHeaders, true)
	headerAnyRegex      = headerRegex(experienceHeaders, false)
	terminatorLineRegex = headerRegex(sectionTerminators, true)
	terminatorAnyRegex  = headerRegex(sectionTerminators, false)
)

// headerRegex matches any of the names case-insensitively. Line patterns only
// match a name standing alone on its line, optionally followed by a colon.
func headerRegex(names []string, line bool) *regexp.Regexp {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(n), " ", `\s+`)
	}
	alt := "(?:" + strings.Join(quoted, "|") + ")"
	if line {
		return regexp.MustCompile(`(?im)^[ \t]*` + alt + `[ \t]*:?[ \t]*$`)
	}
	return regexp.MustCompile(`(?i)` + alt)
}

// FocusWorkExperience returns the work-experience section of the text, from the
// earliest experience header up to the next section header. Without any header
// the leading MaxFocusedChars of the text are returned.
//
// This is not a plain first match: a header standing on its own line wins over an
// earlier mention inside prose, for both the start and the end of the section.
// "ten years of experience" in a summary would otherwise start the excerpt there.
// Prose mentions are used only when no header line exists.
func FocusWorkExperience(text string) string {
	loc := firstMatch(text, headerLineRegex, headerAnyRegex)
	if loc == nil {
		return truncateChars(strings.TrimSpace(text), MaxFocusedChars)
	}

	section := text[loc[0]:]
	rest := section[loc[1]-loc[0]:]
	if end := firstMatch(rest, terminatorLineRegex, terminatorAnyRegex); end != nil {
		section = section[:loc[1]-loc[0]+end[0]]
	}
	return truncateChars(strings.TrimSpace(section), MaxFocusedChars)
}

func firstMatch(text string, preferred, fallback *regexp.Regexp) []int {
	if loc := preferred.FindStringIndex(text); loc != nil {
		return loc
	}
	return fallback.FindStringIndex(text)
}

// truncateChars cuts s to at most n runes.
func truncateChars(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
