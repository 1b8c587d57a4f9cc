package profile

import (
	"strings"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

// RenderATS renders the document as plain text blocks separated by blank lines.
// Bullets carry no glyph and education omits dates so that ATS parsers read every
// line as content.
func RenderATS(doc *types.ParsedResume) string {
	if doc == nil {
		return ""
	}

	var blocks []string
	add := func(lines ...string) {
		kept := make([]string, 0, len(lines))
		for _, l := range lines {
			if strings.TrimSpace(l) != "" {
				kept = append(kept, l)
			}
		}
		if len(kept) > 0 {
			blocks = append(blocks, strings.Join(kept, "\n"))
		}
	}

	c := doc.Contact
	add(c.Name)
	add(joinNonEmpty(" | ", c.Email, c.Phone, c.Location))
	add(joinNonEmpty(" | ", c.LinkedIn, c.GitHub, c.Website))

	if doc.Summary != "" {
		add("SUMMARY", doc.Summary)
	}

	if len(doc.Experience) > 0 {
		lines := []string{"EXPERIENCE"}
		for i, job := range doc.Experience {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, job.Title)
			lines = append(lines, joinNonEmpty(" | ", job.Company, job.Location, job.Dates))
			lines = append(lines, job.Bullets...)
		}
		blocks = append(blocks, renderSection(lines))
	}

	if len(doc.Education) > 0 {
		lines := []string{"EDUCATION"}
		for _, edu := range doc.Education {
			degree := joinNonEmpty(" in ", edu.Degree, edu.Field)
			lines = append(lines, joinNonEmpty(", ", degree, edu.School))
		}
		add(lines...)
	}

	if doc.Skills != "" {
		add("SKILLS", doc.Skills)
	}
	if doc.Certifications != "" {
		add("CERTIFICATIONS", doc.Certifications)
	}

	return strings.Join(blocks, "\n\n")
}

// renderSection joins lines, keeping single blank separators between entries.
func renderSection(lines []string) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			continue
		}
		out = append(out, l)
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
