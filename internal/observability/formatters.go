// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/ingestion"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "%-10s%s\n", label+":", value)
}

// PrintResume outputs a summary of a résumé document built from a profile.
func (p *Printer) PrintResume(doc *types.ParsedResume) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	c := doc.Contact
	writeField(&sb, "Name", c.Name)
	writeField(&sb, "Email", c.Email)
	writeField(&sb, "Phone", c.Phone)
	writeField(&sb, "Location", c.Location)
	writeField(&sb, "Source", doc.Metadata.Source)
	sb.WriteString("\n")

	if len(doc.Experience) == 0 {
		sb.WriteString("Experience: none\n")
	} else {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(doc.Experience)))
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			job := doc.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", joinNonEmpty(" @ ", job.Title, job.Company)))
			if job.Dates != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", job.Dates))
			}
			sb.WriteString(fmt.Sprintf(" [%d bullets]\n", len(job.Bullets)))
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
	}

	if len(doc.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education: %d entries\n", len(doc.Education)))
	}
	if doc.Skills != "" {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", doc.Skills))
	}

	p.printBox("PROFILE RÉSUMÉ", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCVData outputs the fields extracted from a CV.
func (p *Printer) PrintCVData(data *types.CVData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	info := data.PersonalInfo
	writeField(&sb, "Name", strings.TrimSpace(info.FirstName+" "+info.LastName))
	writeField(&sb, "Email", info.Email)
	writeField(&sb, "Phone", info.Phone)
	writeField(&sb, "Location", info.Location)
	sb.WriteString("\n")

	if len(data.WorkExperience) == 0 {
		sb.WriteString("⚠ No work experience extracted\n")
	} else {
		sb.WriteString(fmt.Sprintf("Work Experience (%d):\n", len(data.WorkExperience)))
		count := min(len(data.WorkExperience), maxItemsToShow)
		for i := 0; i < count; i++ {
			job := data.WorkExperience[i]
			sb.WriteString(fmt.Sprintf("  • %s", joinNonEmpty(" @ ", job.Title, job.Company)))
			if dates := joinNonEmpty(" – ", job.StartDate, job.EndDate); dates != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", dates))
			}
			sb.WriteString("\n")
		}
		if len(data.WorkExperience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.WorkExperience)-maxItemsToShow))
		}
	}

	if len(data.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education: %d entries\n", len(data.Education)))
	}
	if len(data.Skills) > 0 {
		count := min(len(data.Skills), 8)
		skills := strings.Join(data.Skills[:count], ", ")
		if len(data.Skills) > count {
			skills += fmt.Sprintf(" (+%d)", len(data.Skills)-count)
		}
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", skills))
	}

	p.printBox("EXTRACTED CV DATA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction outputs how a CV was read and which provider parsed it.
func (p *Printer) PrintExtraction(job *types.ExtractionJob) {
	if job == nil {
		return
	}

	var sb strings.Builder
	writeField(&sb, "Request", job.RequestID)
	writeField(&sb, "File", job.FilePath)
	sb.WriteString(fmt.Sprintf("%-10s%s via %s (%d bytes)\n", "Format:", job.Format, job.Method, job.FileSize))
	sb.WriteString(fmt.Sprintf("%-10s%d chars, focused %d, %s\n", "Text:", job.TextLength, job.FocusedLength, readableLabel(job.Readable)))
	sb.WriteString(fmt.Sprintf("%-10s%s\n", "Input:", job.Strategy))
	sb.WriteString(fmt.Sprintf("%-10s%s (%s)\n", "Provider:", job.Provider, job.Model))

	switch {
	case job.SecondPassUsed:
		sb.WriteString("✓ work experience recovered by second pass\n")
	case job.SecondPass:
		sb.WriteString("⚠ second pass ran without finding work experience\n")
	}

	p.printBox("CV EXTRACTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIngestion outputs one line per extracted file in batch mode.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIngestion(meta *ingestion.Metadata) {
	if meta == nil {
		return
	}
	line := fmt.Sprintf("%s: %s via %s, %d chars, %s", meta.Filename, meta.Format, meta.Method, meta.Characters, readableLabel(meta.Readable))
	if meta.Warning != "" {
		line += " ⚠ " + meta.Warning
	}
	fmt.Fprintln(p.out, line)
}

func readableLabel(readable bool) string {
	if readable {
		return "readable"
	}
	return "unreadable"
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
