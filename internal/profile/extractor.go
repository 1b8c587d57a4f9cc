// Package profile builds normalized résumé documents from profile records supplied by the browser extension.
package profile

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

// ParserName identifies this extractor in document metadata.
const ParserName = "profile-only"

// Format selects the output representation of Extract.
type Format string

const (
	// FormatJSON returns the structured document.
	FormatJSON Format = "json"
	// FormatText returns the ATS plain-text rendering.
	FormatText Format = "text"
)

// Options controls a single extraction.
type Options struct {
	Format Format
	Source string
	// Now overrides the metadata timestamp.
	Now func() time.Time
}

// Result is the outcome of Extract. It never carries a Go error;
// failures are reported through Success and Error.
type Result struct {
	Success bool                `json:"success"`
	Data    *types.ParsedResume `json:"data,omitempty"`
	Text    string              `json:"text,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// Alias keys for profile fields.
var (
	firstNameKeys  = []string{"firstName", "first_name", "firstname", "givenName", "given_name"}
	lastNameKeys   = []string{"lastName", "last_name", "lastname", "familyName", "family_name"}
	fullNameKeys   = []string{"fullName", "full_name", "name"}
	emailKeys      = []string{"email", "emailAddress", "email_address"}
	phoneKeys      = []string{"phone", "phoneNumber", "phone_number", "mobile"}
	locationKeys   = []string{"location", "city", "address"}
	linkedInKeys   = []string{"linkedin", "linkedinUrl", "linkedin_url", "linkedIn"}
	websiteKeys    = []string{"website", "portfolio", "portfolioUrl", "portfolio_url"}
	githubKeys     = []string{"github", "githubUrl", "github_url"}
	summaryKeys    = []string{"summary", "professionalSummary", "professional_summary", "about", "bio"}
	experienceKeys = []string{"workExperience", "work_experience", "experience", "jobs"}
	educationKeys  = []string{"education", "educations"}
	skillsKeys     = []string{"skills", "technicalSkills", "technical_skills"}
	certKeys       = []string{"certifications", "certificates"}

	companyKeys   = []string{"company", "companyName", "company_name", "employer", "organization"}
	titleKeys     = []string{"title", "jobTitle", "job_title", "position", "role"}
	datesKeys     = []string{"dates", "duration", "period"}
	startKeys     = []string{"startDate", "start_date", "start", "from"}
	endKeys       = []string{"endDate", "end_date", "end", "to"}
	currentKeys   = []string{"current", "isCurrent", "is_current"}
	bulletKeys    = []string{"bullets", "achievements", "responsibilities", "highlights"}
	descKeys      = []string{"description", "summary"}
	schoolKeys    = []string{"school", "institution", "university"}
	degreeKeys    = []string{"degree", "qualification"}
	fieldKeys     = []string{"field", "fieldOfStudy", "field_of_study", "major"}
	gradDateKeys  = []string{"graduationDate", "graduation_date", "graduationYear", "graduation_year"}
	certNameKeys  = []string{"name", "title"}
	skillNameKeys = []string{"name", "skill"}
)

// Extract converts a profile record into a résumé document. Work history is taken
// exclusively from the profile's own work-experience list.
func Extract(p types.Profile, opts Options) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[profile] extraction failed: %v", r)
			result = Result{Success: false, Error: fmt.Sprintf("profile extraction failed: %v", r)}
		}
	}()

	if p == nil {
		return Result{Success: false, Error: "profile is required"}
	}

	doc := Build(p, opts)
	log.Printf("[profile] extracted %q: %d jobs, %d education entries (source=%s)",
		doc.Contact.Name, len(doc.Experience), len(doc.Education), doc.Metadata.Source)

	if opts.Format == FormatText {
		return Result{Success: true, Text: RenderATS(doc)}
	}
	return Result{Success: true, Data: doc}
}

// Build assembles the normalized document without recovering from panics.
func Build(p types.Profile, opts Options) *types.ParsedResume {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	source := opts.Source
	if source == "" {
		source = "profile"
	}

	return &types.ParsedResume{
		Contact:        buildContact(p),
		Summary:        p.String(summaryKeys...),
		Experience:     buildExperience(p),
		Education:      buildEducation(p),
		Skills:         joinList(p, skillsKeys, skillNameKeys),
		Certifications: joinList(p, certKeys, certNameKeys),
		Metadata: types.Metadata{
			ParsedAt: now().UTC(),
			Parser:   ParserName,
			Source:   source,
		},
	}
}

func buildContact(p types.Profile) types.Contact {
	name := strings.TrimSpace(p.String(firstNameKeys...) + " " + p.String(lastNameKeys...))
	if name == "" {
		name = p.String(fullNameKeys...)
	}

	return types.Contact{
		Name:     name,
		Email:    p.String(emailKeys...),
		Phone:    FormatPhone(p.String(phoneKeys...)),
		Location: CleanLocation(p.String(locationKeys...)),
		LinkedIn: p.String(linkedInKeys...),
		Website:  p.String(websiteKeys...),
		GitHub:   p.String(githubKeys...),
	}
}

// buildExperience reads the first work-experience key present in the profile.
// An empty list there yields no jobs; later aliases are not consulted.
func buildExperience(p types.Profile) []types.Job {
	records := p.FirstRecords(experienceKeys...)
	jobs := make([]types.Job, 0, len(records))
	for _, rec := range records {
		job := types.Job{
			Company:  rec.String(companyKeys...),
			Title:    rec.String(titleKeys...),
			Dates:    jobDates(rec),
			Location: CleanLocation(rec.String(locationKeys...)),
			Bullets:  jobBullets(rec),
		}
		if job.Company == "" && job.Title == "" && len(job.Bullets) == 0 {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs
}

func jobDates(rec types.Profile) string {
	if dates := rec.String(datesKeys...); dates != "" {
		return NormalizeDates(dates)
	}

	start := rec.String(startKeys...)
	end := rec.String(endKeys...)
	if end == "" && (isTrue(rec.String(currentKeys...)) || start != "") {
		end = "Present"
	}
	switch {
	case start == "" && end == "Present":
		return ""
	case start == "":
		return NormalizeDates(end)
	}
	return NormalizeDates(start + " - " + end)
}

func jobBullets(rec types.Profile) []string {
	raw := rec.Strings(bulletKeys...)
	if len(raw) == 0 {
		if desc := rec.String(descKeys...); desc != "" {
			raw = strings.Split(strings.ReplaceAll(desc, "\r\n", "\n"), "\n")
		}
	}

	bullets := make([]string, 0, len(raw))
	for _, b := range raw {
		if cleaned := CleanBullet(b); cleaned != "" {
			bullets = append(bullets, cleaned)
		}
	}
	return bullets
}

func buildEducation(p types.Profile) []types.Education {
	records := p.Records(educationKeys...)
	out := make([]types.Education, 0, len(records))
	for _, rec := range records {
		entry := types.Education{
			School: rec.String(schoolKeys...),
			Degree: rec.String(degreeKeys...),
			Field:  rec.String(fieldKeys...),
			Dates:  educationDates(rec),
		}
		if entry.School == "" && entry.Degree == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func educationDates(rec types.Profile) string {
	if grad := rec.String(gradDateKeys...); grad != "" {
		return NormalizeDates(grad)
	}
	return jobDates(rec)
}

// joinList renders a list field as a comma-separated string. Plain strings are
// taken verbatim and object entries contribute their name.
func joinList(p types.Profile, keys, nameKeys []string) string {
	list := p.List(keys...)
	if len(list) == 0 {
		return p.String(keys...)
	}

	names := make([]string, 0, len(list))
	for _, item := range list {
		var s string
		switch t := item.(type) {
		case map[string]any:
			s = types.Profile(t).String(nameKeys...)
		case string:
			s = strings.TrimSpace(t)
		default:
			s = strings.TrimSpace(fmt.Sprint(t))
		}
		if s != "" {
			names = append(names, s)
		}
	}
	return strings.Join(names, ", ")
}

func isTrue(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true
	}
	return false
}
