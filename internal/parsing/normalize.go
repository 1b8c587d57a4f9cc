package parsing

import (
	"strings"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
}

// NormalizeSkillName maps known variants to their canonical form and trims the rest.
// Unknown names keep their original casing.
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if canonical, ok := skillNormalizations[strings.ToLower(normalized)]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSkills canonicalizes and deduplicates a skill list, keeping first-seen order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		name := NormalizeSkillName(s)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

// normalizeCVData trims every field, fills list fields with empty slices and
// marks open-ended roles.
func normalizeCVData(d *types.CVData) {
	p := &d.PersonalInfo
	for _, f := range []*string{&p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Location, &p.LinkedIn, &p.GitHub, &p.Portfolio} {
		*f = strings.TrimSpace(*f)
	}
	d.Summary = strings.TrimSpace(d.Summary)

	jobs := make([]types.WorkExperience, 0, len(d.WorkExperience))
	for _, job := range d.WorkExperience {
		normalizeJob(&job)
		if job.Company == "" && job.Title == "" && len(job.Bullets) == 0 && job.Description == "" {
			continue
		}
		jobs = append(jobs, job)
	}
	d.WorkExperience = jobs

	d.Skills = NormalizeSkills(d.Skills)
	d.Certifications = dedupe(d.Certifications)
	d.Languages = dedupe(d.Languages)
	d.Normalize()
}

func normalizeJob(job *types.WorkExperience) {
	job.Company = strings.TrimSpace(job.Company)
	job.Title = strings.TrimSpace(job.Title)
	job.Location = strings.TrimSpace(job.Location)
	job.StartDate = strings.TrimSpace(job.StartDate)
	job.EndDate = strings.TrimSpace(job.EndDate)
	job.Description = strings.TrimSpace(job.Description)

	if strings.EqualFold(job.EndDate, "present") || strings.EqualFold(job.EndDate, "current") {
		job.Current = true
		job.EndDate = "Present"
	}
	if job.Current && job.EndDate == "" {
		job.EndDate = "Present"
	}

	bullets := make([]string, 0, len(job.Bullets))
	for _, b := range job.Bullets {
		if b = strings.TrimSpace(b); b != "" {
			bullets = append(bullets, b)
		}
	}
	job.Bullets = bullets
}

func dedupe(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
