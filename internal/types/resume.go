package types

import (
	"encoding/json"
	"time"
)

// ParsedResume is the normalized résumé document produced by the profile extractor.
type ParsedResume struct {
	Contact        Contact     `json:"contact"`
	Summary        string      `json:"summary"`
	Experience     []Job       `json:"experience"`
	Education      []Education `json:"education"`
	Skills         string      `json:"skills"`
	Certifications string      `json:"certifications"`
	Metadata       Metadata    `json:"metadata"`
}

// Contact holds the header block of the résumé.
type Contact struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Job represents one work-experience entry.
type Job struct {
	Company  string   `json:"company"`
	Title    string   `json:"title"`
	Dates    string   `json:"dates,omitempty"`
	Location string   `json:"location,omitempty"`
	Bullets  []string `json:"bullets"`
}

// Education represents one education entry.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree,omitempty"`
	Field  string `json:"field,omitempty"`
	Dates  string `json:"dates,omitempty"`
}

// Metadata stamps a parsed document with its provenance.
type Metadata struct {
	ParsedAt time.Time `json:"parsedAt"`
	Parser   string    `json:"parser"`
	Source   string    `json:"source"`
}

// MarshalJSON keeps list fields as [] instead of null.
func (r ParsedResume) MarshalJSON() ([]byte, error) {
	type alias ParsedResume
	out := alias(r)
	jobs := make([]Job, len(r.Experience))
	copy(jobs, r.Experience)
	for i := range jobs {
		if jobs[i].Bullets == nil {
			jobs[i].Bullets = []string{}
		}
	}
	out.Experience = jobs
	if out.Education == nil {
		out.Education = []Education{}
	}
	return json.Marshal(out)
}
