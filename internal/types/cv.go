package types

// CVData is the structured field set returned by the AI provider for an uploaded CV.
type CVData struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []EducationEntry `json:"education"`
	Skills         []string         `json:"skills"`
	Certifications []string         `json:"certifications"`
	Languages      []string         `json:"languages,omitempty"`
}

// PersonalInfo is the contact block of CVData.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// WorkExperience is one job as returned by the AI provider.
type WorkExperience struct {
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Current     bool     `json:"current,omitempty"`
	Description string   `json:"description,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
}

// EducationEntry is one education record as returned by the AI provider.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// Normalize replaces nil lists with empty ones so responses never carry null arrays.
func (d *CVData) Normalize() {
	if d.WorkExperience == nil {
		d.WorkExperience = []WorkExperience{}
	}
	if d.Education == nil {
		d.Education = []EducationEntry{}
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if d.Certifications == nil {
		d.Certifications = []string{}
	}
}

// InputStrategy names the form in which CV content is handed to the AI provider.
type InputStrategy string

const (
	// StrategyFocused sends only the work-experience section of the extracted text.
	StrategyFocused InputStrategy = "focused_text"
	// StrategyFullText sends the (capped) full extracted text.
	StrategyFullText InputStrategy = "full_text"
	// StrategyBase64 sends a base64-encoded prefix of the raw file bytes.
	StrategyBase64 InputStrategy = "base64_snippet"
)

// AIInput is the prepared prompt material for one CV.
type AIInput struct {
	Strategy InputStrategy `json:"strategy"`
	Format   string        `json:"format,omitempty"`
	Text     string        `json:"-"`
	Focused  string        `json:"-"`
	Base64   string        `json:"-"`
	Readable bool          `json:"readable"`
}

// ExtractionJob is the transient server-side record of one CV extraction.
// It lives for a single request and is only ever serialized into debug output.
type ExtractionJob struct {
	RequestID      string        `json:"requestId"`
	FilePath       string        `json:"filePath"`
	Format         string        `json:"format"`
	Method         string        `json:"method"`
	FileSize       int           `json:"fileSize"`
	TextLength     int           `json:"textLength"`
	FocusedLength  int           `json:"focusedLength"`
	Readable       bool          `json:"readable"`
	Strategy       InputStrategy `json:"strategy"`
	Provider       string        `json:"provider"`
	Model          string        `json:"model"`
	SecondPass     bool          `json:"secondPass"`
	SecondPassUsed bool          `json:"secondPassUsed"`
	TextPreview    string        `json:"textPreview,omitempty"`
	Fields         *CVData       `json:"-"`
}
