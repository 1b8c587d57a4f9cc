package profile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

func sampleProfile() types.Profile {
	return types.Profile{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"phone":      "+12345678901",
		"location":   "London, Remote",
		"linkedin":   "https://linkedin.com/in/ada",
		"summary":    "Engineer.",
		"work_experience": []any{
			map[string]any{
				"company":   "Analytical Engines",
				"title":     "Programmer",
				"startDate": "1842",
				"endDate":   "1843",
				"location":  "Remote (UK)",
				"bullets":   []any{"- Wrote the first program", "• Published notes"},
			},
		},
		"education": []any{
			map[string]any{"school": "Home", "degree": "Mathematics", "startDate": "1830", "endDate": "1835"},
		},
		"skills":         []any{"Mathematics", "Poetry"},
		"certifications": "None",
	}
}

func TestExtract_StructuredDocument(t *testing.T) {
	result := Extract(sampleProfile(), Options{Now: fixedNow, Source: "extension"})

	require.True(t, result.Success)
	require.NotNil(t, result.Data)
	doc := result.Data

	assert.Equal(t, "Ada Lovelace", doc.Contact.Name)
	assert.Equal(t, "+1 2345678901", doc.Contact.Phone)
	assert.Equal(t, "London", doc.Contact.Location)
	require.Len(t, doc.Experience, 1)
	job := doc.Experience[0]
	assert.Equal(t, "Analytical Engines", job.Company)
	assert.Equal(t, "1842 – 1843", job.Dates)
	assert.Equal(t, "UK", job.Location)
	assert.Equal(t, []string{"Wrote the first program", "Published notes"}, job.Bullets)
	require.Len(t, doc.Education, 1)
	assert.Equal(t, "1830 – 1835", doc.Education[0].Dates)
	assert.Equal(t, "Mathematics, Poetry", doc.Skills)
	assert.Equal(t, "None", doc.Certifications)
	assert.Equal(t, ParserName, doc.Metadata.Parser)
	assert.Equal(t, "extension", doc.Metadata.Source)
	assert.Equal(t, fixedNow(), doc.Metadata.ParsedAt)
}

func TestExtract_NoWorkExperienceNeverSubstituted(t *testing.T) {
	tests := []struct {
		name    string
		profile types.Profile
	}{
		{
			name: "missing list",
			profile: types.Profile{
				"firstName": "Grace",
				"summary":   "Worked at Navy as Rear Admiral 1943-1986",
				"projects":  []any{map[string]any{"company": "COBOL", "title": "Designer"}},
			},
		},
		{
			name:    "empty list",
			profile: types.Profile{"firstName": "Grace", "workExperience": []any{}},
		},
		{
			name:    "empty json string",
			profile: types.Profile{"firstName": "Grace", "work_experience": "[]"},
		},
		{
			name: "empty list with jobs under a later alias",
			profile: types.Profile{
				"firstName":      "Ada",
				"workExperience": []any{},
				"jobs":           []any{map[string]any{"company": "Scraped Co", "title": "Dev"}},
			},
		},
		{
			name: "empty json string with experience under a later alias",
			profile: types.Profile{
				"firstName":       "Ada",
				"work_experience": "[]",
				"experience":      []any{map[string]any{"company": "Scraped Co", "title": "Dev"}},
			},
		},
		{
			name:    "experience given as prose",
			profile: types.Profile{"firstName": "Grace", "experience": "10 years at the Navy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Extract(tt.profile, Options{Now: fixedNow})
			require.True(t, result.Success)
			assert.Empty(t, result.Data.Experience)

			data, err := json.Marshal(result.Data)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"experience":[]`)
		})
	}
}

func TestExtract_JobDates(t *testing.T) {
	tests := []struct {
		name string
		job  map[string]any
		want string
	}{
		{name: "explicit dates", job: map[string]any{"company": "A", "dates": "2019--2021"}, want: "2019 – 2021"},
		{name: "open ended", job: map[string]any{"company": "A", "startDate": "2022"}, want: "2022 – Present"},
		{name: "current flag", job: map[string]any{"company": "A", "start_date": "2020", "current": true}, want: "2020 – Present"},
		{name: "none", job: map[string]any{"company": "A"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := types.Profile{"workExperience": []any{tt.job}}
			doc := Build(p, Options{Now: fixedNow})
			require.Len(t, doc.Experience, 1)
			assert.Equal(t, tt.want, doc.Experience[0].Dates)
		})
	}
}

func TestExtract_DescriptionBullets(t *testing.T) {
	p := types.Profile{"workExperience": []any{map[string]any{
		"company":     "Acme",
		"description": "- Built things\r\n\n* Broke things",
	}}}

	doc := Build(p, Options{})
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, []string{"Built things", "Broke things"}, doc.Experience[0].Bullets)
}

func TestExtract_FullNameFallback(t *testing.T) {
	doc := Build(types.Profile{"full_name": "Alan Turing"}, Options{})
	assert.Equal(t, "Alan Turing", doc.Contact.Name)
}

func TestExtract_NilProfile(t *testing.T) {
	result := Extract(nil, Options{})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestExtract_PanicRecovered(t *testing.T) {
	result := Extract(types.Profile{"firstName": "X"}, Options{Now: func() time.Time { panic("clock broke") }})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "clock broke")
}

func TestExtract_TextFormat(t *testing.T) {
	result := Extract(sampleProfile(), Options{Format: FormatText, Now: fixedNow})
	require.True(t, result.Success)
	assert.Nil(t, result.Data)
	assert.Contains(t, result.Text, "Ada Lovelace")
	assert.Contains(t, result.Text, "EXPERIENCE")
}
