package profile

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

const (
	fieldSelector     = "[data-profile-field]"
	jobSelector       = "[data-profile-job]"
	educationSelector = "[data-profile-education]"
	dataScriptSel     = `script#profile-data[type="application/json"]`
)

// listFields always decode as lists, even with a single element.
var listFields = map[string]bool{
	"bullets":        true,
	"skills":         true,
	"certifications": true,
	"languages":      true,
}

// ParsePage builds a profile record from a rendered profile page. An embedded
// profile-data JSON payload is applied first; annotated elements override it.
func ParsePage(html string) (types.Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &PageError{Message: "failed to parse HTML", Cause: err}
	}

	p := types.Profile{}
	if script := doc.Find(dataScriptSel).First(); script.Length() > 0 {
		payload := strings.TrimSpace(script.Text())
		if payload != "" {
			if err := json.Unmarshal([]byte(payload), &p); err != nil {
				return nil, &PageError{Message: "invalid profile-data payload", Cause: err}
			}
		}
	}
	if p == nil {
		p = types.Profile{}
	}

	fields := types.Profile{}
	doc.Find(fieldSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(jobSelector + "," + educationSelector).Length() > 0 {
			return
		}
		if s.Is(jobSelector) || s.Is(educationSelector) {
			return
		}
		addField(fields, s)
	})
	collapseFields(fields)
	for name, v := range fields {
		p[name] = v
	}

	if jobs := collectRecords(doc, jobSelector); len(jobs) > 0 {
		p["workExperience"] = jobs
	}
	if edu := collectRecords(doc, educationSelector); len(edu) > 0 {
		p["education"] = edu
	}

	if len(p) == 0 {
		return nil, &PageError{Message: "no profile fields found on page"}
	}
	return p, nil
}

func collectRecords(doc *goquery.Document, selector string) []any {
	var out []any
	doc.Find(selector).Each(func(_ int, container *goquery.Selection) {
		rec := types.Profile{}
		container.Find(fieldSelector).Each(func(_ int, s *goquery.Selection) {
			addField(rec, s)
		})
		collapseFields(rec)
		if len(rec) > 0 {
			out = append(out, map[string]any(rec))
		}
	})
	return out
}

// addField appends the element's values under its field name as a []any.
// List containers contribute one value per <li>.
func addField(p types.Profile, s *goquery.Selection) {
	name := strings.TrimSpace(s.AttrOr("data-profile-field", ""))
	if name == "" {
		return
	}

	var values []any
	if items := s.Find("li"); items.Length() > 0 {
		items.Each(func(_ int, li *goquery.Selection) {
			if text := elementText(li); text != "" {
				values = append(values, text)
			}
		})
	} else if text := elementValue(s); text != "" {
		values = append(values, text)
	}

	existing, _ := p[name].([]any)
	p[name] = append(existing, values...)
}

// collapseFields turns single-valued scalar fields back into strings.
func collapseFields(p types.Profile) {
	for name, v := range p {
		list, ok := v.([]any)
		if !ok {
			continue
		}
		switch {
		case len(list) == 0:
			delete(p, name)
		case len(list) == 1 && !listFields[name]:
			p[name] = list[0]
		}
	}
}

func elementValue(s *goquery.Selection) string {
	if v, ok := s.Attr("content"); ok {
		return strings.TrimSpace(v)
	}
	if goquery.NodeName(s) == "a" {
		if href, ok := s.Attr("href"); ok && strings.TrimSpace(s.Text()) == "" {
			return strings.TrimSpace(href)
		}
	}
	if goquery.NodeName(s) == "input" {
		return strings.TrimSpace(s.AttrOr("value", ""))
	}
	return elementText(s)
}

func elementText(s *goquery.Selection) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s.Text()), " ")
}
