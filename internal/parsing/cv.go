// Package parsing turns CV content into structured CVData using an AI provider.
package parsing

import (
	"context"
	"encoding/json"
	"log"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/llm"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/prompts"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/schemas"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

const promptFile = "cv.json"

// Outcome is the result of a CV extraction, including which passes ran.
type Outcome struct {
	Data               *types.CVData
	Strategy           types.InputStrategy
	SecondPass         bool
	SecondPassUsed     bool
	SecondPassStrategy types.InputStrategy
}

// Extractor runs the CV extraction prompts against one provider.
type Extractor struct {
	client llm.Client
}

// NewExtractor creates an extractor backed by client
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract asks the provider for the full CV structure. When the reply has no
// work experience, one narrower request for work experience alone is made and
// its result merged in if it found any jobs. A failing follow-up is logged and
// does not fail the extraction.
func (e *Extractor) Extract(ctx context.Context, in types.AIInput) (*Outcome, error) {
	system := prompts.MustGet(promptFile, "system-extract-cv")
	user, err := buildUserPrompt(in)
	if err != nil {
		return nil, &ParseError{Message: "failed to build prompt", Cause: err}
	}

	reply, err := e.client.Chat(ctx, system, user)
	if err != nil {
		return nil, &APICallError{Message: "failed to extract CV data", Cause: err}
	}

	data, err := parseCVData(reply)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Data: data, Strategy: in.Strategy}
	if len(data.WorkExperience) == 0 {
		e.secondPass(ctx, in, outcome)
	}

	return outcome, nil
}

func (e *Extractor) secondPass(ctx context.Context, in types.AIInput, outcome *Outcome) {
	content, strategy := in.Focused, types.StrategyFocused
	if content == "" {
		content, strategy = in.Base64, types.StrategyBase64
	}
	if content == "" {
		return
	}

	outcome.SecondPass = true
	outcome.SecondPassStrategy = strategy

	user := prompts.Format(prompts.MustGet(promptFile, "user-work-experience"), map[string]string{
		"Source":  string(strategy),
		"Content": content,
	})
	reply, err := e.client.Chat(ctx, prompts.MustGet(promptFile, "system-work-experience"), user)
	if err != nil {
		log.Printf("[cv] work experience pass failed: %v", err)
		return
	}

	jobs, err := parseWorkExperience(reply)
	if err != nil {
		log.Printf("[cv] work experience pass returned unusable data: %v", err)
		return
	}
	if len(jobs) == 0 {
		log.Printf("[cv] work experience pass found no jobs")
		return
	}

	outcome.Data.WorkExperience = jobs
	outcome.SecondPassUsed = true
	log.Printf("[cv] work experience pass recovered %d jobs", len(jobs))
}

func buildUserPrompt(in types.AIInput) (string, error) {
	if in.Strategy == types.StrategyBase64 {
		format := in.Format
		if format == "" {
			format = "document"
		}
		return prompts.Render(promptFile, "user-extract-cv-base64", map[string]string{
			"Format": format,
			"Base64": in.Base64,
		})
	}

	text := in.Text
	if in.Strategy == types.StrategyFocused {
		text = in.Focused
	}
	return prompts.Render(promptFile, "user-extract-cv-text", map[string]string{"CVText": text})
}

// parseCVData unwraps, validates and decodes a provider reply.
func parseCVData(reply string) (*types.CVData, error) {
	payload := llm.CleanJSONBlock(reply)
	if err := schemas.ValidateCVData(payload); err != nil {
		return nil, &ParseError{Message: "reply does not match CV schema", Cause: err}
	}

	var data types.CVData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}

	normalizeCVData(&data)
	return &data, nil
}

func parseWorkExperience(reply string) ([]types.WorkExperience, error) {
	data, err := parseCVData(reply)
	if err != nil {
		return nil, err
	}
	return data.WorkExperience, nil
}
