// Package pipeline runs the CV extraction flow from stored file to structured data.
package pipeline

import (
	"context"
	"log"
	"path"

	"github.com/google/uuid"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/ingestion"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/llm"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/parsing"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/storage"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/types"
)

// previewChars is the length of the text preview included in debug output.
const previewChars = 500

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// SettingsSource looks up a user's AI provider settings.
// A nil result means the user has none.
type SettingsSource interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*types.UserSettings, error)
}

// ClientFactory builds a chat client for the selected provider.
type ClientFactory func(sel *llm.Selection, config *llm.Config) (llm.Client, error)

// DefaultClientFactory returns HTTP chat clients.
func DefaultClientFactory(sel *llm.Selection, config *llm.Config) (llm.Client, error) {
	client, err := llm.NewClient(sel, config)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Pipeline holds the collaborators of a CV extraction.
type Pipeline struct {
	Store        storage.Store
	Settings     SettingsSource
	LLMConfig    *llm.Config
	FallbackKeys llm.Keys
	NewClient    ClientFactory
	OnProgress   ProgressCallback
}

// Result is the outcome of a successful run.
type Result struct {
	Data *types.CVData
	Job  *types.ExtractionJob
}

// Run downloads the CV at req.CVFilePath, extracts its text and asks the
// user's AI provider for the structured fields. Stages run one after another.
func (p *Pipeline) Run(ctx context.Context, userID uuid.UUID, req types.ExtractCVRequest) (*Result, error) {
	job := &types.ExtractionJob{
		RequestID: uuid.New().String(),
		FilePath:  req.CVFilePath,
	}

	raw, err := p.Store.Download(ctx, req.CVFilePath)
	if err != nil {
		log.Printf("[cv] %s download failed: %v", job.RequestID, err)
		return nil, &StageError{Stage: StageDownload, Message: "Failed to download CV", Cause: err}
	}
	job.FileSize = len(raw)
	p.emit(job, StageDownload, "downloaded CV")

	ingested := ingestion.IngestBytes(path.Base(req.CVFilePath), raw)
	job.Format = ingested.Metadata.Format
	job.Method = ingested.Metadata.Method
	job.TextLength = ingested.Metadata.Characters

	in := ingestion.PrepareInput(ingested.Text, raw)
	in.Format = job.Format
	job.Readable = in.Readable
	job.Strategy = in.Strategy
	job.FocusedLength = len([]rune(in.Focused))
	if req.Debug {
		job.TextPreview = preview(ingested.Text)
	}
	log.Printf("[cv] %s extracted %d chars (format=%s method=%s readable=%t strategy=%s)",
		job.RequestID, job.TextLength, job.Format, job.Method, job.Readable, job.Strategy)
	p.emit(job, StageIngest, "extracted text")

	settings := p.lookupSettings(ctx, job, userID)

	sel, err := llm.SelectProvider(settings, p.FallbackKeys, p.LLMConfig)
	if err != nil {
		return nil, &StageError{Stage: StageProvider, Cause: &parsing.ConfigError{Cause: err}}
	}

	factory := p.NewClient
	if factory == nil {
		factory = DefaultClientFactory
	}
	client, err := factory(sel, p.LLMConfig)
	if err != nil {
		return nil, &StageError{Stage: StageProvider, Cause: &parsing.ConfigError{Message: "failed to create AI client", Cause: err}}
	}
	job.Provider = string(client.Provider())
	job.Model = client.Model()
	p.emit(job, StageProvider, "using "+job.Provider+" ("+job.Model+")")

	outcome, err := parsing.NewExtractor(client).Extract(ctx, in)
	if err != nil {
		log.Printf("[cv] %s AI extraction failed: %v", job.RequestID, err)
		return nil, &StageError{Stage: StageExtract, Cause: err}
	}
	job.SecondPass = outcome.SecondPass
	job.SecondPassUsed = outcome.SecondPassUsed
	if outcome.SecondPassUsed {
		job.Strategy = outcome.SecondPassStrategy
	}
	job.Fields = outcome.Data
	log.Printf("[cv] %s extracted %d jobs, %d education entries, %d skills",
		job.RequestID, len(outcome.Data.WorkExperience), len(outcome.Data.Education), len(outcome.Data.Skills))
	p.emit(job, StageExtract, "parsed CV")

	return &Result{Data: outcome.Data, Job: job}, nil
}

// lookupSettings returns the user's stored settings. A failed lookup is logged
// and treated as no settings so the server's keys still apply.
func (p *Pipeline) lookupSettings(ctx context.Context, job *types.ExtractionJob, userID uuid.UUID) *types.UserSettings {
	if p.Settings == nil || userID == uuid.Nil {
		return nil
	}
	settings, err := p.Settings.GetSettings(ctx, userID)
	if err != nil {
		log.Printf("[cv] %s settings lookup failed: %v", job.RequestID, err)
		return nil
	}
	p.emit(job, StageSettings, "loaded settings")
	return settings
}

func (p *Pipeline) emit(job *types.ExtractionJob, step, message string) {
	if p.OnProgress != nil {
		p.OnProgress(ProgressEvent{Step: step, Message: message, RequestID: job.RequestID})
	}
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewChars {
		return text
	}
	return string(runes[:previewChars])
}
