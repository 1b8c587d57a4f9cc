package pipeline

import "fmt"

// Stage names reported in errors and progress events.
const (
	StageDownload = "download"
	StageIngest   = "ingest"
	StageSettings = "settings"
	StageProvider = "provider"
	StageExtract  = "extract"
)

// StageError records the stage at which a CV extraction stopped.
type StageError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *StageError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StageError) Unwrap() error {
	return e.Cause
}
