package document

import "fmt"

// FormatError represents a document whose container structure could not be read
type FormatError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
