package profile

import "fmt"

// PageError represents a failure to read a profile page
type PageError struct {
	Message string
	Cause   error
}

func (e *PageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile page error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("profile page error: %s", e.Message)
}

func (e *PageError) Unwrap() error {
	return e.Cause
}
