// Package server provides the HTTP API of the CV parsing service.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/parsing"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/pipeline"
	"github.com/MaxmilliamOkafor/github-connect-hub-99476a78/internal/profile"
)

// MsgAIFailure is the client-facing message for every AI provider or reply failure.
const MsgAIFailure = "Failed to parse CV with AI"

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource, such as a user without a stored profile.
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Download and other server-side failures map to 500.
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		notFound      *ErrNotFound
		configErr     *parsing.ConfigError
		apiErr        *parsing.APICallError
		parseErr      *parsing.ParseError
		pageErr       *profile.PageError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &configErr), errors.As(err, &pageErr):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message reported to the caller for err.
// Provider and reply failures are reported generically; their detail is only logged.
func ClientMessage(err error) string {
	var (
		apiErr   *parsing.APICallError
		parseErr *parsing.ParseError
		cfgErr   *parsing.ConfigError
		stageErr *pipeline.StageError
	)

	switch {
	case errors.As(err, &apiErr), errors.As(err, &parseErr):
		return MsgAIFailure
	case errors.As(err, &cfgErr):
		return cfgErr.Error()
	case errors.As(err, &stageErr) && stageErr.Stage == pipeline.StageDownload:
		return stageErr.Error()
	}
	return err.Error()
}

// validationError converts validator output into an ErrValidation naming the first failing field.
func validationError(err error) *ErrValidation {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Message: err.Error()}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &ErrValidation{Field: fe.Field(), Message: "is required"}
	case "max":
		return &ErrValidation{Field: fe.Field(), Message: "must be at most " + fe.Param() + " characters"}
	}
	return &ErrValidation{Field: fe.Field(), Message: "is invalid (" + strings.TrimSpace(fe.Tag()) + ")"}
}
