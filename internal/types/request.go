package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports field errors under their JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ExtractCVRequest is the body of the CV extraction endpoint.
type ExtractCVRequest struct {
	CVFilePath string `json:"cvFilePath" validate:"required,max=1024"`
	Debug      bool   `json:"debug,omitempty"`
}

// Validate validates the ExtractCVRequest using the validator.
func (r *ExtractCVRequest) Validate() error {
	return validate.Struct(r)
}

// Envelope is the uniform response shape of the HTTP handlers.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Debug   any    `json:"debug,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UserSettings is the per-user record holding AI provider preference and credentials.
type UserSettings struct {
	PreferredProvider string `json:"preferredProvider"`
	OpenAIKey         string `json:"-"`
	GroqKey           string `json:"-"`
}
