package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rcfaria/fluxo/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrInvalidValue = errors.New("invalid parameter value")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSource ensures a record source is one of the known tags.
func validateSource(source model.RecordSource) error {
	switch source {
	case model.SourceUpload, model.SourceSheet:
		return nil
	default:
		return fmt.Errorf("%w: source %q", ErrInvalidValue, source)
	}
}
