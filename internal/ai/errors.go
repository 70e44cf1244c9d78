package ai

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrClassifierUnavailable wraps any failure of the remote document classifier.
	ErrClassifierUnavailable = errors.New("remote classifier unavailable")
	// ErrNoModels is reported when the extractor has no models configured.
	ErrNoModels = errors.New("no models configured")
	// ErrEmptyInput is returned for blank input text.
	ErrEmptyInput = errors.New("input text is empty")
)

// ParseError reports that a model answered with content that is not a JSON object.
type ParseError struct {
	Model string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse response of model %s: %v", e.Model, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// OutcomeKind tags the result of one model attempt.
type OutcomeKind string

const (
	OutcomeSuccess   OutcomeKind = "success"
	OutcomeTransport OutcomeKind = "transport_error"
	OutcomeTimeout   OutcomeKind = "timeout"
	OutcomeParse     OutcomeKind = "parse_error"
)

// Attempt records what happened when one model was tried.
type Attempt struct {
	Model    string
	Kind     OutcomeKind
	Err      error
	Duration time.Duration
}

// AllModelsFailedError is returned when every configured model failed.
type AllModelsFailedError struct {
	Attempts []Attempt
	LastErr  error
}

func (e *AllModelsFailedError) Error() string {
	models := make([]string, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		models = append(models, attempt.Model)
	}
	if len(models) == 0 {
		return fmt.Sprintf("all models failed: %v", e.LastErr)
	}
	return fmt.Sprintf("all models failed (%s): %v", strings.Join(models, ", "), e.LastErr)
}

func (e *AllModelsFailedError) Unwrap() error { return e.LastErr }
