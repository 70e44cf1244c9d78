// Package ai contains the provider-agnostic contract for the remote
// completion service and the components built on top of it.
package ai

import "context"

// CompletionRequest is one model attempt.
type CompletionRequest struct {
	Model             string
	SystemInstruction string
	UserText          string
	Temperature       float32
	MaxOutputTokens   int32
	// ExpectJSON asks the provider to constrain output to a JSON object.
	ExpectJSON bool
}

// Completer sends a single completion request and returns the textual content.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Provider names the backing service for logging.
	Provider() string
}
