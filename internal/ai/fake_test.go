package ai

import (
	"context"
	"sync"
)

type fakeResponse struct {
	content string
	err     error
	// block waits for the request context to end before answering.
	block bool
}

type fakeCompleter struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	requests  []CompletionRequest
}

func newFakeCompleter(responses map[string]fakeResponse) *fakeCompleter {
	return &fakeCompleter{responses: responses}
}

func (f *fakeCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	resp, ok := f.responses[req.Model]
	f.mu.Unlock()

	if !ok {
		return "", context.Canceled
	}
	if resp.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return resp.content, resp.err
}

func (f *fakeCompleter) Provider() string { return "fake" }

func (f *fakeCompleter) models() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.requests))
	for _, req := range f.requests {
		out = append(out, req.Model)
	}
	return out
}
