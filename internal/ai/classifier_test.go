package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClassifierVerify(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantResume     bool
		wantConfidence float64
		wantHasConf    bool
		wantIssues     int
	}{
		{
			name:           "resume with confidence",
			content:        `{"is_resume": true, "confidence": 87, "reason": "Has experience and education", "issues": []}`,
			wantResume:     true,
			wantConfidence: 87,
			wantHasConf:    true,
		},
		{
			name:           "fractional confidence scaled",
			content:        "```json\n{\"is_resume\": \"no\", \"confidence\": 0.25, \"issues\": [\"looks like an invoice\"]}\n```",
			wantConfidence: 25,
			wantHasConf:    true,
			wantIssues:     1,
		},
		{
			name:       "missing confidence",
			content:    `Sure. {"is_resume": true, "reason": "ok"}`,
			wantResume: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeCompleter(map[string]fakeResponse{"judge": {content: tt.content}})
			classifier := NewClassifier(fake, ClassifierConfig{Model: "judge"}, nil)

			verdict, err := classifier.Verify(context.Background(), "some document text")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if verdict.IsResume != tt.wantResume {
				t.Fatalf("expected is_resume=%v, got %v", tt.wantResume, verdict.IsResume)
			}
			if verdict.HasConfidence != tt.wantHasConf || verdict.Confidence != tt.wantConfidence {
				t.Fatalf("unexpected confidence: %+v", verdict)
			}
			if len(verdict.Issues) != tt.wantIssues {
				t.Fatalf("unexpected issues: %v", verdict.Issues)
			}
			if verdict.Model != "judge" {
				t.Fatalf("unexpected model %q", verdict.Model)
			}
		})
	}
}

func TestClassifierSendsExcerpt(t *testing.T) {
	fake := newFakeCompleter(map[string]fakeResponse{"judge": {content: `{"is_resume": false}`}})
	classifier := NewClassifier(fake, ClassifierConfig{Model: "judge"}, nil)

	text := strings.Repeat("é", 5000)
	if _, err := classifier.Verify(context.Background(), text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := strings.TrimPrefix(fake.requests[0].UserText, "Document excerpt:\n")
	if got := utf8.RuneCountInString(sent); got != 2000 {
		t.Fatalf("expected 2000 character excerpt, got %d", got)
	}
}

func TestClassifierFailuresAreUnavailable(t *testing.T) {
	tests := []struct {
		name string
		resp fakeResponse
	}{
		{name: "transport", resp: fakeResponse{err: errors.New("connection reset")}},
		{name: "unparseable", resp: fakeResponse{content: "definitely a resume"}},
		{name: "missing verdict", resp: fakeResponse{content: `{"reason": "unsure"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeCompleter(map[string]fakeResponse{"judge": tt.resp})
			classifier := NewClassifier(fake, ClassifierConfig{Model: "judge"}, nil)

			_, err := classifier.Verify(context.Background(), "text")
			if !errors.Is(err, ErrClassifierUnavailable) {
				t.Fatalf("expected ErrClassifierUnavailable, got %v", err)
			}
		})
	}
}

func TestClassifierDefaults(t *testing.T) {
	classifier := NewClassifier(newFakeCompleter(nil), ClassifierConfig{}, nil)
	if classifier.cfg.Model != DefaultClassificationModel {
		t.Fatalf("unexpected default model %q", classifier.cfg.Model)
	}
	if classifier.cfg.ExcerptChars != 2000 {
		t.Fatalf("unexpected excerpt size %d", classifier.cfg.ExcerptChars)
	}
}
