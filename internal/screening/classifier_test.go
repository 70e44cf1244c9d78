package screening

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/taxonomy"
)

type fakeVerifier struct {
	verdict *ai.Verdict
	err     error
	calls   int
	texts   []string
}

func (f *fakeVerifier) Verify(_ context.Context, text string) (*ai.Verdict, error) {
	f.calls++
	f.texts = append(f.texts, text)
	return f.verdict, f.err
}

// borderline widens the escalation band so the sample resume falls inside it.
var borderline = Config{RejectBelow: 1, AcceptFrom: 99}

func TestClassifyLengthGate(t *testing.T) {
	remote := &fakeVerifier{}
	c := New(Config{}, remote, nil)

	result := c.Classify(context.Background(), "The quick brown fox jumps over the lazy dog.")

	if result.IsResume || result.Score != 0 || result.Method != MethodLengthCheck {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Details != nil {
		t.Fatalf("length gate must not compute signals")
	}
	if remote.calls != 0 {
		t.Fatalf("expected no remote calls, got %d", remote.calls)
	}
}

func TestClassifyAcceptsResumeWithoutRemote(t *testing.T) {
	remote := &fakeVerifier{}
	c := New(Config{}, remote, nil)

	result := c.Classify(context.Background(), sampleResume)

	if !result.IsResume || result.Method != MethodStrict {
		t.Fatalf("expected strict acceptance, got %+v", result)
	}
	if result.Score < 60 {
		t.Fatalf("expected score >= 60, got %v", result.Score)
	}
	if result.Issues == nil || len(result.Issues) != 0 {
		t.Fatalf("expected empty issues, got %v", result.Issues)
	}
	if remote.calls != 0 {
		t.Fatalf("expected no remote calls, got %d", remote.calls)
	}
}

func TestClassifyRejectsInvoice(t *testing.T) {
	remote := &fakeVerifier{}
	c := New(Config{}, remote, nil)

	result := c.Classify(context.Background(), sampleInvoice())

	if result.IsResume || result.Method != MethodStrict || result.Score >= 40 {
		t.Fatalf("expected strict rejection, got %+v", result)
	}
	for _, issue := range []string{IssueMissingExperience, IssueMissingEducation, IssueNonResumeKeywords} {
		if !slices.Contains(result.Issues, issue) {
			t.Fatalf("expected issue %q in %v", issue, result.Issues)
		}
	}
	if remote.calls != 0 {
		t.Fatalf("expected no remote calls, got %d", remote.calls)
	}
}

func TestClassifyEscalatesBorderline(t *testing.T) {
	remote := &fakeVerifier{verdict: &ai.Verdict{
		IsResume:      true,
		Confidence:    72,
		HasConfidence: true,
		Reason:        "structured work history",
		Issues:        []string{},
		Model:         "judge",
	}}
	c := New(borderline, remote, nil)

	result := c.Classify(context.Background(), sampleResume)

	if !result.IsResume || result.Method != MethodRemote || result.Score != 72 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Reason != "structured work history" || result.Details.RemoteModel != "judge" {
		t.Fatalf("unexpected verdict propagation: %+v", result)
	}
	if remote.calls != 1 || remote.texts[0] != sampleResume {
		t.Fatalf("expected exactly one remote call with the text")
	}
}

func TestClassifyRemoteWithoutConfidenceKeepsHeuristicScore(t *testing.T) {
	remote := &fakeVerifier{verdict: &ai.Verdict{IsResume: false, Issues: []string{"cover letter"}}}
	c := New(borderline, remote, nil)

	result := c.Classify(context.Background(), sampleResume)

	if result.IsResume || result.Method != MethodRemote {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Score != result.Details.Breakdown.Total {
		t.Fatalf("expected heuristic score, got %v", result.Score)
	}
	if result.Reason == "" || !slices.Equal(result.Issues, []string{"cover letter"}) {
		t.Fatalf("unexpected reason or issues: %+v", result)
	}
}

func TestClassifyRemoteFailureRejects(t *testing.T) {
	tests := []struct {
		name   string
		remote RemoteVerifier
	}{
		{name: "remote error", remote: &fakeVerifier{err: errors.New("timeout")}},
		{name: "nil verdict", remote: &fakeVerifier{}},
		{name: "no remote configured", remote: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			c := New(borderline, tt.remote, zap.New(core))

			result := c.Classify(context.Background(), sampleResume)

			if result.IsResume || result.Method != MethodError {
				t.Fatalf("expected rejection with error method, got %+v", result)
			}
			if !slices.Contains(result.Issues, IssueRemoteFailed) {
				t.Fatalf("unexpected issues: %v", result.Issues)
			}

			entries := logs.FilterMessage("borderline text rejected").All()
			if len(entries) != 1 {
				t.Fatalf("expected the recovered failure to be logged once, got %d", len(entries))
			}
			if entries[0].ContextMap()["stage"] != "classification" {
				t.Fatalf("unexpected log context: %v", entries[0].ContextMap())
			}
		})
	}
}

func TestWithSkillTaxonomy(t *testing.T) {
	text := strings.Replace(sampleResume, "Skills:", "Stack:", 1)

	plain := New(Config{}, nil, nil).Classify(context.Background(), text)
	withTax := New(Config{}, nil, nil, WithSkillTaxonomy(taxonomy.Default())).Classify(context.Background(), text)

	if plain.Details.Signals.HasSkills {
		t.Fatalf("expected no skills heading to be detected")
	}
	if !withTax.Details.Signals.HasSkills {
		t.Fatalf("expected taxonomy tokens to satisfy the skills signal")
	}
	if withTax.Score <= plain.Score {
		t.Fatalf("expected taxonomy hit to raise the score: %v <= %v", withTax.Score, plain.Score)
	}
}
