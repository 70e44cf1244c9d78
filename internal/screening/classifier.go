package screening

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/taxonomy"
)

// Method names the stage that produced a Result.
type Method string

const (
	MethodLengthCheck Method = "length_check"
	MethodStrict      Method = "strict_validation"
	MethodRemote      Method = "remote_validation"
	MethodError       Method = "error"
)

// Issue strings reported for rejected texts.
const (
	IssueNonResumeKeywords = "contains non-resume keywords"
	IssueMissingExperience = "missing experience section"
	IssueMissingEducation  = "missing education section"
	IssueFewKeywords       = "too few resume keywords"
	IssueMissingContact    = "missing contact information"
	IssueTooShort          = "text too short"
	IssueRemoteFailed      = "remote validation failed"
)

const (
	DefaultMinLength   = 300
	DefaultRejectBelow = 40
	DefaultAcceptFrom  = 60

	nonResumeIssueThreshold = 3
	fewKeywordsThreshold    = 5
)

// Result is the outcome of classifying one text.
type Result struct {
	IsResume bool     `json:"is_resume"`
	Score    float64  `json:"score"`
	Reason   string   `json:"reason"`
	Issues   []string `json:"issues"`
	Method   Method   `json:"method"`
	Details  *Details `json:"details,omitempty"`
}

// Details carries diagnostic counters for strict and remote validation.
type Details struct {
	Signals   Signals   `json:"signals"`
	Breakdown Breakdown `json:"breakdown"`
	// RemoteModel is set when the verdict came from the remote classifier.
	RemoteModel string `json:"remote_model,omitempty"`
}

// RemoteVerifier is the remote document classifier consulted for borderline scores.
type RemoteVerifier interface {
	Verify(ctx context.Context, text string) (*ai.Verdict, error)
}

type Config struct {
	MinLength   int     `mapstructure:"min-length"`
	RejectBelow float64 `mapstructure:"reject-below"`
	AcceptFrom  float64 `mapstructure:"accept-from"`
}

type Option func(*Classifier)

// WithSkillTaxonomy lets a taxonomy hit satisfy the skills signal.
func WithSkillTaxonomy(t *taxonomy.Taxonomy) Option {
	return func(c *Classifier) { c.taxonomy = t }
}

// Classifier scores texts and escalates the borderline band to a remote verifier.
type Classifier struct {
	cfg      Config
	remote   RemoteVerifier
	taxonomy *taxonomy.Taxonomy
	logger   *zap.Logger
}

// New builds a classifier. A nil remote makes every borderline text a rejection.
func New(cfg Config, remote RemoteVerifier, log *zap.Logger, opts ...Option) *Classifier {
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultMinLength
	}
	if cfg.RejectBelow <= 0 {
		cfg.RejectBelow = DefaultRejectBelow
	}
	if cfg.AcceptFrom <= 0 || cfg.AcceptFrom < cfg.RejectBelow {
		cfg.AcceptFrom = DefaultAcceptFrom
	}

	c := &Classifier{
		cfg:    cfg,
		remote: remote,
		logger: logger.WithStage(log, logger.StageClassification),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify decides whether text is a resume.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	length := utf8.RuneCountInString(text)
	if length < c.cfg.MinLength {
		c.logger.Debug("text rejected by length gate", zap.Int("length", length), zap.Int("min_length", c.cfg.MinLength))
		return Result{
			IsResume: false,
			Score:    0,
			Reason:   fmt.Sprintf("text is too short to be a resume (%d characters, minimum %d)", length, c.cfg.MinLength),
			Issues:   []string{IssueTooShort},
			Method:   MethodLengthCheck,
		}
	}

	signals := Collect(text)
	if !signals.HasSkills && c.taxonomy != nil {
		signals.HasSkills = c.taxonomy.Contains(text)
	}
	breakdown := Score(signals)
	details := &Details{Signals: signals, Breakdown: breakdown}
	score := breakdown.Total

	log := c.logger.With(zap.Float64("score", score))

	switch {
	case score < c.cfg.RejectBelow:
		log.Debug("text rejected by strict validation")
		return Result{
			IsResume: false,
			Score:    score,
			Reason:   fmt.Sprintf("document does not look like a resume (score %.1f)", score),
			Issues:   rejectionIssues(signals),
			Method:   MethodStrict,
			Details:  details,
		}
	case score >= c.cfg.AcceptFrom:
		log.Debug("text accepted by strict validation")
		return Result{
			IsResume: true,
			Score:    score,
			Reason:   fmt.Sprintf("document looks like a resume (score %.1f)", score),
			Issues:   []string{},
			Method:   MethodStrict,
			Details:  details,
		}
	default:
		return c.escalate(ctx, text, details, log)
	}
}

func (c *Classifier) escalate(ctx context.Context, text string, details *Details, log *zap.Logger) Result {
	score := details.Breakdown.Total
	unavailable := Result{
		IsResume: false,
		Score:    score,
		Reason:   fmt.Sprintf("borderline score %.1f and remote validation is unavailable", score),
		Issues:   []string{IssueRemoteFailed},
		Method:   MethodError,
		Details:  details,
	}

	if c.remote == nil {
		log.Warn("borderline text rejected", zap.Error(ai.ErrClassifierUnavailable))
		return unavailable
	}

	verdict, err := c.remote.Verify(ctx, text)
	if err != nil {
		if !errors.Is(err, ai.ErrClassifierUnavailable) {
			err = fmt.Errorf("%w: %w", ai.ErrClassifierUnavailable, err)
		}
		log.Warn("borderline text rejected", zap.Error(err))
		return unavailable
	}
	if verdict == nil {
		log.Warn("borderline text rejected", zap.Error(fmt.Errorf("%w: empty verdict", ai.ErrClassifierUnavailable)))
		return unavailable
	}

	result := Result{
		IsResume: verdict.IsResume,
		Score:    score,
		Reason:   verdict.Reason,
		Issues:   append([]string{}, verdict.Issues...),
		Method:   MethodRemote,
		Details:  details,
	}
	if verdict.HasConfidence {
		result.Score = verdict.Confidence
	}
	if result.Reason == "" {
		if verdict.IsResume {
			result.Reason = "remote classifier accepted the document"
		} else {
			result.Reason = "remote classifier rejected the document"
		}
	}
	details.RemoteModel = verdict.Model

	log.Info("borderline text escalated",
		zap.String(logger.FieldModel, verdict.Model),
		zap.Bool("is_resume", verdict.IsResume),
	)
	return result
}

func rejectionIssues(s Signals) []string {
	issues := make([]string, 0, 4)
	if s.NonResumeKeywords >= nonResumeIssueThreshold {
		issues = append(issues, IssueNonResumeKeywords)
	}
	if !s.HasExperience {
		issues = append(issues, IssueMissingExperience)
	}
	if !s.HasEducation {
		issues = append(issues, IssueMissingEducation)
	}
	if s.ResumeKeywords < fewKeywordsThreshold {
		issues = append(issues, IssueFewKeywords)
	}
	if !s.HasContact {
		issues = append(issues, IssueMissingContact)
	}
	return issues
}
