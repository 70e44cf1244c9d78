package ai

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/utils"
)

//go:embed classification_prompt.md
var classificationPrompt string

// DefaultClassificationModel is used for escalations when no model is configured.
const DefaultClassificationModel = "gemini-2.0-flash"

const (
	defaultExcerptChars     = 2000
	defaultClassifyTimeout  = 15 * time.Second
	defaultClassifierTokens = 500
)

// Verdict is the remote answer to "is this document a resume".
type Verdict struct {
	IsResume bool
	// Confidence is in [0,100]; HasConfidence is false when the model omitted it.
	Confidence    float64
	HasConfidence bool
	Reason        string
	Issues        []string
	Model         string
}

// ClassifierConfig tunes the document classification request.
type ClassifierConfig struct {
	Model        string
	Temperature  float32
	ExcerptChars int
	Timeout      time.Duration
	MaxLogLength int
}

// Classifier asks the remote service whether a text is a resume, sending
// only the beginning of the document.
type Classifier struct {
	completer Completer
	cfg       ClassifierConfig
	logger    *zap.Logger
}

func NewClassifier(completer Completer, cfg ClassifierConfig, log *zap.Logger) *Classifier {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultClassificationModel
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.ExcerptChars <= 0 {
		cfg.ExcerptChars = defaultExcerptChars
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultClassifyTimeout
	}
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = defaultMaxLogLength
	}

	return &Classifier{
		completer: completer,
		cfg:       cfg,
		logger:    logger.WithStage(log, logger.StageEscalation),
	}
}

// Verify classifies text. Every failure wraps ErrClassifierUnavailable.
func (c *Classifier) Verify(ctx context.Context, text string) (*Verdict, error) {
	if c == nil || c.completer == nil {
		return nil, fmt.Errorf("%w: classifier is not initialized", ErrClassifierUnavailable)
	}

	excerpt := utils.FirstRunes(strings.TrimSpace(text), c.cfg.ExcerptChars)
	if excerpt == "" {
		return nil, fmt.Errorf("%w: %w", ErrClassifierUnavailable, ErrEmptyInput)
	}

	log := logger.WithCommonFields(c.logger, c.completer.Provider(), c.cfg.Model)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	content, err := c.completer.Complete(ctx, CompletionRequest{
		Model:             c.cfg.Model,
		SystemInstruction: classificationPrompt,
		UserText:          "Document excerpt:\n" + excerpt,
		Temperature:       c.cfg.Temperature,
		MaxOutputTokens:   defaultClassifierTokens,
		ExpectJSON:        true,
	})
	if err != nil {
		log.Warn("remote classification failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)
	}

	log.Debug("remote classification response",
		zap.Int("response_length", utf8.RuneCountInString(content)),
		zap.String("response_preview", utils.TruncateForLog(content, c.cfg.MaxLogLength)),
	)

	verdict, err := parseVerdict(content)
	if err != nil {
		log.Warn("remote classification response is unusable", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrClassifierUnavailable, &ParseError{Model: c.cfg.Model, Cause: err})
	}
	verdict.Model = c.cfg.Model

	return verdict, nil
}

func parseVerdict(raw string) (*Verdict, error) {
	data, err := DecodeObject(raw)
	if err != nil {
		return nil, err
	}

	value, ok := data["is_resume"]
	if !ok {
		return nil, errors.New("response has no is_resume field")
	}

	verdict := &Verdict{
		IsResume: coerceBool(value),
		Reason:   coerceString(data["reason"]),
		Issues:   coerceStrings(data["issues"]),
	}

	if confidence := coerceFloat(data["confidence"]); !math.IsNaN(confidence) {
		// Some models answer on a 0-1 scale.
		if confidence > 0 && confidence < 1 {
			confidence *= 100
		}
		verdict.Confidence = math.Max(0, math.Min(100, confidence))
		verdict.HasConfidence = true
	}

	if verdict.Issues == nil {
		verdict.Issues = []string{}
	}
	return verdict, nil
}
