package ai

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/utils"
)

//go:embed extraction_prompt.md
var extractionPrompt string

const (
	defaultTemperature     = 0.1
	defaultMaxOutputTokens = 4000
	defaultMaxInputChars   = 15000
	defaultExtractTimeout  = 60 * time.Second
	defaultMaxLogLength    = 200
)

// DefaultModels is the model order used when none is configured.
var DefaultModels = []string{
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
}

// ExtractorConfig tunes the structured extraction requests.
type ExtractorConfig struct {
	Models          []string
	Temperature     float32
	MaxOutputTokens int32
	// MaxInputChars bounds the resume text sent to the model.
	MaxInputChars int
	// Timeout applies to each model attempt separately.
	Timeout      time.Duration
	MaxLogLength int
}

func (c ExtractorConfig) withDefaults() ExtractorConfig {
	models := make([]string, 0, len(c.Models))
	for _, model := range c.Models {
		if model = strings.TrimSpace(model); model != "" {
			models = append(models, model)
		}
	}
	if len(models) == 0 {
		models = append(models, DefaultModels...)
	}
	c.Models = models

	if c.Temperature <= 0 {
		c.Temperature = defaultTemperature
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = defaultMaxOutputTokens
	}
	if c.MaxInputChars <= 0 {
		c.MaxInputChars = defaultMaxInputChars
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultExtractTimeout
	}
	if c.MaxLogLength <= 0 {
		c.MaxLogLength = defaultMaxLogLength
	}
	return c
}

// Extraction is the raw structured result of the first successful model.
type Extraction struct {
	Model    string
	Raw      map[string]any
	Attempts []Attempt
}

// Extractor turns resume text into a raw profile object by trying the
// configured models in order until one returns a JSON object.
type Extractor struct {
	completer Completer
	cfg       ExtractorConfig
	logger    *zap.Logger
}

func NewExtractor(completer Completer, cfg ExtractorConfig, log *zap.Logger) *Extractor {
	return &Extractor{
		completer: completer,
		cfg:       cfg.withDefaults(),
		logger:    logger.WithStage(log, logger.StageStructuring),
	}
}

// Models returns the configured model order.
func (e *Extractor) Models() []string {
	return append([]string(nil), e.cfg.Models...)
}

// Extract runs at most one attempt per model. It fails with
// *AllModelsFailedError when the list is exhausted.
func (e *Extractor) Extract(ctx context.Context, text string) (*Extraction, error) {
	if e == nil || e.completer == nil {
		return nil, errors.New("extractor is not initialized")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	userText := "Resume Text:\n" + utils.FirstRunes(text, e.cfg.MaxInputChars)
	attempts := make([]Attempt, 0, len(e.cfg.Models))

	for _, model := range e.cfg.Models {
		if err := ctx.Err(); err != nil {
			return nil, &AllModelsFailedError{Attempts: attempts, LastErr: err}
		}

		raw, attempt := e.attempt(ctx, model, userText)
		attempts = append(attempts, attempt)
		if attempt.Kind == OutcomeSuccess {
			return &Extraction{Model: model, Raw: raw, Attempts: attempts}, nil
		}
	}

	lastErr := ErrNoModels
	if len(attempts) > 0 {
		lastErr = attempts[len(attempts)-1].Err
	}
	return nil, &AllModelsFailedError{Attempts: attempts, LastErr: lastErr}
}

func (e *Extractor) attempt(ctx context.Context, model, userText string) (map[string]any, Attempt) {
	log := logger.WithCommonFields(e.logger, e.completer.Provider(), model)

	attemptCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	log.Debug("model request",
		zap.Int("prompt_length", utf8.RuneCountInString(userText)),
		zap.String("prompt_preview", utils.TruncateForLog(userText, e.cfg.MaxLogLength)),
	)

	started := time.Now()
	content, err := e.completer.Complete(attemptCtx, CompletionRequest{
		Model:             model,
		SystemInstruction: extractionPrompt,
		UserText:          userText,
		Temperature:       e.cfg.Temperature,
		MaxOutputTokens:   e.cfg.MaxOutputTokens,
		ExpectJSON:        true,
	})
	attempt := Attempt{Model: model, Duration: time.Since(started)}

	if err != nil {
		attempt.Kind = OutcomeTransport
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			attempt.Kind = OutcomeTimeout
		}
		attempt.Err = fmt.Errorf("model %s: %w", model, err)
		log.Warn("model attempt failed",
			zap.String("outcome", string(attempt.Kind)),
			zap.Duration("duration", attempt.Duration),
			zap.Error(err),
		)
		return nil, attempt
	}

	log.Debug("model response",
		zap.Int("response_length", utf8.RuneCountInString(content)),
		zap.String("response_preview", utils.TruncateForLog(content, e.cfg.MaxLogLength)),
	)

	raw, err := DecodeObject(content)
	if err != nil {
		attempt.Kind = OutcomeParse
		attempt.Err = &ParseError{Model: model, Cause: err}
		log.Warn("model response is not valid json",
			zap.String("outcome", string(attempt.Kind)),
			zap.String("response_preview", utils.TruncateForLog(content, e.cfg.MaxLogLength)),
			zap.Error(err),
		)
		return nil, attempt
	}

	attempt.Kind = OutcomeSuccess
	log.Info("model attempt succeeded", zap.Duration("duration", attempt.Duration))
	return raw, attempt
}
