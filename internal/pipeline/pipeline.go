// Package pipeline composes extraction, classification and structuring into
// the two request operations: ProcessDocument and ProcessText.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/profile"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/taxonomy"
)

const DefaultMinimumUsableLength = 50

// Extraction methods reported in response metadata.
const (
	MethodRemote   = "remote"
	MethodFallback = "fallback"
)

type TextExtractor interface {
	Extract(ctx context.Context, data []byte, format document.Format) (*document.ExtractedDocument, error)
}

type Classifier interface {
	Classify(ctx context.Context, text string) screening.Result
}

// Structurer produces the raw structured profile from resume text.
type Structurer interface {
	Extract(ctx context.Context, text string) (*ai.Extraction, error)
}

type Config struct {
	MinimumUsableLength int `mapstructure:"minimum-usable-length"`
}

// Upload is one document submitted for processing.
type Upload struct {
	Data         []byte
	DeclaredType string
	Filename     string
}

type Response struct {
	Success    bool                      `json:"success"`
	Data       profile.StructuredProfile `json:"data"`
	Validation screening.Result          `json:"validation"`
	Metadata   Metadata                  `json:"metadata"`
}

type Metadata struct {
	RequestID           string    `json:"request_id"`
	Filename            string    `json:"filename,omitempty"`
	FileSize            int       `json:"file_size"`
	Format              string    `json:"format,omitempty"`
	ExtractedTextLength int       `json:"extracted_text_length"`
	Timestamp           time.Time `json:"timestamp"`
	ExtractionMethod    string    `json:"extraction_method"`
	Model               string    `json:"model,omitempty"`
}

type Pipeline struct {
	cfg        Config
	extractor  TextExtractor
	classifier Classifier
	structurer Structurer
	taxonomy   *taxonomy.Taxonomy
	logger     *zap.Logger

	now   func() time.Time
	newID func() string
}

type Option func(*Pipeline)

// WithStructurer enables remote structured extraction. Without it every
// accepted text goes to the fallback extractor.
func WithStructurer(s Structurer) Option {
	return func(p *Pipeline) { p.structurer = s }
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func New(cfg Config, extractor TextExtractor, classifier Classifier, tax *taxonomy.Taxonomy, log *zap.Logger, opts ...Option) *Pipeline {
	if cfg.MinimumUsableLength <= 0 {
		cfg.MinimumUsableLength = DefaultMinimumUsableLength
	}
	if tax == nil {
		tax = taxonomy.Default()
	}

	p := &Pipeline{
		cfg:        cfg,
		extractor:  extractor,
		classifier: classifier,
		taxonomy:   tax,
		logger:     logger.OrNop(log),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RemoteEnabled reports whether a remote structurer is configured.
func (p *Pipeline) RemoteEnabled() bool {
	return p.structurer != nil
}

// ReadDocument resolves the upload format and extracts its text without
// checking how much text was found.
func (p *Pipeline) ReadDocument(ctx context.Context, u Upload) (*document.ExtractedDocument, error) {
	format, err := document.Resolve(u.DeclaredType, u.Filename, u.Data)
	if err != nil {
		return nil, err
	}
	return p.extractor.Extract(ctx, u.Data, format)
}

// ExtractText is ReadDocument that fails with *InsufficientTextError when the
// text is shorter than the minimum usable length.
func (p *Pipeline) ExtractText(ctx context.Context, u Upload) (*document.ExtractedDocument, error) {
	doc, err := p.ReadDocument(ctx, u)
	if err != nil {
		return nil, err
	}
	if doc.Length < p.cfg.MinimumUsableLength {
		return nil, &InsufficientTextError{Length: doc.Length, Minimum: p.cfg.MinimumUsableLength}
	}
	return doc, nil
}

// ProcessDocument extracts, classifies and structures an uploaded document.
func (p *Pipeline) ProcessDocument(ctx context.Context, u Upload) (*Response, error) {
	meta := Metadata{
		RequestID: p.newID(),
		Filename:  u.Filename,
		FileSize:  len(u.Data),
	}
	log := p.logger.With(zap.String(logger.FieldRequestID, meta.RequestID), zap.String("filename", u.Filename))

	doc, err := p.ReadDocument(ctx, u)
	if err != nil {
		log.Info("document extraction failed", zap.Error(err))
		return nil, err
	}
	meta.Format = string(doc.Format)

	return p.process(ctx, doc.Text, meta, log)
}

// ProcessText classifies and structures already extracted text.
func (p *Pipeline) ProcessText(ctx context.Context, text string) (*Response, error) {
	meta := Metadata{RequestID: p.newID()}
	log := p.logger.With(zap.String(logger.FieldRequestID, meta.RequestID))
	return p.process(ctx, strings.TrimSpace(text), meta, log)
}

func (p *Pipeline) process(ctx context.Context, text string, meta Metadata, log *zap.Logger) (*Response, error) {
	meta.ExtractedTextLength = utf8.RuneCountInString(text)
	if meta.ExtractedTextLength < p.cfg.MinimumUsableLength {
		return nil, &InsufficientTextError{Length: meta.ExtractedTextLength, Minimum: p.cfg.MinimumUsableLength}
	}

	validation := p.classifier.Classify(ctx, text)
	log.Info("document classified",
		zap.Bool("is_resume", validation.IsResume),
		zap.Float64("score", validation.Score),
		zap.String("method", string(validation.Method)),
	)
	if !validation.IsResume {
		return nil, &RejectedError{Validation: validation}
	}

	data, method, model := p.structure(ctx, text, log)
	meta.ExtractionMethod = method
	meta.Model = model
	meta.Timestamp = p.now().UTC()

	return &Response{
		Success:    true,
		Data:       data,
		Validation: validation,
		Metadata:   meta,
	}, nil
}

func (p *Pipeline) structure(ctx context.Context, text string, log *zap.Logger) (profile.StructuredProfile, string, string) {
	if p.structurer == nil {
		log.Debug("remote extraction disabled, using fallback")
		return profile.Fallback(text, p.taxonomy), MethodFallback, ""
	}

	extraction, err := p.structurer.Extract(ctx, text)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var failed *ai.AllModelsFailedError
		if errors.As(err, &failed) {
			for _, attempt := range failed.Attempts {
				fields = append(fields, zap.String("attempt_"+attempt.Model, string(attempt.Kind)))
			}
		}
		logger.WithStage(log, logger.StageFallback).Warn("remote extraction failed, using fallback", fields...)
		return profile.Fallback(text, p.taxonomy), MethodFallback, ""
	}

	if violations, err := profile.Violations(extraction.Raw); err != nil {
		log.Debug("schema check skipped", zap.Error(err))
	} else if len(violations) > 0 {
		log.Debug("remote profile deviates from schema",
			zap.String(logger.FieldModel, extraction.Model),
			zap.Int("violations", len(violations)),
			zap.Strings("details", violations),
		)
	}

	return profile.NormalizeMap(extraction.Raw), MethodRemote, extraction.Model
}
