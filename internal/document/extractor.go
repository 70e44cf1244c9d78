package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
)

// ExtractedDocument is the plain text obtained from one upload.
type ExtractedDocument struct {
	Format Format
	Text   string
	// Length is the number of characters (runes) in Text.
	Length int
}

// ExtractionFailure reports that the bytes could not be parsed as the given format.
type ExtractionFailure struct {
	Format Format
	Cause  error
}

func (e *ExtractionFailure) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("extract %s text", e.Format)
	}
	return fmt.Sprintf("extract %s text: %v", e.Format, e.Cause)
}

func (e *ExtractionFailure) Unwrap() error { return e.Cause }

// Strategy converts the raw bytes of one format to text.
type Strategy interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(ctx context.Context, data []byte) (string, error)

// Extract calls f.
func (f StrategyFunc) Extract(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

// Extractor dispatches to a per-format strategy.
type Extractor struct {
	strategies map[Format]Strategy
	logger     *zap.Logger
}

// NewExtractor builds an extractor with the default strategy for every format.
func NewExtractor(ctx context.Context, log *zap.Logger) (*Extractor, error) {
	log = logger.OrNop(log)

	pdfStrategy, err := newPDFStrategy(ctx, log)
	if err != nil {
		return nil, err
	}

	return NewExtractorWith(map[Format]Strategy{
		FormatPDF:  pdfStrategy,
		FormatDOCX: StrategyFunc(extractDOCX),
		FormatDOC:  StrategyFunc(extractDOC),
		FormatTXT:  StrategyFunc(extractPlainText),
	}, log), nil
}

// NewExtractorWith builds an extractor from explicit strategies.
func NewExtractorWith(strategies map[Format]Strategy, log *zap.Logger) *Extractor {
	copied := make(map[Format]Strategy, len(strategies))
	for format, strategy := range strategies {
		if strategy != nil {
			copied[format] = strategy
		}
	}
	return &Extractor{strategies: copied, logger: logger.WithStage(log, logger.StageExtraction)}
}

// Extract converts data of the given format to trimmed plain text.
func (e *Extractor) Extract(ctx context.Context, data []byte, format Format) (*ExtractedDocument, error) {
	strategy, ok := e.strategies[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if len(data) == 0 {
		return nil, &ExtractionFailure{Format: format, Cause: errors.New("document is empty")}
	}

	text, err := strategy.Extract(ctx, data)
	if err != nil {
		e.logger.Warn("text extraction failed",
			zap.String("format", string(format)),
			zap.Int("bytes", len(data)),
			zap.Error(err),
		)
		var failure *ExtractionFailure
		if errors.As(err, &failure) {
			return nil, failure
		}
		return nil, &ExtractionFailure{Format: format, Cause: err}
	}

	text = strings.TrimSpace(text)
	e.logger.Debug("text extracted",
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
		zap.Int("chars", utf8.RuneCountInString(text)),
	)

	return &ExtractedDocument{
		Format: format,
		Text:   text,
		Length: utf8.RuneCountInString(text),
	}, nil
}
