package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"go.uber.org/zap"
)

type pageParser interface {
	pages(ctx context.Context, data []byte) ([]string, error)
}

type einoPages struct {
	parser *pdf.PDFParser
}

func (e einoPages) pages(ctx context.Context, data []byte) (pages []string, err error) {
	// The pure-Go PDF reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	docs, err := e.parser.Parse(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	pages = make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		pages = append(pages, doc.Content)
	}
	return pages, nil
}

// pdfStrategy reads page by page and falls back to docconv when the
// page reader fails or yields no text.
type pdfStrategy struct {
	primary  pageParser
	fallback func(data []byte) (string, error)
	logger   *zap.Logger
}

func newPDFStrategy(ctx context.Context, log *zap.Logger) (*pdfStrategy, error) {
	parser, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: true})
	if err != nil {
		return nil, fmt.Errorf("create pdf parser: %w", err)
	}

	return &pdfStrategy{
		primary:  einoPages{parser: parser},
		fallback: convertPDF,
		logger:   log,
	}, nil
}

func (s *pdfStrategy) Extract(ctx context.Context, data []byte) (string, error) {
	pages, err := s.primary.pages(ctx, data)
	if err == nil {
		text := joinPages(pages)
		if text != "" {
			return text, nil
		}
		err = errors.New("no text layer found")
	}

	if s.fallback == nil {
		return "", err
	}

	s.logger.Debug("page parser failed, trying docconv", zap.Error(err))
	text, fallbackErr := s.fallback(data)
	if fallbackErr != nil {
		return "", fmt.Errorf("page parser: %v; docconv: %w", err, fallbackErr)
	}
	return text, nil
}

func joinPages(pages []string) string {
	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		if page = strings.TrimSpace(page); page != "" {
			parts = append(parts, page)
		}
	}
	return strings.Join(parts, "\n")
}

func convertPDF(data []byte) (string, error) {
	text, _, err := docconv.ConvertPDF(bytes.NewReader(data))
	return text, err
}
