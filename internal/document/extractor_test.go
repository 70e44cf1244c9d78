package document

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestExtractorTrimsAndCounts(t *testing.T) {
	extractor := NewExtractorWith(map[Format]Strategy{
		FormatTXT: StrategyFunc(extractPlainText),
	}, nil)

	doc, err := extractor.Extract(context.Background(), []byte("  \n Résumé text \n\n"), FormatTXT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Text != "Résumé text" {
		t.Fatalf("unexpected text %q", doc.Text)
	}
	if doc.Length != 11 {
		t.Fatalf("expected rune length 11, got %d", doc.Length)
	}
	if doc.Format != FormatTXT {
		t.Fatalf("unexpected format %s", doc.Format)
	}
}

func TestExtractorWrapsStrategyErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cause := errors.New("corrupt")

	extractor := NewExtractorWith(map[Format]Strategy{
		FormatDOCX: StrategyFunc(func(context.Context, []byte) (string, error) { return "", cause }),
	}, zap.New(core))

	_, err := extractor.Extract(context.Background(), []byte("PK"), FormatDOCX)

	var failure *ExtractionFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected ExtractionFailure, got %v", err)
	}
	if failure.Format != FormatDOCX || !errors.Is(err, cause) {
		t.Fatalf("unexpected failure: %+v", failure)
	}
	if logs.FilterMessage("text extraction failed").Len() != 1 {
		t.Fatalf("expected failure to be logged")
	}
}

func TestExtractorRejectsUnknownAndEmpty(t *testing.T) {
	extractor := NewExtractorWith(map[Format]Strategy{
		FormatTXT: StrategyFunc(extractPlainText),
	}, nil)

	if _, err := extractor.Extract(context.Background(), []byte("x"), FormatPDF); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}

	var failure *ExtractionFailure
	if _, err := extractor.Extract(context.Background(), nil, FormatTXT); !errors.As(err, &failure) {
		t.Fatalf("expected ExtractionFailure for empty input, got %v", err)
	}
}

type stubPages struct {
	out []string
	err error
}

func (s stubPages) pages(context.Context, []byte) ([]string, error) {
	return s.out, s.err
}

func TestPDFStrategy(t *testing.T) {
	tests := []struct {
		name     string
		primary  stubPages
		fallback func([]byte) (string, error)
		want     string
		wantErr  bool
	}{
		{
			name:    "joins pages",
			primary: stubPages{out: []string{" page one ", "", "page two"}},
			want:    "page one\npage two",
		},
		{
			name:     "falls back on parser error",
			primary:  stubPages{err: errors.New("bad xref")},
			fallback: func([]byte) (string, error) { return "from docconv", nil },
			want:     "from docconv",
		},
		{
			name:     "falls back when no text layer",
			primary:  stubPages{out: []string{"  "}},
			fallback: func([]byte) (string, error) { return "scanned", nil },
			want:     "scanned",
		},
		{
			name:     "both fail",
			primary:  stubPages{err: errors.New("bad xref")},
			fallback: func([]byte) (string, error) { return "", errors.New("pdftotext missing") },
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := &pdfStrategy{primary: tt.primary, fallback: tt.fallback, logger: zap.NewNop()}
			got, err := strategy.Extract(context.Background(), []byte("%PDF-"))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
