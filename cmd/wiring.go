package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/ai/gemini"
	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/pipeline"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/secrets"
	"github.com/spigell/resume-screener/internal/taxonomy"
)

// newPipeline wires the pipeline from config. Remote features are left out
// when AI is disabled or the api key cannot be resolved.
func newPipeline(ctx context.Context, config *Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	extractor, err := document.NewExtractor(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("building text extractor: %w", err)
	}

	tax := taxonomy.Default()

	var screeningCfg screening.Config
	pipelineCfg := pipeline.Config{}
	if config.Screening != nil {
		screeningCfg = config.Screening.Config
		pipelineCfg.MinimumUsableLength = config.Screening.MinimumUsableLength
	}

	var opts []pipeline.Option
	var remote screening.RemoteVerifier

	completer, err := newCompleter(ctx, config.AI, logger)
	switch {
	case err != nil:
		logger.Warn("remote features disabled", zap.Error(err))
	case completer == nil:
		logger.Info("remote features disabled", zap.String("reason", "ai.enabled is false"))
	default:
		cfg := config.AI
		remote = ai.NewClassifier(completer, ai.ClassifierConfig{
			Model:        cfg.ClassificationModel,
			Temperature:  cfg.Temperature,
			Timeout:      cfg.ClassificationTimeout,
			MaxLogLength: cfg.MaxLogLength,
		}, logger)

		structurer := ai.NewExtractor(completer, ai.ExtractorConfig{
			Models:          cfg.Models,
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxOutputTokens,
			MaxInputChars:   cfg.MaxInputChars,
			Timeout:         cfg.ExtractionTimeout,
			MaxLogLength:    cfg.MaxLogLength,
		}, logger)
		opts = append(opts, pipeline.WithStructurer(structurer))

		logger.Info("remote features enabled",
			zap.String("ai_provider", completer.Provider()),
			zap.Strings("models", structurer.Models()),
		)
	}

	classifier := screening.New(screeningCfg, remote, logger, screening.WithSkillTaxonomy(tax))

	return pipeline.New(pipelineCfg, extractor, classifier, tax, logger, opts...), nil
}

// newCompleter returns nil without an error when AI is disabled.
func newCompleter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Completer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	src := secrets.Source{Name: "gemini api key", Env: "GEMINI_API_KEY"}
	if cfg.Gemini != nil {
		src.Value = cfg.Gemini.APIKey
		src.File = cfg.Gemini.APIKeyFile
	}

	apiKey, err := secrets.Load(src)
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, ai.gemini.api-key or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, logger.With(zap.String("ai_provider", "gemini")))
	if err != nil {
		return nil, err
	}

	return generator, nil
}
