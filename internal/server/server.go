// Package server exposes the pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/pipeline"
)

const (
	DefaultListen         = ":5000"
	DefaultMaxUploadBytes = 10 << 20

	// multipartOverhead leaves room for form boundaries around the file.
	multipartOverhead = 1 << 20
)

type Config struct {
	Listen         string `mapstructure:"listen"`
	MaxUploadBytes int    `mapstructure:"max-upload-bytes"`
}

type Server struct {
	app      *fiber.App
	cfg      Config
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
	now      func() time.Time
}

func New(cfg Config, p *pipeline.Pipeline, log *zap.Logger) *Server {
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{
		cfg:      cfg,
		pipeline: p,
		logger:   logger.OrNop(log),
		now:      time.Now,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "resume-screener",
		BodyLimit:             cfg.MaxUploadBytes + multipartOverhead,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.routes()

	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)

	backend := s.app.Group("/backend")
	backend.Post("/analyze_pdf", s.analyzePDF)
	backend.Post("/analyze_resume", s.analyzeResume)
	backend.Post("/analyze_resume_direct", s.analyzeResumeDirect)
	backend.Post("/debug_extract", s.debugExtract)
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Start blocks serving on the configured address.
func (s *Server) Start() error {
	s.logger.Info("listening", zap.String("address", s.cfg.Listen))
	return s.app.Listen(s.cfg.Listen)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// handleError renders errors that escaped a handler, including the ones
// fiber raises itself such as an oversized body.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	if code >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}

	message := err.Error()
	if code == fiber.StatusRequestEntityTooLarge {
		message = "File size too large"
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
