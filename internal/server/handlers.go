package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/pipeline"
)

type analyzeRequest struct {
	Text string `json:"text"`
}

func (s *Server) health(c *fiber.Ctx) error {
	aiStatus := "not configured"
	if s.pipeline.RemoteEnabled() {
		aiStatus = "configured"
	}

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": s.now().UTC(),
		"ai_status": aiStatus,
	})
}

func (s *Server) analyzePDF(c *fiber.Ctx) error {
	upload, err := s.readUpload(c)
	if err != nil {
		return err
	}

	doc, err := s.pipeline.ExtractText(c.UserContext(), upload)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"text":        doc.Text,
		"filename":    upload.Filename,
		"text_length": doc.Length,
	})
}

func (s *Server) analyzeResume(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No text provided for analysis"})
	}

	resp, err := s.pipeline.ProcessText(c.UserContext(), req.Text)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(resp)
}

func (s *Server) analyzeResumeDirect(c *fiber.Ctx) error {
	upload, err := s.readUpload(c)
	if err != nil {
		return err
	}

	resp, err := s.pipeline.ProcessDocument(c.UserContext(), upload)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(resp)
}

func (s *Server) debugExtract(c *fiber.Ctx) error {
	upload, err := s.readUpload(c)
	if err != nil {
		return err
	}

	doc, err := s.pipeline.ReadDocument(c.UserContext(), upload)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(pipeline.PreviewSections(doc.Text, doc.Length))
}

// readUpload returns the multipart "file" field. Client mistakes come back
// as *fiber.Error and are rendered by the app error handler.
func (s *Server) readUpload(c *fiber.Ctx) (pipeline.Upload, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return pipeline.Upload{}, fiber.NewError(fiber.StatusBadRequest, "No file provided")
	}
	if strings.TrimSpace(fh.Filename) == "" {
		return pipeline.Upload{}, fiber.NewError(fiber.StatusBadRequest, "No file selected")
	}
	if fh.Size > int64(s.cfg.MaxUploadBytes) {
		return pipeline.Upload{}, fiber.ErrRequestEntityTooLarge
	}

	declared := fh.Header.Get(fiber.HeaderContentType)
	if !allowedType(declared) {
		return pipeline.Upload{}, fiber.NewError(fiber.StatusBadRequest, "Unsupported file type")
	}

	f, err := fh.Open()
	if err != nil {
		return pipeline.Upload{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(s.cfg.MaxUploadBytes)+1))
	if err != nil {
		return pipeline.Upload{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > s.cfg.MaxUploadBytes {
		return pipeline.Upload{}, fiber.ErrRequestEntityTooLarge
	}

	return pipeline.Upload{Data: data, DeclaredType: declared, Filename: fh.Filename}, nil
}

// allowedType accepts the supported MIME types and generic declarations
// whose format is resolved from the extension or content.
func allowedType(declared string) bool {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(declared))
	}
	switch mediaType {
	case "", "application/octet-stream":
		return true
	}
	return slices.Contains(document.AllowedMIMETypes(), mediaType)
}

func (s *Server) writeError(c *fiber.Ctx, err error) error {
	var (
		rejected     *pipeline.RejectedError
		insufficient *pipeline.InsufficientTextError
		failure      *document.ExtractionFailure
	)

	switch {
	case errors.As(err, &rejected):
		v := rejected.Validation
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":            "Document does not appear to be a resume",
			"validation_score": v.Score,
			"is_resume":        false,
			"issues":           v.Issues,
			"reason":           v.Reason,
			"method":           v.Method,
		})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not extract sufficient text from file"})
	case errors.As(err, &failure):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("Failed to extract text: %v", failure.Cause)})
	case errors.Is(err, document.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unsupported file type"})
	default:
		s.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Analysis failed"})
	}
}
