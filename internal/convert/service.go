package convert

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

type Service struct {
	raster   Rasterizer
	fetcher  Fetcher
	notifier Notifier
	log      *logger.ZapLogger
}

func NewService(raster Rasterizer, fetcher Fetcher, notifier Notifier, log *logger.ZapLogger) *Service {
	return &Service{
		raster:   raster,
		fetcher:  fetcher,
		notifier: notifier,
		log:      log,
	}
}

// Handle is the single boundary of the conversion flow. Every failure is
// converted to a structured error response here; nothing propagates out.
func (s *Service) Handle(ctx context.Context, req Request) Response {
	resp, err := s.process(ctx, req)
	if err == nil {
		return resp
	}

	if errors.Is(err, ErrInvalidInput) {
		return errorResponse(400, "No body found in request", "")
	}

	s.log.Log(logger.LogEntry{Level: "error", Message: "conversion failed", Error: err})
	if s.notifier != nil {
		_ = s.notifier.Notify(ctx, err, "pdf conversion request failed")
	}
	return errorResponse(500, err.Error(), "Check service logs for more information")
}

func (s *Service) process(ctx context.Context, req Request) (Response, error) {
	if len(req.Body) == 0 {
		return Response{}, fmt.Errorf("%w: no body", ErrInvalidInput)
	}

	reqID := uuid.NewString()

	// per-request temp dir so parallel requests never collide;
	// removed on every exit path
	workDir, err := os.MkdirTemp("", "pdf2zip-"+reqID+"-*")
	if err != nil {
		return Response{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	pdfPath := filepath.Join(workDir, "input.pdf")

	if err := s.resolveInput(ctx, req.Body, pdfPath); err != nil {
		return Response{}, err
	}

	pages, err := s.raster.Rasterize(ctx, pdfPath)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	zipBytes, err := buildArchive(pages)
	if err != nil {
		return Response{}, err
	}

	s.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("req %s: converted %d pages, archive %s", reqID, len(pages), humanize.Bytes(uint64(len(zipBytes)))),
	})

	return Response{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type":        "application/zip",
			"Content-Disposition": "attachment; filename=pdf_images.zip",
		},
		Body:            base64.StdEncoding.EncodeToString(zipBytes),
		IsBase64Encoded: true,
	}, nil
}

// resolveInput materializes the payload as a PDF file at pdfPath.
func (s *Service) resolveInput(ctx context.Context, body []byte, pdfPath string) error {
	switch in := Classify(body); in.Kind {
	case KindURLRequest:
		if err := s.fetcher.Fetch(ctx, in.URL, pdfPath); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFetchFailed, in.URL, err)
		}
		return nil

	case KindBase64Text:
		decoded, err := base64.StdEncoding.DecodeString(string(stripSpace(body)))
		if err != nil {
			return fmt.Errorf("%w: body is not valid base64: %v", ErrDecodeFailed, err)
		}
		return writePDF(pdfPath, decoded)

	default:
		return writePDF(pdfPath, body)
	}
}

func writePDF(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// stripSpace drops whitespace so wrapped base64 still decodes.
func stripSpace(b []byte) []byte {
	return bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, b)
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func errorResponse(status int, msg, details string) Response {
	body, _ := json.Marshal(errorBody{Error: msg, Details: details})
	return Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
