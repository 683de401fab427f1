// Package workflow drives submissions through the intake pipeline:
// broker document upload, extraction, validation, and ACORD form
// generation. Each stage persists its results and advances the
// submission status, with the error status recording total stage
// failure.
package workflow

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/submitez/submitez/internal/extraction"
	"github.com/submitez/submitez/internal/generation"
	"github.com/submitez/submitez/internal/submission"
	"github.com/submitez/submitez/internal/validation"
	"github.com/submitez/submitez/pkg/storage"
)

// UploadFile carries one broker document from a multipart request.
type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service coordinates the pipeline stages over the submission store.
type Service struct {
	submissions submission.System
	extractor   *extraction.Service
	validator   *validation.Engine
	generator   *generation.Service
	storage     storage.System
	logger      *slog.Logger
}

// NewService creates a pipeline service over the given stage services.
func NewService(
	submissions submission.System,
	extractor *extraction.Service,
	validator *validation.Engine,
	generator *generation.Service,
	store storage.System,
	logger *slog.Logger,
) *Service {
	return &Service{
		submissions: submissions,
		extractor:   extractor,
		validator:   validator,
		generator:   generator,
		storage:     store,
		logger:      logger.With("system", "workflow"),
	}
}

// Upload stores the given files under the submission's upload prefix,
// records them on the submission, and moves it to uploaded.
func (s *Service) Upload(
	ctx context.Context,
	id uuid.UUID,
	files []UploadFile,
) (*submission.Submission, error) {
	if len(files) == 0 {
		return nil, ErrNoFilesProvided
	}

	sub, err := s.submissions.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sub.UpdateStatus(submission.StatusUploaded); err != nil {
		return nil, err
	}

	for _, file := range files {
		filename := path.Base(strings.TrimSpace(file.Filename))
		if filename == "" || filename == "." || filename == "/" {
			return nil, fmt.Errorf("%w: missing filename", ErrInvalidUpload)
		}

		key := fmt.Sprintf("submissions/%s/uploads/%s", sub.ID, filename)
		contentType := detectContentType(file.ContentType, file.Data)

		meta, err := s.storage.Upload(ctx, key, bytes.NewReader(file.Data), contentType)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", filename, err)
		}

		sub.AddUploadedFile(submission.FileRef{
			Filename:    filename,
			StorageKey:  meta.Key,
			URL:         meta.URL,
			ContentType: contentType,
			SizeBytes:   int64(len(file.Data)),
			CreatedAt:   time.Now().UTC(),
		})
	}

	s.logger.Info("files uploaded", "id", sub.ID, "count", len(files))
	return s.submissions.Save(ctx, sub)
}

// Extract runs document extraction over the submission's uploaded
// files, applying the merged result to the canonical model.
func (s *Service) Extract(ctx context.Context, id uuid.UUID) (*submission.Submission, error) {
	sub, err := s.stage(ctx, id, submission.StatusExtracting)
	if err != nil {
		return nil, err
	}

	if _, err := s.extractor.ExtractSubmission(ctx, sub); err != nil {
		return nil, s.fail(ctx, sub, "extraction", err)
	}

	if err := sub.UpdateStatus(submission.StatusExtracted); err != nil {
		return nil, err
	}
	return s.submissions.Save(ctx, sub)
}

// Validate runs the validation engine over the submission, persisting
// the issues and validity flag.
func (s *Service) Validate(
	ctx context.Context,
	id uuid.UUID,
	strict bool,
) (*submission.Submission, *validation.Result, error) {
	sub, err := s.stage(ctx, id, submission.StatusValidating)
	if err != nil {
		return nil, nil, err
	}

	result := s.validator.ValidateSubmission(sub, strict)
	sub.SetValidationResults(result.Errors, result.Warnings, result.IsValid)

	if err := sub.UpdateStatus(submission.StatusValidated); err != nil {
		return nil, nil, err
	}

	sub, err = s.submissions.Save(ctx, sub)
	if err != nil {
		return nil, nil, err
	}
	return sub, result, nil
}

// Generate fills the requested ACORD forms from the submission's
// canonical data and stores the results. When formTypes is empty the
// forms are detected from the available data. The completeness gate
// must pass before any form is filled. Per-form failures are carried
// in the outputs and the submission still completes; the caller is
// expected to surface the per-form errors.
func (s *Service) Generate(
	ctx context.Context,
	id uuid.UUID,
	formTypes []string,
) (*submission.Submission, []generation.FormOutput, error) {
	sub, err := s.submissions.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	result := s.validator.ValidateSubmission(sub, false)
	if !result.CanProceedToGeneration {
		return nil, nil, fmt.Errorf(
			"%w: completeness %d%%, %d blocking errors",
			ErrNotReady, result.CompletenessPercentage, len(result.BlockingErrors),
		)
	}

	if err := sub.UpdateStatus(submission.StatusGenerating); err != nil {
		return nil, nil, err
	}
	if sub, err = s.submissions.Save(ctx, sub); err != nil {
		return nil, nil, err
	}

	outputs, err := s.generator.GenerateForms(ctx, sub, formTypes)
	if err != nil {
		return nil, outputs, s.fail(ctx, sub, "generation", err)
	}

	if err := sub.UpdateStatus(submission.StatusCompleted); err != nil {
		return nil, outputs, err
	}

	sub, err = s.submissions.Save(ctx, sub)
	if err != nil {
		return nil, outputs, err
	}
	return sub, outputs, nil
}

// PipelineResult aggregates the per-stage outcomes of a full run.
type PipelineResult struct {
	Validation *validation.Result      `json:"validation,omitempty"`
	Forms      []generation.FormOutput `json:"forms,omitempty"`
}

// Process runs extraction, validation, and generation back to back,
// stopping at the first failed stage.
func (s *Service) Process(
	ctx context.Context,
	id uuid.UUID,
	strict bool,
	formTypes []string,
) (*submission.Submission, *PipelineResult, error) {
	result := &PipelineResult{}

	sub, err := s.Extract(ctx, id)
	if err != nil {
		return nil, result, err
	}

	sub, result.Validation, err = s.Validate(ctx, id, strict)
	if err != nil {
		return sub, result, err
	}

	sub, result.Forms, err = s.Generate(ctx, id, formTypes)
	if err != nil {
		return sub, result, err
	}
	return sub, result, nil
}

// DownloadFile streams an attached file, uploaded or generated,
// matched by filename.
func (s *Service) DownloadFile(
	ctx context.Context,
	id uuid.UUID,
	filename string,
) (submission.FileRef, *storage.DownloadResult, error) {
	sub, err := s.submissions.Find(ctx, id)
	if err != nil {
		return submission.FileRef{}, nil, err
	}

	for _, ref := range append(sub.GeneratedFiles, sub.UploadedFiles...) {
		if ref.Filename != filename {
			continue
		}
		result, err := s.storage.Download(ctx, ref.StorageKey)
		if err != nil {
			return submission.FileRef{}, nil, err
		}
		return ref, result, nil
	}

	return submission.FileRef{}, nil, fmt.Errorf("%w: %s", ErrFileNotFound, filename)
}

// stage loads the submission and persists the in-progress status
// before the stage work begins.
func (s *Service) stage(
	ctx context.Context,
	id uuid.UUID,
	next submission.Status,
) (*submission.Submission, error) {
	sub, err := s.submissions.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sub.UpdateStatus(next); err != nil {
		return nil, err
	}
	return s.submissions.Save(ctx, sub)
}

// fail moves the submission to the error status, preserving the stage
// error as the returned cause.
func (s *Service) fail(ctx context.Context, sub *submission.Submission, stage string, cause error) error {
	s.logger.Error("pipeline stage failed", "id", sub.ID, "stage", stage, "error", cause)

	if err := sub.UpdateStatus(submission.StatusError); err != nil {
		s.logger.Warn("error status transition rejected", "id", sub.ID, "error", err)
		return cause
	}
	if _, err := s.submissions.Save(ctx, sub); err != nil {
		s.logger.Warn("failed to persist error status", "id", sub.ID, "error", err)
	}
	return cause
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}
