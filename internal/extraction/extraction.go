// Package extraction implements document data extraction for SubmitEZ.
// Uploaded broker documents are converted to text by format-specific
// processors, structured by a language model, scored for confidence,
// and merged across documents into the canonical submission entities.
package extraction

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/submitez/submitez/internal/submission"
	"github.com/submitez/submitez/pkg/storage"
)

// maxConcurrentDocuments bounds parallel model calls per submission.
const maxConcurrentDocuments = 4

// Service runs the extraction stage of the submission pipeline.
type Service struct {
	client  *Client
	storage storage.System
	logger  *slog.Logger
}

// NewService creates an extraction service.
func NewService(client *Client, store storage.System, logger *slog.Logger) *Service {
	return &Service{
		client:  client,
		storage: store,
		logger:  logger.With("system", "extraction"),
	}
}

// ExtractSubmission processes every uploaded file, merges the results,
// and writes the merged entities onto the submission. Individual file
// failures are recorded in the extraction metadata; the call fails only
// when no file produced data.
func (s *Service) ExtractSubmission(ctx context.Context, sub *submission.Submission) (*MergedResult, error) {
	if len(sub.UploadedFiles) == 0 {
		return nil, ErrNoFiles
	}

	docs := make([]DocumentExtraction, len(sub.UploadedFiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDocuments)

	for i, ref := range sub.UploadedFiles {
		g.Go(func() error {
			docs[i] = s.extractDocument(gctx, ref)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged, err := Merge(docs)
	if err != nil {
		return nil, err
	}

	completed := 0
	for i := range docs {
		if !docs[i].Failed() {
			completed++
		}
	}
	if completed == 0 {
		return nil, fmt.Errorf("%w: %d files", ErrAllFilesFailed, len(docs))
	}

	s.apply(sub, merged)

	s.logger.Info("submission extracted",
		"id", sub.ID,
		"files", len(docs),
		"completed", completed,
		"confidence", merged.Confidence,
	)

	return merged, nil
}

func (s *Service) extractDocument(ctx context.Context, ref submission.FileRef) DocumentExtraction {
	start := time.Now()
	doc := DocumentExtraction{Filename: ref.Filename, Status: StatusCompleted}

	fail := func(err error) DocumentExtraction {
		s.logger.Warn("document extraction failed", "file", ref.Filename, "error", err)
		doc.Status = StatusFailed
		doc.Error = err.Error()
		doc.DurationMS = time.Since(start).Milliseconds()
		return doc
	}

	download, err := s.storage.Download(ctx, ref.StorageKey)
	if err != nil {
		return fail(fmt.Errorf("download %s: %w", ref.StorageKey, err))
	}
	data, err := io.ReadAll(download.Body)
	download.Body.Close()
	if err != nil {
		return fail(fmt.Errorf("read %s: %w", ref.StorageKey, err))
	}

	text, processor, err := s.extractText(ref, data)
	if err != nil {
		return fail(err)
	}
	doc.Processor = processor
	doc.TextLength = len(text)

	raw, err := s.client.ExtractDocument(ctx, ref.Filename, text)
	if err != nil {
		return fail(err)
	}

	doc.applyPayload(raw)
	doc.Score()
	doc.DurationMS = time.Since(start).Milliseconds()

	return doc
}

// extractText runs the document through the processor registry. When
// the preferred processor yields nothing (an ACORD PDF with no filled
// form fields, say) the remaining processors are tried in order.
func (s *Service) extractText(ref submission.FileRef, data []byte) (string, string, error) {
	var lastErr error

	for _, p := range processors() {
		if !p.CanHandle(ref.Filename, ref.ContentType) {
			continue
		}
		text, err := p.Extract(data)
		if err != nil {
			lastErr = err
			continue
		}
		return text, p.Name(), nil
	}

	if lastErr != nil {
		return "", "", lastErr
	}
	return "", "", ErrUnsupportedFile
}

// apply writes the merged extraction onto the submission and normalizes
// the result.
func (s *Service) apply(sub *submission.Submission, merged *MergedResult) {
	sub.Applicant = merged.Applicant
	sub.Locations = merged.Locations
	sub.Coverage = merged.Coverage
	sub.LossHistory = merged.LossHistory
	sub.Normalize()

	confidence := merged.Confidence
	sub.ExtractionConfidence = &confidence

	summaries := make([]map[string]any, 0, len(merged.Documents))
	for i := range merged.Documents {
		doc := &merged.Documents[i]
		summary := map[string]any{
			"filename":           doc.Filename,
			"status":             doc.Status,
			"overall_confidence": doc.OverallConfidence,
		}
		if doc.Processor != "" {
			summary["processor"] = doc.Processor
		}
		if doc.Error != "" {
			summary["error"] = doc.Error
		}
		if len(doc.Confidence) > 0 {
			summary["confidence"] = doc.Confidence
		}
		summaries = append(summaries, summary)
	}

	sub.ExtractionMetadata = map[string]any{
		"documents":    summaries,
		"extracted_at": time.Now().UTC().Format(time.RFC3339),
	}
	if len(merged.WorkersComp) > 0 {
		sub.ExtractionMetadata["workers_comp"] = merged.WorkersComp
	}
}
