// Package generation implements ACORD form generation for SubmitEZ:
// field mapping resolution from the canonical submission data, AcroForm
// template filling, and storage of the completed forms.
package generation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/submitez/submitez/internal/submission"
	"github.com/submitez/submitez/pkg/storage"
)

// FormOutput reports the outcome of generating one form. On success Ref
// points at the stored PDF; on failure Error describes the problem and
// the remaining forms are still attempted.
type FormOutput struct {
	FormType        string              `json:"form_type"`
	Name            string              `json:"name"`
	Ref             *submission.FileRef `json:"file,omitempty"`
	Resolution      Resolution          `json:"resolution"`
	Fill            *FillResult         `json:"fill,omitempty"`
	MissingRequired []string            `json:"missing_required,omitempty"`
	Error           string              `json:"error,omitempty"`
}

// Service fills ACORD templates from submission data and stores the results.
type Service struct {
	templatesDir string
	flatten      bool
	storage      storage.System
	logger       *slog.Logger
}

// NewService creates a form generation service reading templates from
// templatesDir. Generated forms stay editable by default; call
// SetFlatten to lock their fields instead.
func NewService(templatesDir string, store storage.System, logger *slog.Logger) *Service {
	return &Service{
		templatesDir: templatesDir,
		storage:      store,
		logger:       logger.With("system", "generation"),
	}
}

// SetFlatten controls whether generated forms have their fields locked
// read-only.
func (s *Service) SetFlatten(flatten bool) {
	s.flatten = flatten
}

// GenerateForms fills the requested ACORD forms for a submission. When
// formTypes is empty the forms are detected from the submission's data.
// Per-form failures are reported in the outputs, never as an error: a
// run where every form fails still returns normally so the caller can
// surface the per-form errors. The returned error is non-nil only when
// the submission carries no applicant data to fill from.
func (s *Service) GenerateForms(
	ctx context.Context,
	sub *submission.Submission,
	formTypes []string,
) ([]FormOutput, error) {
	canonical := sub.CanonicalView()

	if _, ok := canonical["applicant"]; !ok {
		return nil, ErrNoApplicantData
	}

	if len(formTypes) == 0 {
		formTypes = DetectForms(canonical)
	}

	outputs := make([]FormOutput, 0, len(formTypes))
	succeeded := 0

	for _, formType := range formTypes {
		output := s.generateForm(ctx, sub, canonical, formType)
		if output.Error == "" {
			succeeded++
		}
		outputs = append(outputs, output)
	}

	s.logger.Info("forms generated",
		"id", sub.ID,
		"requested", len(formTypes),
		"succeeded", succeeded,
	)
	if succeeded == 0 {
		s.logger.Warn("no forms generated", "id", sub.ID)
	}

	return outputs, nil
}

func (s *Service) generateForm(
	ctx context.Context,
	sub *submission.Submission,
	canonical map[string]any,
	formType string,
) FormOutput {
	mapping, err := Mapping(formType)
	if err != nil {
		return FormOutput{FormType: formType, Error: err.Error()}
	}

	output := FormOutput{
		FormType:        formType,
		Name:            mapping.Name,
		Resolution:      Resolve(canonical, mapping),
		MissingRequired: mapping.MissingRequired(canonical),
	}

	if len(output.MissingRequired) > 0 {
		s.logger.Warn("form missing required fields",
			"form", formType,
			"missing", output.MissingRequired,
		)
	}

	template, err := s.openTemplate(mapping.Template)
	if err != nil {
		s.logger.Warn("form template unavailable", "form", formType, "error", err)
		output.Error = err.Error()
		return output
	}

	filled, fill, err := FillTemplate(template, output.Resolution.Fields, s.flatten)
	if err != nil {
		s.logger.Warn("form fill failed", "form", formType, "error", err)
		output.Error = err.Error()
		return output
	}
	output.Fill = fill

	filename := fmt.Sprintf("acord_%s_%s.pdf", formType, sub.ID)
	key := fmt.Sprintf("submissions/%s/generated/%s", sub.ID, filename)

	meta, err := s.storage.Upload(ctx, key, bytes.NewReader(filled), "application/pdf")
	if err != nil {
		s.logger.Warn("form upload failed", "form", formType, "key", key, "error", err)
		output.Error = fmt.Sprintf("store generated form: %v", err)
		return output
	}

	ref := submission.FileRef{
		Filename:    filename,
		StorageKey:  key,
		URL:         meta.URL,
		ContentType: "application/pdf",
		SizeBytes:   int64(len(filled)),
		FormType:    formType,
		CreatedAt:   time.Now().UTC(),
	}
	sub.AddGeneratedFile(ref)
	output.Ref = &ref

	return output
}

// openTemplate loads a form template into memory so the filler can seek
// through it.
func (s *Service) openTemplate(name string) (io.ReadSeeker, error) {
	path := filepath.Join(s.templatesDir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, name)
		}
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}

	return bytes.NewReader(data), nil
}
