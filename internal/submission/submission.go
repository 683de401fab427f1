// Package submission implements the insurance submission domain for
// SubmitEZ. It provides the canonical data model assembled from broker
// document extraction, workflow status tracking, data access, and HTTP
// endpoints for submission management.
package submission

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FileRef records a file attached to a submission, either uploaded by
// the broker or generated by the form filler.
type FileRef struct {
	Filename    string    `json:"filename"`
	StorageKey  string    `json:"storage_key"`
	URL         string    `json:"url,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes,omitempty"`
	FormType    string    `json:"form_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Submission aggregates everything known about one insurance
// application: the extracted canonical entities, attached files,
// validation results, and workflow state.
type Submission struct {
	ID     uuid.UUID `json:"id"`
	Status Status    `json:"status"`

	Applicant   *Applicant         `json:"applicant,omitempty"`
	Locations   []PropertyLocation `json:"locations"`
	Coverage    *Coverage          `json:"coverage,omitempty"`
	LossHistory []LossRecord       `json:"loss_history"`

	UploadedFiles  []FileRef `json:"uploaded_files"`
	GeneratedFiles []FileRef `json:"generated_files"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ExtractedAt *time.Time `json:"extracted_at,omitempty"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`

	ValidationErrors   []ValidationIssue `json:"validation_errors"`
	ValidationWarnings []ValidationIssue `json:"validation_warnings"`
	IsValid            bool              `json:"is_valid"`

	ExtractionMetadata   map[string]any `json:"extraction_metadata,omitempty"`
	ExtractionConfidence *float64       `json:"extraction_confidence,omitempty"`

	BrokerName             string `json:"broker_name,omitempty"`
	BrokerEmail            string `json:"broker_email,omitempty"`
	CarrierName            string `json:"carrier_name,omitempty"`
	EffectiveDateRequested string `json:"effective_date_requested,omitempty"`

	Notes         string `json:"notes,omitempty"`
	InternalNotes string `json:"internal_notes,omitempty"`
}

// NewSubmission creates an empty draft submission.
func NewSubmission() *Submission {
	now := time.Now().UTC()
	return &Submission{
		ID:        uuid.New(),
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateStatus moves the submission to the next workflow status,
// stamping the stage timestamp that status represents. Illegal
// transitions are rejected.
func (s *Submission) UpdateStatus(next Status) error {
	if !s.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, next)
	}

	now := time.Now().UTC()
	s.Status = next
	s.UpdatedAt = now

	switch next {
	case StatusExtracted:
		s.ExtractedAt = &now
	case StatusValidated:
		s.ValidatedAt = &now
	case StatusCompleted:
		s.GeneratedAt = &now
		s.SubmittedAt = &now
	}

	return nil
}

// AddUploadedFile records a broker upload and stamps the update time.
func (s *Submission) AddUploadedFile(ref FileRef) {
	s.UploadedFiles = append(s.UploadedFiles, ref)
	s.UpdatedAt = time.Now().UTC()
}

// AddGeneratedFile records a generated form, replacing any earlier
// output for the same form type.
func (s *Submission) AddGeneratedFile(ref FileRef) {
	for i, existing := range s.GeneratedFiles {
		if existing.FormType != "" && existing.FormType == ref.FormType {
			s.GeneratedFiles[i] = ref
			s.UpdatedAt = time.Now().UTC()
			return
		}
	}
	s.GeneratedFiles = append(s.GeneratedFiles, ref)
	s.UpdatedAt = time.Now().UTC()
}

// Normalize normalizes every entity on the submission and assigns
// location numbers to locations that arrived without one.
func (s *Submission) Normalize() {
	if s.Applicant != nil {
		s.Applicant.Normalize()
	}
	for i := range s.Locations {
		s.Locations[i].Normalize()
		if s.Locations[i].LocationNumber == "" {
			s.Locations[i].LocationNumber = fmt.Sprintf("%d", i+1)
		}
	}
	if s.Coverage != nil {
		s.Coverage.Normalize()
	}
	for i := range s.LossHistory {
		s.LossHistory[i].Normalize()
	}
}

// TotalTIV sums the total insured value across all locations.
func (s *Submission) TotalTIV() float64 {
	var total float64
	for i := range s.Locations {
		total += s.Locations[i].TIV()
	}
	return total
}

// TotalIncurredLosses sums incurred amounts across the loss history.
func (s *Submission) TotalIncurredLosses() float64 {
	var total float64
	for i := range s.LossHistory {
		total += s.LossHistory[i].IncurredAmount()
	}
	return total
}

// HasOpenClaims reports whether any loss record is still open or pending.
func (s *Submission) HasOpenClaims() bool {
	for i := range s.LossHistory {
		if s.LossHistory[i].IsOpen() {
			return true
		}
	}
	return false
}

// HasExtractedData reports whether extraction produced any entity data.
func (s *Submission) HasExtractedData() bool {
	return s.Applicant != nil ||
		len(s.Locations) > 0 ||
		s.Coverage != nil ||
		len(s.LossHistory) > 0
}

// SetValidationResults replaces the stored validation findings.
func (s *Submission) SetValidationResults(errors, warnings []ValidationIssue, isValid bool) {
	s.ValidationErrors = errors
	s.ValidationWarnings = warnings
	s.IsValid = isValid
	s.UpdatedAt = time.Now().UTC()
}
