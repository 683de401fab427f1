package validation

import (
	"time"

	"github.com/google/uuid"

	"github.com/submitez/submitez/internal/submission"
)

// Completeness gates for the workflow. A submission can move to form
// generation at the lower threshold and to carrier delivery at the
// higher one, provided no blocking errors remain.
const (
	GenerationThreshold = 80
	CarrierThreshold    = 95
)

// EntityResult reports validation findings for one canonical entity.
type EntityResult struct {
	EntityType             string                       `json:"entity_type"`
	EntityID               string                       `json:"entity_id,omitempty"`
	IsValid                bool                         `json:"is_valid"`
	IsComplete             bool                         `json:"is_complete"`
	CompletenessPercentage int                          `json:"completeness_percentage"`
	MissingFields          []string                     `json:"missing_fields,omitempty"`
	Errors                 []submission.ValidationIssue `json:"errors"`
	Warnings               []submission.ValidationIssue `json:"warnings"`
}

// Result reports validation findings for a whole submission.
type Result struct {
	SubmissionID           uuid.UUID                    `json:"submission_id"`
	IsValid                bool                         `json:"is_valid"`
	IsComplete             bool                         `json:"is_complete"`
	CompletenessPercentage int                          `json:"completeness_percentage"`
	DataQualityScore       float64                      `json:"data_quality_score"`
	Errors                 []submission.ValidationIssue `json:"errors"`
	Warnings               []submission.ValidationIssue `json:"warnings"`
	Info                   []submission.ValidationIssue `json:"info"`
	BlockingErrors         []submission.ValidationIssue `json:"blocking_errors"`
	EntityValidations      []EntityResult               `json:"entity_validations"`
	TotalErrors            int                          `json:"total_errors"`
	TotalWarnings          int                          `json:"total_warnings"`
	TotalInfo              int                          `json:"total_info"`
	CanProceedToGeneration bool                         `json:"can_proceed_to_generation"`
	CanSubmitToCarrier     bool                         `json:"can_submit_to_carrier"`
	ValidatedAt            time.Time                    `json:"validated_at"`
}

// finalize derives the aggregate verdicts from the collected issues.
func (r *Result) finalize(completeness int) {
	r.CompletenessPercentage = completeness

	for _, issue := range r.Errors {
		if issue.Blocking {
			r.BlockingErrors = append(r.BlockingErrors, issue)
		}
	}

	r.TotalErrors = len(r.Errors)
	r.TotalWarnings = len(r.Warnings)
	r.TotalInfo = len(r.Info)

	r.IsValid = len(r.BlockingErrors) == 0
	// Completeness and validity are independent verdicts; the proceed
	// gates below require both.
	r.IsComplete = completeness >= GenerationThreshold
	r.CanProceedToGeneration = r.IsValid && completeness >= GenerationThreshold
	r.CanSubmitToCarrier = r.IsValid && completeness >= CarrierThreshold
	r.DataQualityScore = qualityScore(r.TotalErrors, r.TotalWarnings, completeness)
	r.ValidatedAt = time.Now().UTC()
}

// qualityScore starts from completeness and deducts per finding.
func qualityScore(errors, warnings, completeness int) float64 {
	score := completeness - errors*5 - warnings*2
	if score < 0 {
		score = 0
	}
	return float64(score)
}
