package submission

import (
	"time"

	"github.com/google/uuid"
)

// Summary is the condensed projection returned by list and search
// endpoints: identity, workflow position, and headline figures without
// the full entity graph.
type Summary struct {
	ID                   uuid.UUID  `json:"id"`
	Status               Status     `json:"status"`
	ApplicantName        string     `json:"applicant_name,omitempty"`
	BrokerName           string     `json:"broker_name,omitempty"`
	CarrierName          string     `json:"carrier_name,omitempty"`
	LocationCount        int        `json:"location_count"`
	LossCount            int        `json:"loss_count"`
	UploadedFileCount    int        `json:"uploaded_file_count"`
	GeneratedFileCount   int        `json:"generated_file_count"`
	TotalInsuredValue    float64    `json:"total_insured_value"`
	IsValid              bool       `json:"is_valid"`
	ExtractionConfidence *float64   `json:"extraction_confidence,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	SubmittedAt          *time.Time `json:"submitted_at,omitempty"`
}

// Summarize builds the list projection for a submission.
func (s *Submission) Summarize() Summary {
	sum := Summary{
		ID:                   s.ID,
		Status:               s.Status,
		BrokerName:           s.BrokerName,
		CarrierName:          s.CarrierName,
		LocationCount:        len(s.Locations),
		LossCount:            len(s.LossHistory),
		UploadedFileCount:    len(s.UploadedFiles),
		GeneratedFileCount:   len(s.GeneratedFiles),
		TotalInsuredValue:    s.TotalTIV(),
		IsValid:              s.IsValid,
		ExtractionConfidence: s.ExtractionConfidence,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
		SubmittedAt:          s.SubmittedAt,
	}

	if s.Applicant != nil {
		sum.ApplicantName = s.Applicant.DisplayName()
	}

	return sum
}
