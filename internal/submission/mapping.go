package submission

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/submitez/submitez/pkg/query"
	"github.com/submitez/submitez/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "submissions", "s").
	Project("id", "ID").
	Project("status", "Status").
	Project("applicant", "Applicant").
	Project("locations", "Locations").
	Project("coverage", "Coverage").
	Project("loss_history", "LossHistory").
	Project("uploaded_files", "UploadedFiles").
	Project("generated_files", "GeneratedFiles").
	Project("validation_errors", "ValidationErrors").
	Project("validation_warnings", "ValidationWarnings").
	Project("is_valid", "IsValid").
	Project("extraction_metadata", "ExtractionMetadata").
	Project("extraction_confidence", "ExtractionConfidence").
	Project("broker_name", "BrokerName").
	Project("broker_email", "BrokerEmail").
	Project("carrier_name", "CarrierName").
	Project("effective_date_requested", "EffectiveDateRequested").
	Project("notes", "Notes").
	Project("internal_notes", "InternalNotes").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Project("submitted_at", "SubmittedAt").
	Project("extracted_at", "ExtractedAt").
	Project("validated_at", "ValidatedAt").
	Project("generated_at", "GeneratedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for submission queries.
// Nil fields are ignored. Status and IsValid use exact matching; the
// broker and carrier fields use case-insensitive contains matching.
type Filters struct {
	Status      *string `json:"status,omitempty"`
	BrokerName  *string `json:"broker_name,omitempty"`
	BrokerEmail *string `json:"broker_email,omitempty"`
	CarrierName *string `json:"carrier_name,omitempty"`
	IsValid     *bool   `json:"is_valid,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("BrokerName", f.BrokerName).
		WhereContains("BrokerEmail", f.BrokerEmail).
		WhereContains("CarrierName", f.CarrierName).
		WhereEquals("IsValid", f.IsValid)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if bn := values.Get("broker_name"); bn != "" {
		f.BrokerName = &bn
	}

	if be := values.Get("broker_email"); be != "" {
		f.BrokerEmail = &be
	}

	if cn := values.Get("carrier_name"); cn != "" {
		f.CarrierName = &cn
	}

	if iv := values.Get("is_valid"); iv != "" {
		if v, err := strconv.ParseBool(iv); err == nil {
			f.IsValid = &v
		}
	}

	return f
}

// jsonColumn unmarshals a JSONB column into dst, treating NULL as absent.
func jsonColumn(data []byte, dst any, column string) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s column: %w", column, err)
	}
	return nil
}

func scanSubmission(sc repository.Scanner) (Submission, error) {
	var (
		s          Submission
		applicant  []byte
		locations  []byte
		coverage   []byte
		losses     []byte
		uploaded   []byte
		generated  []byte
		valErrors  []byte
		valWarning []byte
		extraction []byte
	)

	err := sc.Scan(
		&s.ID,
		&s.Status,
		&applicant,
		&locations,
		&coverage,
		&losses,
		&uploaded,
		&generated,
		&valErrors,
		&valWarning,
		&s.IsValid,
		&extraction,
		&s.ExtractionConfidence,
		&s.BrokerName,
		&s.BrokerEmail,
		&s.CarrierName,
		&s.EffectiveDateRequested,
		&s.Notes,
		&s.InternalNotes,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.SubmittedAt,
		&s.ExtractedAt,
		&s.ValidatedAt,
		&s.GeneratedAt,
	)
	if err != nil {
		return s, err
	}

	for _, col := range []struct {
		data []byte
		dst  any
		name string
	}{
		{applicant, &s.Applicant, "applicant"},
		{locations, &s.Locations, "locations"},
		{coverage, &s.Coverage, "coverage"},
		{losses, &s.LossHistory, "loss_history"},
		{uploaded, &s.UploadedFiles, "uploaded_files"},
		{generated, &s.GeneratedFiles, "generated_files"},
		{valErrors, &s.ValidationErrors, "validation_errors"},
		{valWarning, &s.ValidationWarnings, "validation_warnings"},
		{extraction, &s.ExtractionMetadata, "extraction_metadata"},
	} {
		if err := jsonColumn(col.data, col.dst, col.name); err != nil {
			return s, err
		}
	}

	return s, nil
}

// marshalColumns renders the submission's document-valued fields as
// JSONB parameters for insert and update statements.
func marshalColumns(s *Submission) (map[string][]byte, error) {
	cols := map[string]any{
		"applicant":           s.Applicant,
		"locations":           s.Locations,
		"coverage":            s.Coverage,
		"loss_history":        s.LossHistory,
		"uploaded_files":      s.UploadedFiles,
		"generated_files":     s.GeneratedFiles,
		"validation_errors":   s.ValidationErrors,
		"validation_warnings": s.ValidationWarnings,
		"extraction_metadata": s.ExtractionMetadata,
	}

	out := make(map[string][]byte, len(cols))
	for name, v := range cols {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s column: %w", name, err)
		}
		out[name] = data
	}
	return out, nil
}
