package extraction

// Document processing statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Extraction categories. Each category is a raw key/value map (or list
// of maps) as returned by the language model, kept untyped until merge
// so per-field confidence arbitration can compare values across
// documents before anything is decoded into domain entities.
const (
	CategoryApplicant   = "applicant"
	CategoryLocations   = "locations"
	CategoryCoverage    = "coverage"
	CategoryLossHistory = "loss_history"
	CategoryWorkersComp = "workers_comp"
)

// DocumentExtraction is the outcome of extracting one uploaded file.
type DocumentExtraction struct {
	Filename   string `json:"filename"`
	Processor  string `json:"processor,omitempty"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	TextLength int    `json:"text_length,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`

	Applicant   map[string]any   `json:"applicant,omitempty"`
	Locations   []map[string]any `json:"locations,omitempty"`
	Coverage    map[string]any   `json:"coverage,omitempty"`
	LossHistory []map[string]any `json:"loss_history,omitempty"`
	WorkersComp map[string]any   `json:"workers_comp,omitempty"`

	Confidence        map[string]float64 `json:"confidence,omitempty"`
	OverallConfidence float64            `json:"overall_confidence"`
}

// Failed reports whether this document produced no usable data.
func (d *DocumentExtraction) Failed() bool {
	return d.Status == StatusFailed
}

// applyPayload splits a validated model response into the document's
// category maps.
func (d *DocumentExtraction) applyPayload(raw map[string]any) {
	d.Applicant = asMap(raw[CategoryApplicant])
	d.Locations = asMapSlice(raw[CategoryLocations])
	d.Coverage = asMap(raw[CategoryCoverage])
	d.LossHistory = asMapSlice(raw[CategoryLossHistory])
	d.WorkersComp = asMap(raw[CategoryWorkersComp])
}

func asMap(value any) map[string]any {
	m, _ := value.(map[string]any)
	return m
}

func asMapSlice(value any) []map[string]any {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
