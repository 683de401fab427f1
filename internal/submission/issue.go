package submission

// Issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Issue categories.
const (
	CategoryRequiredField    = "required_field"
	CategoryInvalidFormat    = "invalid_format"
	CategoryInvalidValue     = "invalid_value"
	CategoryInconsistentData = "inconsistent_data"
	CategoryBusinessRule     = "business_rule"
)

// ValidationIssue is a single finding against a submission field. Only
// blocking issues prevent form generation; warnings and info surface to
// the underwriter but do not gate the pipeline.
type ValidationIssue struct {
	FieldPath     string   `json:"field_path"`
	Severity      string   `json:"severity"`
	Category      string   `json:"category"`
	Message       string   `json:"message"`
	Blocking      bool     `json:"blocking,omitempty"`
	CurrentValue  any      `json:"current_value,omitempty"`
	RelatedFields []string `json:"related_fields,omitempty"`
	RuleID        string   `json:"rule_id,omitempty"`
}
