package submission

// Status tracks a submission through the intake pipeline.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusUploaded   Status = "uploaded"
	StatusExtracting Status = "extracting"
	StatusExtracted  Status = "extracted"
	StatusValidating Status = "validating"
	StatusValidated  Status = "validated"
	StatusGenerating Status = "generating"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// transitions defines the allowed status changes. Every status may move
// to error; error may resume at any processing stage so a failed run can
// be retried without recreating the submission.
var transitions = map[Status][]Status{
	StatusDraft:      {StatusUploaded},
	StatusUploaded:   {StatusUploaded, StatusExtracting},
	StatusExtracting: {StatusExtracted},
	StatusExtracted:  {StatusUploaded, StatusExtracting, StatusValidating},
	StatusValidating: {StatusValidated},
	StatusValidated:  {StatusUploaded, StatusValidating, StatusGenerating},
	StatusGenerating: {StatusCompleted},
	StatusCompleted:  {StatusValidating},
	StatusError:      {StatusUploaded, StatusExtracting, StatusValidating, StatusGenerating},
}

// Valid reports whether s is a recognized pipeline status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusUploaded, StatusExtracting, StatusExtracted,
		StatusValidating, StatusValidated, StatusGenerating,
		StatusCompleted, StatusError:
		return true
	}
	return false
}

// Terminal reports whether the pipeline has finished with this submission.
func (s Status) Terminal() bool {
	return s == StatusCompleted
}

// CanTransition reports whether a submission in status s may move to next.
func (s Status) CanTransition(next Status) bool {
	if !next.Valid() {
		return false
	}
	if next == StatusError {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
