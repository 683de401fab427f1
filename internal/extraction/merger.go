package extraction

import (
	"encoding/json"
	"fmt"

	"github.com/submitez/submitez/internal/submission"
)

// MergedResult is the arbitrated union of every document's extraction,
// decoded into the canonical entities.
type MergedResult struct {
	Applicant   *submission.Applicant
	Locations   []submission.PropertyLocation
	Coverage    *submission.Coverage
	LossHistory []submission.LossRecord
	WorkersComp map[string]any

	Documents  []DocumentExtraction
	Confidence float64
}

// Merge combines per-document extractions into a single result. The
// singular categories (applicant, coverage, workers comp) are arbitrated
// whole: the candidate with the strictly highest category confidence
// wins outright, ties keep the first document's candidate, and no field
// survives from a losing candidate. The repeating categories (locations,
// loss history) accumulate across documents. Failed documents contribute
// nothing but stay in the result for reporting.
func Merge(docs []DocumentExtraction) (*MergedResult, error) {
	var applicant map[string]any
	applicantConf := -1.0
	var coverage map[string]any
	coverageConf := -1.0
	var workersComp map[string]any
	workersCompConf := -1.0

	var locations []map[string]any
	var losses []map[string]any

	for i := range docs {
		doc := &docs[i]
		if doc.Failed() {
			continue
		}

		if conf := doc.Confidence[CategoryApplicant]; categoryPopulated(doc.Applicant) && conf > applicantConf {
			applicant = doc.Applicant
			applicantConf = conf
		}
		if conf := doc.Confidence[CategoryCoverage]; categoryPopulated(doc.Coverage) && conf > coverageConf {
			coverage = doc.Coverage
			coverageConf = conf
		}
		if conf := doc.Confidence[CategoryWorkersComp]; categoryPopulated(doc.WorkersComp) && conf > workersCompConf {
			workersComp = doc.WorkersComp
			workersCompConf = conf
		}

		locations = append(locations, doc.Locations...)
		losses = append(losses, doc.LossHistory...)
	}

	result := &MergedResult{
		Documents:  docs,
		Confidence: batchConfidence(docs),
	}
	if len(workersComp) > 0 {
		result.WorkersComp = workersComp
	}

	if len(applicant) > 0 {
		var a submission.Applicant
		if err := decodeEntity(applicant, &a, CategoryApplicant); err != nil {
			return nil, err
		}
		result.Applicant = &a
	}

	if len(coverage) > 0 {
		var c submission.Coverage
		if err := decodeEntity(coverage, &c, CategoryCoverage); err != nil {
			return nil, err
		}
		result.Coverage = &c
	}

	for _, raw := range locations {
		var loc submission.PropertyLocation
		if err := decodeEntity(raw, &loc, CategoryLocations); err != nil {
			return nil, err
		}
		result.Locations = append(result.Locations, loc)
	}

	for _, raw := range losses {
		var loss submission.LossRecord
		if err := decodeEntity(raw, &loss, CategoryLossHistory); err != nil {
			return nil, err
		}
		result.LossHistory = append(result.LossHistory, loss)
	}

	return result, nil
}

// categoryPopulated reports whether a category map carries any data
// beyond its confidence annotation. An unpopulated candidate never
// displaces one that holds data, whatever its confidence claims.
func categoryPopulated(m map[string]any) bool {
	for key, value := range m {
		if key == "confidence" {
			continue
		}
		if populatedValue(value) {
			return true
		}
	}
	return false
}

// decodeEntity round-trips a raw map through JSON into the typed entity.
// The entity structs share field names with the extraction schema, so
// this is the one place raw model output becomes domain data.
func decodeEntity(raw map[string]any, dst any, category string) error {
	delete(raw, "confidence")

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode %s extraction: %w", category, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedData, category, err)
	}
	return nil
}
