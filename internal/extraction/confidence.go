package extraction

import "math"

// anchorBoost rewards categories whose anchor field came back populated:
// a business name for the applicant, a street address for a location.
// Extractions carrying those fields are far more likely to be on-target
// than ones that only filled peripheral keys.
const anchorBoost = 0.1

var anchorFields = []string{"business_name", "address_line1"}

// categoryConfidence scores one extracted category map as the fraction
// of returned keys that hold usable values, boosted when an anchor field
// is populated, capped at 1.0, and rounded to two decimals. A model key
// named "confidence" is the model grading itself and is excluded.
func categoryConfidence(raw map[string]any) float64 {
	if len(raw) == 0 {
		return 0
	}

	total := 0
	populated := 0
	boost := 0.0

	for key, value := range raw {
		if key == "confidence" {
			continue
		}
		total++
		if !populatedValue(value) {
			continue
		}
		populated++
		for _, anchor := range anchorFields {
			if key == anchor {
				boost = anchorBoost
			}
		}
	}

	if total == 0 {
		return 0
	}

	score := float64(populated)/float64(total) + boost
	if score > 1.0 {
		score = 1.0
	}
	return round2(score)
}

// listConfidence scores a repeating category as the mean of its row scores.
func listConfidence(rows []map[string]any) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0.0
	for _, row := range rows {
		sum += categoryConfidence(row)
	}
	return round2(sum / float64(len(rows)))
}

// Score fills in the per-category and overall confidence for a
// document extraction. Overall is the mean across the categories that
// are present; a document with no categories scores zero.
func (doc *DocumentExtraction) Score() {
	scores := map[string]float64{}

	if len(doc.Applicant) > 0 {
		scores[CategoryApplicant] = categoryConfidence(doc.Applicant)
	}
	if len(doc.Locations) > 0 {
		scores[CategoryLocations] = listConfidence(doc.Locations)
	}
	if len(doc.Coverage) > 0 {
		scores[CategoryCoverage] = categoryConfidence(doc.Coverage)
	}
	if len(doc.LossHistory) > 0 {
		scores[CategoryLossHistory] = listConfidence(doc.LossHistory)
	}
	if len(doc.WorkersComp) > 0 {
		scores[CategoryWorkersComp] = categoryConfidence(doc.WorkersComp)
	}

	doc.Confidence = scores

	if len(scores) == 0 {
		doc.OverallConfidence = 0
		return
	}

	sum := 0.0
	for _, score := range scores {
		sum += score
	}
	doc.OverallConfidence = round2(sum / float64(len(scores)))
}

// batchConfidence averages the overall confidence of completed
// documents; a batch with no completed documents scores zero.
func batchConfidence(docs []DocumentExtraction) float64 {
	sum := 0.0
	count := 0
	for i := range docs {
		if docs[i].Failed() {
			continue
		}
		sum += docs[i].OverallConfidence
		count++
	}
	if count == 0 {
		return 0
	}
	return round2(sum / float64(count))
}

// populatedValue reports whether a raw extracted value carries data.
func populatedValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
