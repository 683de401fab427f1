package generation

// DetectForms decides which ACORD forms a submission's canonical data
// can populate. Every submission gets the ACORD 125 application; the
// section forms are added when the data carries the matching coverage
// signals. The canonical view only emits populated keys, so key
// presence is a reliable detection signal.
func DetectForms(data map[string]any) []string {
	forms := []string{Form125}

	if hasLiabilityData(data) {
		forms = append(forms, Form126)
	}
	if hasWorkersCompData(data) {
		forms = append(forms, Form130)
	}
	if hasPropertyData(data) {
		forms = append(forms, Form140)
	}

	return forms
}

func hasLiabilityData(data map[string]any) bool {
	limits, ok := data["limits"].(map[string]any)
	if !ok {
		return false
	}
	for _, key := range []string{
		"each_occurrence", "general_aggregate", "products_aggregate",
		"personal_adv_injury", "medical_expense", "damage_to_premises",
	} {
		if _, present := limits[key]; present {
			return true
		}
	}
	return false
}

func hasWorkersCompData(data map[string]any) bool {
	wc, ok := data["workers_comp"].(map[string]any)
	if !ok {
		return false
	}
	if rows, ok := lookupRows(wc, "states"); ok && len(rows) > 0 {
		return true
	}
	_, present := wc["total_employees"]
	return present
}

func hasPropertyData(data map[string]any) bool {
	rows, ok := lookupRows(data, "locations")
	if !ok {
		return false
	}
	for _, row := range rows {
		for _, key := range []string{
			"building_limit", "contents_limit", "business_income_limit",
			"construction_type", "protection_class",
		} {
			if _, present := row[key]; present {
				return true
			}
		}
	}
	return false
}
