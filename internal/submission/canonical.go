package submission

// CanonicalView flattens a submission into the nested document structure
// the form field resolver walks. Only populated values are emitted, so
// presence of a key is a reliable signal that extraction produced data
// for it.
func (s *Submission) CanonicalView() map[string]any {
	view := map[string]any{}

	if a := s.applicantView(); len(a) > 0 {
		view["applicant"] = a
	}
	if c := s.coverageView(); len(c) > 0 {
		view["coverage"] = c
	}
	if l := s.limitsView(); len(l) > 0 {
		view["limits"] = l
	}
	if locs := s.locationsView(); len(locs) > 0 {
		view["locations"] = locs
	}
	if losses := s.lossHistoryView(); len(losses) > 0 {
		view["loss_history"] = losses
	}
	if wc := s.workersCompView(); len(wc) > 0 {
		view["workers_comp"] = wc
	}

	broker := map[string]any{}
	setString(broker, "name", s.BrokerName)
	setString(broker, "email", s.BrokerEmail)
	if len(broker) > 0 {
		view["broker"] = broker
	}

	meta := map[string]any{
		"submission_id": s.ID.String(),
		"date":          Today().ISO(),
	}
	setString(meta, "remarks", s.Notes)
	if s.Applicant != nil && s.Applicant.BusinessName != "" {
		meta["applicant_signature"] = s.Applicant.BusinessName
		meta["signature_date"] = Today().ISO()
	}
	view["submission"] = meta

	return view
}

func (s *Submission) applicantView() map[string]any {
	if s.Applicant == nil {
		return nil
	}
	a := s.Applicant

	view := map[string]any{}
	setString(view, "business_name", a.BusinessName)
	setString(view, "dba_name", a.DBAName)
	setString(view, "fein", a.FEIN)
	setString(view, "naics_code", a.NAICSCode)
	setString(view, "entity_type", a.BusinessType)
	setString(view, "website", a.Website)
	setString(view, "contact_name", a.ContactName)
	setString(view, "contact_title", a.ContactTitle)
	setString(view, "email", a.Email)
	setString(view, "phone", a.Phone)
	setString(view, "fax", a.Fax)
	setString(view, "description", a.Description)
	setInt(view, "years_in_business", a.YearsInBusiness)

	mailing := addressView(
		a.MailingAddressLine1, a.MailingAddressLine2,
		a.MailingCity, a.MailingState, a.MailingZip,
	)
	if mailing != nil {
		view["mailing"] = mailing
	}

	physical := addressView(
		a.PhysicalAddressLine1, a.PhysicalAddressLine2,
		a.PhysicalCity, a.PhysicalState, a.PhysicalZip,
	)
	if physical != nil {
		view["physical"] = physical
	}

	if total := s.totalEmployees(); total > 0 {
		view["num_employees"] = total
	}

	return view
}

func (s *Submission) coverageView() map[string]any {
	if s.Coverage == nil {
		return nil
	}
	c := s.Coverage

	view := map[string]any{}
	setString(view, "policy_type", c.PolicyType)
	if c.EffectiveDate != nil {
		view["effective_date"] = c.EffectiveDate.ISO()
	}
	if c.ExpirationDate != nil {
		view["expiration_date"] = c.ExpirationDate.ISO()
	}
	setFloat(view, "estimated_premium", c.EstimatedAnnualPremium)

	// Per-location value rollups for the property section summary row.
	var building, contents, income float64
	for i := range s.Locations {
		loc := &s.Locations[i]
		if loc.BuildingValue != nil {
			building += *loc.BuildingValue
		}
		if loc.ContentsValue != nil {
			contents += *loc.ContentsValue
		}
		if loc.BusinessIncomeValue != nil {
			income += *loc.BusinessIncomeValue
		}
	}
	if building > 0 {
		view["total_building_limit"] = building
	}
	if contents > 0 {
		view["total_contents_limit"] = contents
	}
	if income > 0 {
		view["total_business_income"] = income
	}
	if tiv := s.TotalTIV(); tiv > 0 {
		view["total_insured_value"] = tiv
	}

	return view
}

func (s *Submission) limitsView() map[string]any {
	if s.Coverage == nil {
		return nil
	}
	c := s.Coverage

	view := map[string]any{}
	setFloat(view, "general_aggregate", c.GeneralAggregateLimit)
	setFloat(view, "products_aggregate", c.ProductsAggregateLimit)
	setFloat(view, "each_occurrence", c.EachOccurrenceLimit)
	setFloat(view, "personal_adv_injury", c.PersonalInjuryLimit)
	setFloat(view, "medical_expense", c.MedicalPaymentsLimit)
	setFloat(view, "damage_to_premises", c.DamageToPremisesLimit)
	setFloat(view, "deductible", c.AllOtherPerilsDeductible)
	return view
}

func (s *Submission) locationsView() []map[string]any {
	views := make([]map[string]any, 0, len(s.Locations))
	for i := range s.Locations {
		loc := &s.Locations[i]

		view := map[string]any{}
		setString(view, "location_number", loc.LocationNumber)
		setString(view, "county", loc.County)
		setString(view, "construction_type", loc.ConstructionType)
		setString(view, "occupancy_type", loc.OccupancyType)
		setString(view, "roof_type", loc.RoofType)
		setString(view, "protection_class", loc.ProtectionClass)
		setInt(view, "year_built", loc.YearBuilt)
		setInt(view, "num_stories", loc.NumberOfStories)
		setInt(view, "total_area_sq_ft", loc.TotalSquareFeet)
		setInt(view, "distance_to_hydrant", loc.DistanceToHydrant)
		setInt(view, "num_employees", loc.NumberOfEmployees)
		setFloat(view, "distance_to_fire_station", loc.DistanceToFireStation)
		setBool(view, "sprinkler_system", loc.SprinklerSystem)
		setBool(view, "fire_alarm", loc.FireAlarm)
		setBool(view, "burglar_alarm", loc.BurglarAlarm)
		setFloat(view, "building_limit", loc.BuildingValue)
		setFloat(view, "contents_limit", loc.ContentsValue)
		setFloat(view, "business_income_limit", loc.BusinessIncomeValue)
		if tiv := loc.TIV(); tiv > 0 {
			view["total_insured_value"] = tiv
		}

		if addr := addressView(loc.AddressLine1, loc.AddressLine2, loc.City, loc.State, loc.ZipCode); addr != nil {
			view["address"] = addr
		}

		views = append(views, view)
	}
	return views
}

func (s *Submission) lossHistoryView() []map[string]any {
	views := make([]map[string]any, 0, len(s.LossHistory))
	for i := range s.LossHistory {
		loss := &s.LossHistory[i]

		view := map[string]any{}
		if loss.LossDate != nil {
			view["date"] = loss.LossDate.ISO()
		}
		setFloat(view, "amount_paid", loss.PaidAmount)
		setFloat(view, "amount_reserved", loss.ReservedAmount)
		setString(view, "description", loss.LossDescription)
		setString(view, "status", loss.ClaimStatus)

		views = append(views, view)
	}
	return views
}

// workersCompView builds the payroll-by-state rows for the workers
// compensation application. Extraction may supply a workers_comp block
// directly; otherwise the rows are derived from location employee counts
// grouped by state.
func (s *Submission) workersCompView() map[string]any {
	if wc, ok := s.ExtractionMetadata["workers_comp"].(map[string]any); ok && len(wc) > 0 {
		return wc
	}

	type stateRow struct {
		state     string
		employees int
	}

	var rows []stateRow
	index := map[string]int{}
	for i := range s.Locations {
		loc := &s.Locations[i]
		if loc.State == "" || loc.NumberOfEmployees == nil {
			continue
		}
		if at, ok := index[loc.State]; ok {
			rows[at].employees += *loc.NumberOfEmployees
			continue
		}
		index[loc.State] = len(rows)
		rows = append(rows, stateRow{state: loc.State, employees: *loc.NumberOfEmployees})
	}

	if len(rows) == 0 {
		return nil
	}

	states := make([]map[string]any, 0, len(rows))
	total := 0
	for _, row := range rows {
		states = append(states, map[string]any{
			"state":     row.state,
			"employees": row.employees,
		})
		total += row.employees
	}

	return map[string]any{
		"total_employees": total,
		"states":          states,
	}
}

func (s *Submission) totalEmployees() int {
	total := 0
	for i := range s.Locations {
		if s.Locations[i].NumberOfEmployees != nil {
			total += *s.Locations[i].NumberOfEmployees
		}
	}
	return total
}

func addressView(line1, line2, city, state, postal string) map[string]any {
	if line1 == "" {
		return nil
	}
	view := map[string]any{"line1": line1}
	setString(view, "line2", line2)
	setString(view, "city", city)
	setString(view, "state", state)
	setString(view, "postal", postal)
	return view
}

func setString(view map[string]any, key, value string) {
	if value != "" {
		view[key] = value
	}
}

func setInt(view map[string]any, key string, value *int) {
	if value != nil {
		view[key] = *value
	}
}

func setFloat(view map[string]any, key string, value *float64) {
	if value != nil {
		view[key] = *value
	}
}

func setBool(view map[string]any, key string, value *bool) {
	if value != nil {
		view[key] = *value
	}
}
