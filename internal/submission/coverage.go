package submission

import "strings"

// Coverage captures the requested policy terms, limits, deductibles,
// and options for a submission.
type Coverage struct {
	PolicyType       string `json:"policy_type,omitempty"`
	EffectiveDate    *Date  `json:"effective_date,omitempty"`
	ExpirationDate   *Date  `json:"expiration_date,omitempty"`
	PolicyTermMonths *int   `json:"policy_term_months,omitempty"`

	BuildingLimit           *float64 `json:"building_limit,omitempty"`
	ContentsLimit           *float64 `json:"contents_limit,omitempty"`
	BusinessIncomeLimit     *float64 `json:"business_income_limit,omitempty"`
	ExtraExpenseLimit       *float64 `json:"extra_expense_limit,omitempty"`
	EquipmentBreakdownLimit *float64 `json:"equipment_breakdown_limit,omitempty"`

	BuildingDeductible       *float64 `json:"building_deductible,omitempty"`
	ContentsDeductible       *float64 `json:"contents_deductible,omitempty"`
	BusinessIncomeDeductible string   `json:"business_income_deductible,omitempty"`
	WindHailDeductible       string   `json:"wind_hail_deductible,omitempty"`
	FloodDeductible          *float64 `json:"flood_deductible,omitempty"`
	EarthquakeDeductible     string   `json:"earthquake_deductible,omitempty"`
	AllOtherPerilsDeductible *float64 `json:"all_other_perils_deductible,omitempty"`

	GeneralAggregateLimit  *float64 `json:"general_aggregate_limit,omitempty"`
	ProductsAggregateLimit *float64 `json:"products_aggregate_limit,omitempty"`
	EachOccurrenceLimit    *float64 `json:"each_occurrence_limit,omitempty"`
	PersonalInjuryLimit    *float64 `json:"personal_injury_limit,omitempty"`
	MedicalPaymentsLimit   *float64 `json:"medical_payments_limit,omitempty"`
	DamageToPremisesLimit  *float64 `json:"damage_to_premises_limit,omitempty"`

	PropertyInTransit  *float64 `json:"property_in_transit,omitempty"`
	AccountsReceivable *float64 `json:"accounts_receivable,omitempty"`
	ValuablePapers     *float64 `json:"valuable_papers,omitempty"`
	FineArts           *float64 `json:"fine_arts,omitempty"`
	Signs              *float64 `json:"signs,omitempty"`
	OutdoorProperty    *float64 `json:"outdoor_property,omitempty"`
	DebrisRemoval      *float64 `json:"debris_removal,omitempty"`
	PollutantCleanup   *float64 `json:"pollutant_cleanup,omitempty"`
	Spoilage           *float64 `json:"spoilage,omitempty"`

	ReplacementCost *bool `json:"replacement_cost,omitempty"`
	ActualCashValue *bool `json:"actual_cash_value,omitempty"`
	AgreedValue     *bool `json:"agreed_value,omitempty"`
	BlanketCoverage *bool `json:"blanket_coverage,omitempty"`
	InflationGuard  *bool `json:"inflation_guard,omitempty"`

	CoinsurancePercentage *int  `json:"coinsurance_percentage,omitempty"`
	CoinsuranceWaived     *bool `json:"coinsurance_waived,omitempty"`

	OrdinanceOrLawCoverage     *float64 `json:"ordinance_or_law_coverage,omitempty"`
	UtilityServicesTimeElement *float64 `json:"utility_services_time_element,omitempty"`
	ElectronicData             *float64 `json:"electronic_data,omitempty"`
	EmployeeDishonesty         *float64 `json:"employee_dishonesty,omitempty"`
	Forgery                    *float64 `json:"forgery,omitempty"`

	FloodCoverage      *bool `json:"flood_coverage,omitempty"`
	EarthquakeCoverage *bool `json:"earthquake_coverage,omitempty"`
	TerrorismCoverage  *bool `json:"terrorism_coverage,omitempty"`
	CyberCoverage      *bool `json:"cyber_coverage,omitempty"`

	EstimatedAnnualPremium *float64 `json:"estimated_annual_premium,omitempty"`
	PremiumBasis           string   `json:"premium_basis,omitempty"`
	PremiumBasisAmount     *float64 `json:"premium_basis_amount,omitempty"`

	SpecialConditions string   `json:"special_conditions,omitempty"`
	Exclusions        []string `json:"exclusions,omitempty"`
	Endorsements      []string `json:"endorsements,omitempty"`
}

// Normalize trims string fields and applies the standard annual term
// default when no term was extracted.
func (c *Coverage) Normalize() {
	fields := []*string{
		&c.PolicyType, &c.BusinessIncomeDeductible, &c.WindHailDeductible,
		&c.EarthquakeDeductible, &c.PremiumBasis, &c.SpecialConditions,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}

	if c.PolicyTermMonths == nil {
		term := 12
		c.PolicyTermMonths = &term
	}
}

// HasPropertyCoverage reports whether any property limit is present.
func (c *Coverage) HasPropertyCoverage() bool {
	return c.BuildingLimit != nil || c.ContentsLimit != nil || c.BusinessIncomeLimit != nil
}

// HasLiabilityCoverage reports whether any general liability limit is present.
func (c *Coverage) HasLiabilityCoverage() bool {
	return c.GeneralAggregateLimit != nil || c.EachOccurrenceLimit != nil || c.PersonalInjuryLimit != nil
}

// IsComplete reports whether the coverage carries a policy type, both
// policy dates, and at least one line of limits.
func (c *Coverage) IsComplete() bool {
	return c.PolicyType != "" &&
		c.EffectiveDate != nil &&
		c.ExpirationDate != nil &&
		(c.HasPropertyCoverage() || c.HasLiabilityCoverage())
}

// MissingFields lists the critical fields the coverage still lacks.
func (c *Coverage) MissingFields() []string {
	var missing []string
	if c.PolicyType == "" {
		missing = append(missing, "policy_type")
	}
	if c.EffectiveDate == nil {
		missing = append(missing, "effective_date")
	}
	if c.ExpirationDate == nil {
		missing = append(missing, "expiration_date")
	}
	if !c.HasPropertyCoverage() && !c.HasLiabilityCoverage() {
		missing = append(missing, "coverage_limits")
	}
	return missing
}
