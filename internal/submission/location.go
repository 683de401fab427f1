package submission

import "strings"

// PropertyLocation describes a single insured premises with its
// construction, protection, and valuation details.
type PropertyLocation struct {
	LocationNumber string `json:"location_number,omitempty"`

	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country,omitempty"`
	County       string `json:"county,omitempty"`

	BuildingDescription string `json:"building_description,omitempty"`
	YearBuilt           *int   `json:"year_built,omitempty"`
	ConstructionType    string `json:"construction_type,omitempty"`
	NumberOfStories     *int   `json:"number_of_stories,omitempty"`
	TotalSquareFeet     *int   `json:"total_square_feet,omitempty"`
	OccupancyType       string `json:"occupancy_type,omitempty"`

	ProtectionClass       string   `json:"protection_class,omitempty"`
	DistanceToFireStation *float64 `json:"distance_to_fire_station,omitempty"`
	DistanceToHydrant     *int     `json:"distance_to_hydrant,omitempty"`
	SprinklerSystem       *bool    `json:"sprinkler_system,omitempty"`
	AlarmSystem           *bool    `json:"alarm_system,omitempty"`
	SecuritySystem        *bool    `json:"security_system,omitempty"`
	FireAlarm             *bool    `json:"fire_alarm,omitempty"`
	BurglarAlarm          *bool    `json:"burglar_alarm,omitempty"`

	BuildingValue       *float64 `json:"building_value,omitempty"`
	ContentsValue       *float64 `json:"contents_value,omitempty"`
	BusinessIncomeValue *float64 `json:"business_income_value,omitempty"`
	TotalInsuredValue   *float64 `json:"total_insured_value,omitempty"`

	Basement         *bool  `json:"basement,omitempty"`
	BasementFinished *bool  `json:"basement_finished,omitempty"`
	RoofType         string `json:"roof_type,omitempty"`
	RoofYear         *int   `json:"roof_year,omitempty"`
	HeatingType      string `json:"heating_type,omitempty"`
	CoolingType      string `json:"cooling_type,omitempty"`
	ElectricalYear   *int   `json:"electrical_year,omitempty"`
	PlumbingYear     *int   `json:"plumbing_year,omitempty"`
	UpdatesWiring    *bool  `json:"updates_wiring,omitempty"`
	UpdatesPlumbing  *bool  `json:"updates_plumbing,omitempty"`
	UpdatesHeating   *bool  `json:"updates_heating,omitempty"`
	UpdatesRoof      *bool  `json:"updates_roof,omitempty"`

	PriorLosses       *bool  `json:"prior_losses,omitempty"`
	NumberOfEmployees *int   `json:"number_of_employees,omitempty"`
	HoursOfOperation  string `json:"hours_of_operation,omitempty"`
}

// Normalize trims string fields, uppercases the state code, applies the
// USA country default, and recomputes the total insured value when the
// source documents did not provide one.
func (l *PropertyLocation) Normalize() {
	fields := []*string{
		&l.LocationNumber, &l.AddressLine1, &l.AddressLine2, &l.City,
		&l.State, &l.ZipCode, &l.County, &l.BuildingDescription,
		&l.ConstructionType, &l.OccupancyType, &l.ProtectionClass,
		&l.RoofType, &l.HeatingType, &l.CoolingType, &l.HoursOfOperation,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}

	l.State = strings.ToUpper(l.State)

	if l.Country == "" {
		l.Country = "USA"
	}

	if l.TotalInsuredValue == nil {
		tiv := l.SumInsuredValues()
		if tiv > 0 {
			l.TotalInsuredValue = &tiv
		}
	}
}

// SumInsuredValues totals the building, contents, and business income
// values that are present.
func (l *PropertyLocation) SumInsuredValues() float64 {
	var total float64
	for _, v := range []*float64{l.BuildingValue, l.ContentsValue, l.BusinessIncomeValue} {
		if v != nil {
			total += *v
		}
	}
	return total
}

// TIV returns the total insured value, falling back to the sum of the
// component values when no explicit total was extracted.
func (l *PropertyLocation) TIV() float64 {
	if l.TotalInsuredValue != nil {
		return *l.TotalInsuredValue
	}
	return l.SumInsuredValues()
}

// HasCompleteAddress reports whether street, city, state, and ZIP are present.
func (l *PropertyLocation) HasCompleteAddress() bool {
	return l.AddressLine1 != "" && l.City != "" && l.State != "" && l.ZipCode != ""
}

// IsComplete reports whether the location carries enough data for a
// property application: full address, construction basics, and a
// positive insured value.
func (l *PropertyLocation) IsComplete() bool {
	return l.HasCompleteAddress() &&
		l.YearBuilt != nil &&
		l.ConstructionType != "" &&
		l.OccupancyType != "" &&
		l.TotalSquareFeet != nil &&
		l.TIV() > 0
}

// MissingFields lists the critical fields the location still lacks.
func (l *PropertyLocation) MissingFields() []string {
	var missing []string
	if !l.HasCompleteAddress() {
		missing = append(missing, "complete_address")
	}
	if l.YearBuilt == nil {
		missing = append(missing, "year_built")
	}
	if l.ConstructionType == "" {
		missing = append(missing, "construction_type")
	}
	if l.OccupancyType == "" {
		missing = append(missing, "occupancy_type")
	}
	if l.TotalSquareFeet == nil {
		missing = append(missing, "total_square_feet")
	}
	if l.TIV() <= 0 {
		missing = append(missing, "total_insured_value")
	}
	return missing
}
