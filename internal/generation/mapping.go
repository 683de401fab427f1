package generation

import (
	"sort"
	"strconv"
	"strings"
)

// FieldMapping binds one canonical data path to a PDF form field.
// Target may carry an {n} placeholder for repeating rows, replaced with
// the 1-based row number during resolution. Format names an output
// format: "date:mm/dd/yyyy", "money", "money:$", or "number". Checkbox
// fields emit On when the source value is truthy and are omitted
// otherwise.
type FieldMapping struct {
	Target   string
	Format   string
	Checkbox bool
	On       string
	MaxRows  int
}

// FormMapping holds the complete field binding for one ACORD form.
// Fields is keyed by canonical data path; paths containing "[]" resolve
// once per row of the named group. Required lists the canonical paths
// the form needs populated before filling is worthwhile.
type FormMapping struct {
	FormType string
	Name     string
	Template string
	Fields   map[string]FieldMapping
	Required []string
}

// MissingRequired reports which of the form's required canonical paths
// are absent or empty in the data. Missing fields do not block filling;
// they surface in the generation output for the broker to resolve.
func (m FormMapping) MissingRequired(data map[string]any) []string {
	var missing []string
	for _, path := range m.Required {
		value, ok := lookup(data, path)
		if !ok || emptyValue(value) {
			missing = append(missing, path)
		}
	}
	return missing
}

func emptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []map[string]any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

// SourcePaths returns the mapping's canonical paths in stable order.
func (m FormMapping) SourcePaths() []string {
	paths := make([]string, 0, len(m.Fields))
	for path := range m.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// FieldNames expands every target template into the concrete PDF field
// names the form can receive.
func (m FormMapping) FieldNames() []string {
	var names []string
	for _, path := range m.SourcePaths() {
		fm := m.Fields[path]
		if !strings.Contains(fm.Target, "{n}") {
			names = append(names, fm.Target)
			continue
		}
		rows := fm.MaxRows
		if rows < 1 {
			rows = 1
		}
		for n := 1; n <= rows; n++ {
			names = append(names, strings.ReplaceAll(fm.Target, "{n}", strconv.Itoa(n)))
		}
	}
	return names
}

// Supported ACORD form types.
const (
	Form125 = "125"
	Form126 = "126"
	Form130 = "130"
	Form140 = "140"
)

var formMappings = map[string]FormMapping{
	Form125: acord125,
	Form126: acord126,
	Form130: acord130,
	Form140: acord140,
}

// Mapping returns the field mapping for an ACORD form type.
func Mapping(formType string) (FormMapping, error) {
	m, ok := formMappings[formType]
	if !ok {
		return FormMapping{}, ErrUnsupportedForm
	}
	return m, nil
}

// SupportedForms lists the ACORD form types the generator can fill.
func SupportedForms() []string {
	return []string{Form125, Form126, Form130, Form140}
}

// acord125 is the commercial insurance application.
var acord125 = FormMapping{
	FormType: Form125,
	Name:     "ACORD 125 - Commercial Insurance Application",
	Template: "acord_125.pdf",
	Required: []string{
		"applicant.business_name",
		"coverage.effective_date",
		"applicant.mailing.line1",
		"applicant.mailing.city",
		"applicant.mailing.state",
		"applicant.mailing.postal",
	},
	Fields: map[string]FieldMapping{
		"applicant.business_name":     {Target: "NamedInsured"},
		"applicant.dba_name":          {Target: "DBA"},
		"applicant.mailing.line1":     {Target: "MailingAddress"},
		"applicant.mailing.line2":     {Target: "MailingAddress2"},
		"applicant.mailing.city":      {Target: "City"},
		"applicant.mailing.state":     {Target: "State"},
		"applicant.mailing.postal":    {Target: "Zip"},
		"applicant.fein":              {Target: "FEIN"},
		"applicant.naics_code":        {Target: "NAICS"},
		"applicant.website":           {Target: "Website"},
		"applicant.contact_name":      {Target: "ContactName"},
		"applicant.phone":             {Target: "PhoneNumber"},
		"applicant.fax":               {Target: "FaxNumber"},
		"applicant.email":             {Target: "EmailAddress"},
		"applicant.description":       {Target: "DescriptionOfOperations"},
		"applicant.years_in_business": {Target: "YearsInBusiness"},
		"applicant.entity_type":       {Target: "EntityType"},
		"broker.name":                 {Target: "ProducerName"},
		"broker.email":                {Target: "ProducerEmail"},
		"coverage.effective_date":     {Target: "EffectiveDate", Format: "date:mm/dd/yyyy"},
		"coverage.expiration_date":    {Target: "ExpirationDate", Format: "date:mm/dd/yyyy"},
		"submission.date":             {Target: "ApplicationDate", Format: "date:mm/dd/yyyy"},
		"submission.remarks":          {Target: "Remarks"},
	},
}

// acord126 is the general liability section.
var acord126 = FormMapping{
	FormType: Form126,
	Name:     "ACORD 126 - Commercial General Liability Section",
	Template: "acord_126.pdf",
	Required: []string{
		"applicant.business_name",
		"coverage.effective_date",
		"limits.general_aggregate",
		"limits.each_occurrence",
	},
	Fields: map[string]FieldMapping{
		"applicant.business_name":  {Target: "NamedInsured"},
		"applicant.mailing.line1":  {Target: "MailingAddress"},
		"applicant.mailing.city":   {Target: "City"},
		"applicant.mailing.state":  {Target: "State"},
		"applicant.mailing.postal": {Target: "Zip"},
		"applicant.num_employees":  {Target: "TotalEmployees", Format: "number"},

		"limits.each_occurrence":     {Target: "EachOccurrence", Format: "money"},
		"limits.damage_to_premises":  {Target: "DamageToPremises", Format: "money"},
		"limits.medical_expense":     {Target: "MedicalExpense", Format: "money"},
		"limits.personal_adv_injury": {Target: "PersonalInjury", Format: "money"},
		"limits.general_aggregate":   {Target: "GeneralAggregate", Format: "money"},
		"limits.products_aggregate":  {Target: "ProductsAggregate", Format: "money"},
		"limits.deductible":          {Target: "Deductible", Format: "money"},

		"locations[].address.line1":    {Target: "PremisesAddress{n}", MaxRows: 2},
		"locations[].address.city":     {Target: "PremisesCity{n}", MaxRows: 2},
		"locations[].address.state":    {Target: "PremisesState{n}", MaxRows: 2},
		"locations[].address.postal":   {Target: "PremisesZip{n}", MaxRows: 2},
		"locations[].total_area_sq_ft": {Target: "PremisesAreaSqFt{n}", Format: "number", MaxRows: 2},

		"coverage.effective_date":  {Target: "EffectiveDate", Format: "date:mm/dd/yyyy"},
		"coverage.expiration_date": {Target: "ExpirationDate", Format: "date:mm/dd/yyyy"},
	},
}

// acord130 is the workers compensation application.
var acord130 = FormMapping{
	FormType: Form130,
	Name:     "ACORD 130 - Workers Compensation Application",
	Template: "acord_130.pdf",
	Required: []string{
		"applicant.business_name",
		"coverage.effective_date",
		"applicant.fein",
	},
	Fields: map[string]FieldMapping{
		"applicant.business_name":     {Target: "NamedInsured"},
		"applicant.dba_name":          {Target: "DBA"},
		"applicant.mailing.line1":     {Target: "MailingAddress"},
		"applicant.mailing.city":      {Target: "City"},
		"applicant.mailing.state":     {Target: "State"},
		"applicant.mailing.postal":    {Target: "Zip"},
		"applicant.fein":              {Target: "FEIN"},
		"applicant.years_in_business": {Target: "YearsInBusiness"},
		"applicant.entity_type":       {Target: "EntityType"},
		"applicant.naics_code":        {Target: "NAICS"},

		"workers_comp.total_employees":            {Target: "TotalEmployees", Format: "number"},
		"workers_comp.states[].state":             {Target: "State{n}", MaxRows: 3},
		"workers_comp.states[].employees":         {Target: "Employees{n}", Format: "number", MaxRows: 3},
		"workers_comp.states[].annual_payroll":    {Target: "AnnualPayroll{n}", Format: "money", MaxRows: 3},
		"workers_comp.states[].class_code":        {Target: "ClassCode{n}", MaxRows: 3},
		"workers_comp.states[].class_description": {Target: "ClassDescription{n}", MaxRows: 3},

		"coverage.effective_date":    {Target: "EffectiveDate", Format: "date:mm/dd/yyyy"},
		"coverage.expiration_date":   {Target: "ExpirationDate", Format: "date:mm/dd/yyyy"},
		"coverage.estimated_premium": {Target: "EstimatedPremium", Format: "money"},

		"loss_history[].date":            {Target: "LossDate{n}", Format: "date:mm/dd/yyyy", MaxRows: 2},
		"loss_history[].amount_paid":     {Target: "LossAmountPaid{n}", Format: "money", MaxRows: 2},
		"loss_history[].amount_reserved": {Target: "LossAmountReserved{n}", Format: "money", MaxRows: 2},
		"loss_history[].description":     {Target: "LossDescription{n}", MaxRows: 2},
		"loss_history[].status":          {Target: "LossStatus{n}", MaxRows: 2},

		"submission.applicant_signature": {Target: "ApplicantSignature"},
		"submission.signature_date":      {Target: "SignatureDate", Format: "date:mm/dd/yyyy"},
	},
}

// acord140 is the property section.
var acord140 = FormMapping{
	FormType: Form140,
	Name:     "ACORD 140 - Property Section",
	Template: "acord_140.pdf",
	Required: []string{
		"applicant.business_name",
		"coverage.effective_date",
		"locations",
	},
	Fields: map[string]FieldMapping{
		"applicant.business_name":  {Target: "NamedInsured"},
		"applicant.mailing.line1":  {Target: "MailingAddress"},
		"applicant.mailing.city":   {Target: "City"},
		"applicant.mailing.state":  {Target: "State"},
		"applicant.mailing.postal": {Target: "Zip"},

		"coverage.effective_date":  {Target: "EffectiveDate", Format: "date:mm/dd/yyyy"},
		"coverage.expiration_date": {Target: "ExpirationDate", Format: "date:mm/dd/yyyy"},

		"locations[].location_number":          {Target: "LocationNumber{n}", MaxRows: 3},
		"locations[].address.line1":            {Target: "LocationAddress{n}", MaxRows: 3},
		"locations[].address.city":             {Target: "LocationCity{n}", MaxRows: 3},
		"locations[].address.state":            {Target: "LocationState{n}", MaxRows: 3},
		"locations[].address.postal":           {Target: "LocationZip{n}", MaxRows: 3},
		"locations[].year_built":               {Target: "YearBuilt{n}", MaxRows: 3},
		"locations[].num_stories":              {Target: "NumberOfStories{n}", MaxRows: 1},
		"locations[].total_area_sq_ft":         {Target: "TotalAreaSqFt{n}", Format: "number", MaxRows: 1},
		"locations[].construction_type":        {Target: "ConstructionType{n}", MaxRows: 3},
		"locations[].occupancy_type":           {Target: "OccupancyType{n}", MaxRows: 2},
		"locations[].roof_type":                {Target: "RoofType{n}", MaxRows: 1},
		"locations[].protection_class":         {Target: "ProtectionClass{n}", MaxRows: 2},
		"locations[].distance_to_fire_station": {Target: "DistanceToFireStation{n}", MaxRows: 1},
		"locations[].distance_to_hydrant":      {Target: "DistanceToHydrant{n}", MaxRows: 1},

		"locations[].sprinkler_system": {Target: "SprinklerSystem{n}", Checkbox: true, On: "Yes", MaxRows: 1},
		"locations[].fire_alarm":       {Target: "FireAlarm{n}", Checkbox: true, On: "Yes", MaxRows: 1},
		"locations[].burglar_alarm":    {Target: "BurglarAlarm{n}", Checkbox: true, On: "Yes", MaxRows: 1},

		"locations[].building_limit":        {Target: "BuildingLimit{n}", Format: "money", MaxRows: 3},
		"locations[].contents_limit":        {Target: "ContentsLimit{n}", Format: "money", MaxRows: 3},
		"locations[].business_income_limit": {Target: "BusinessIncomeLimit{n}", Format: "money", MaxRows: 1},
		"locations[].total_insured_value":   {Target: "TotalInsuredValue{n}", Format: "money", MaxRows: 3},

		"coverage.total_building_limit":  {Target: "TotalBuildingLimit", Format: "money"},
		"coverage.total_contents_limit":  {Target: "TotalContentsLimit", Format: "money"},
		"coverage.total_business_income": {Target: "TotalBusinessIncome", Format: "money"},
		"coverage.total_insured_value":   {Target: "TotalInsuredValue", Format: "money"},
	},
}
