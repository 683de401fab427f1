package validation_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/submitez/submitez/internal/submission"
	"github.com/submitez/submitez/internal/validation"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func newEngine() *validation.Engine {
	return validation.NewEngine(slog.Default())
}

func completeSubmission() *submission.Submission {
	sub := submission.NewSubmission()
	sub.Applicant = &submission.Applicant{
		BusinessName:        "Acme Manufacturing Inc",
		FEIN:                "12-3456789",
		NAICSCode:           "332710",
		Email:               "owner@acmemfg.com",
		Phone:               "(512) 555-0142",
		MailingAddressLine1: "100 Industrial Way",
		MailingCity:         "Houston",
		MailingState:        "TX",
		MailingZip:          "77001",
	}
	eff := submission.NewDate(2026, 1, 1)
	exp := submission.NewDate(2027, 1, 1)
	sub.Coverage = &submission.Coverage{
		PolicyType:     "property",
		EffectiveDate:  &eff,
		ExpirationDate: &exp,
		BuildingLimit:  floatPtr(2_000_000),
	}
	sub.Locations = []submission.PropertyLocation{{
		AddressLine1:      "100 Industrial Way",
		City:              "Houston",
		State:             "TX",
		ZipCode:           "77001",
		YearBuilt:         intPtr(1995),
		ConstructionType:  "Masonry",
		OccupancyType:     "Manufacturing",
		TotalSquareFeet:   intPtr(40_000),
		BuildingValue:     floatPtr(2_000_000),
		TotalInsuredValue: floatPtr(2_000_000),
	}}
	sub.Normalize()
	return sub
}

// fullSubmission fills nearly every field of every entity so the
// submission scores past the generation completeness threshold.
func fullSubmission() *submission.Submission {
	sub := completeSubmission()
	sub.Applicant.DBAName = "Acme Mfg"
	sub.Applicant.NAICSDescription = "Machine Shops"
	sub.Applicant.BusinessType = "Corporation"
	sub.Applicant.YearsInBusiness = intPtr(18)
	sub.Applicant.Description = "Precision machining and fabrication"
	sub.Applicant.ContactName = "Jordan Reyes"
	sub.Applicant.ContactTitle = "Controller"
	sub.Applicant.Fax = "(512) 555-0143"
	sub.Applicant.Website = "https://acmemfg.com"
	sub.Applicant.MailingAddressLine2 = "Suite 200"
	sub.Applicant.PhysicalAddressLine1 = "100 Industrial Way"
	sub.Applicant.PhysicalAddressLine2 = "Suite 200"
	sub.Applicant.PhysicalCity = "Houston"
	sub.Applicant.PhysicalState = "TX"
	sub.Applicant.PhysicalZip = "77001"

	sub.Coverage.PolicyTermMonths = intPtr(12)
	sub.Coverage.ContentsLimit = floatPtr(400_000)
	sub.Coverage.BusinessIncomeLimit = floatPtr(100_000)
	sub.Coverage.ExtraExpenseLimit = floatPtr(50_000)
	sub.Coverage.EquipmentBreakdownLimit = floatPtr(250_000)
	sub.Coverage.BuildingDeductible = floatPtr(5_000)
	sub.Coverage.ContentsDeductible = floatPtr(2_500)
	sub.Coverage.BusinessIncomeDeductible = "72 hours"
	sub.Coverage.WindHailDeductible = "2%"
	sub.Coverage.AllOtherPerilsDeductible = floatPtr(5_000)
	sub.Coverage.ReplacementCost = boolPtr(true)
	sub.Coverage.AgreedValue = boolPtr(false)
	sub.Coverage.CoinsurancePercentage = intPtr(80)
	sub.Coverage.FloodCoverage = boolPtr(false)
	sub.Coverage.EarthquakeCoverage = boolPtr(false)
	sub.Coverage.TerrorismCoverage = boolPtr(false)
	sub.Coverage.CyberCoverage = boolPtr(false)
	sub.Coverage.EstimatedAnnualPremium = floatPtr(38_500)
	sub.Coverage.PremiumBasis = "TIV"
	sub.Coverage.SpecialConditions = "None"

	loc := &sub.Locations[0]
	loc.LocationNumber = "1"
	loc.AddressLine2 = "Building A"
	loc.County = "Harris"
	loc.BuildingDescription = "Single-story manufacturing plant"
	loc.NumberOfStories = intPtr(1)
	loc.ProtectionClass = "3"
	loc.DistanceToFireStation = floatPtr(1.5)
	loc.DistanceToHydrant = intPtr(500)
	loc.SprinklerSystem = boolPtr(true)
	loc.AlarmSystem = boolPtr(true)
	loc.SecuritySystem = boolPtr(true)
	loc.FireAlarm = boolPtr(true)
	loc.BurglarAlarm = boolPtr(true)
	loc.ContentsValue = floatPtr(400_000)
	loc.BusinessIncomeValue = floatPtr(100_000)
	loc.Basement = boolPtr(false)
	loc.BasementFinished = boolPtr(false)
	loc.RoofType = "Metal"
	loc.RoofYear = intPtr(2015)
	loc.HeatingType = "Gas"
	loc.CoolingType = "Central"
	loc.ElectricalYear = intPtr(2010)
	loc.PlumbingYear = intPtr(2010)
	loc.UpdatesWiring = boolPtr(true)
	loc.UpdatesPlumbing = boolPtr(true)
	loc.UpdatesHeating = boolPtr(true)
	loc.UpdatesRoof = boolPtr(true)
	loc.PriorLosses = boolPtr(false)
	loc.NumberOfEmployees = intPtr(40)
	loc.HoursOfOperation = "7am-6pm"

	sub.Normalize()
	return sub
}

func hasMessage(issues []submission.ValidationIssue, message string) bool {
	for _, issue := range issues {
		if strings.Contains(issue.Message, message) {
			return true
		}
	}
	return false
}

func TestValidateSubmissionComplete(t *testing.T) {
	result := newEngine().ValidateSubmission(completeSubmission(), false)

	if !result.IsValid {
		t.Errorf("complete submission invalid: %+v", result.BlockingErrors)
	}
	if result.TotalErrors != 0 {
		t.Errorf("errors = %d: %+v", result.TotalErrors, result.Errors)
	}
}

func TestValidateSubmissionMissingApplicant(t *testing.T) {
	sub := submission.NewSubmission()

	result := newEngine().ValidateSubmission(sub, false)

	if result.IsValid {
		t.Error("submission without applicant should be invalid")
	}
	if !hasMessage(result.Errors, "Applicant information is required") {
		t.Errorf("missing applicant error, got %+v", result.Errors)
	}
	if !hasMessage(result.Errors, "At least one property location is required") {
		t.Errorf("missing location error, got %+v", result.Errors)
	}
}

func TestValidateSubmissionNoLocations(t *testing.T) {
	sub := completeSubmission()
	sub.Locations = nil

	result := newEngine().ValidateSubmission(sub, false)

	if result.IsValid {
		t.Error("submission without locations should be invalid")
	}

	// Missing locations surface twice: as a required-field error and as
	// underwriting rule BR001.
	var requiredField, businessRule int
	for _, issue := range result.Errors {
		if issue.FieldPath != "locations" {
			continue
		}
		switch issue.Category {
		case submission.CategoryRequiredField:
			requiredField++
		case submission.CategoryBusinessRule:
			businessRule++
			if issue.RuleID != "BR001" {
				t.Errorf("rule id = %q, want BR001", issue.RuleID)
			}
		}
		if !issue.Blocking {
			t.Errorf("location issue not blocking: %+v", issue)
		}
	}
	if requiredField != 1 || businessRule != 1 {
		t.Errorf("location errors: required-field = %d, business-rule = %d, want 1 each (%+v)",
			requiredField, businessRule, result.Errors)
	}
}

func TestValidateCompletenessIndependentOfValidity(t *testing.T) {
	sub := fullSubmission()
	eff := submission.NewDate(2027, 1, 1)
	exp := submission.NewDate(2026, 1, 1)
	sub.Coverage.EffectiveDate = &eff
	sub.Coverage.ExpirationDate = &exp

	result := newEngine().ValidateSubmission(sub, false)

	if result.IsValid {
		t.Error("reversed policy dates should be a blocking error")
	}
	if !result.IsComplete {
		t.Errorf("completeness %d%% should still report complete", result.CompletenessPercentage)
	}
	if result.CanProceedToGeneration {
		t.Error("invalid submission must not proceed to generation")
	}
}

func TestValidateSubmissionNoCoverageWarns(t *testing.T) {
	sub := completeSubmission()
	sub.Coverage = nil

	result := newEngine().ValidateSubmission(sub, false)

	if !hasMessage(result.Warnings, "Coverage information is recommended") {
		t.Errorf("missing coverage warning, got %+v", result.Warnings)
	}
	if !result.IsValid {
		t.Error("missing coverage should not block validity")
	}
}

func TestValidateApplicantInvalidFormats(t *testing.T) {
	a := &submission.Applicant{
		BusinessName:        "Acme",
		FEIN:                "00-1234567",
		NAICSCode:           "1",
		Email:               "not-an-email",
		Phone:               "123",
		MailingAddressLine1: "1 Main St",
		MailingCity:         "Houston",
		MailingState:        "XX",
		MailingZip:          "770",
	}

	entity := newEngine().ValidateApplicant(a, false)

	for _, want := range []string{
		"Invalid FEIN format (expected XX-XXXXXXX)",
		"Invalid NAICS code format",
		"Invalid email address format",
		"Invalid phone number format",
		"Invalid state code",
		"Invalid ZIP code format",
	} {
		if !hasMessage(entity.Errors, want) && !hasMessage(entity.Warnings, want) {
			t.Errorf("missing issue %q", want)
		}
	}
}

func TestValidateApplicantRequiredName(t *testing.T) {
	entity := newEngine().ValidateApplicant(&submission.Applicant{}, false)

	if !hasMessage(entity.Errors, "Business name is required") {
		t.Errorf("missing business name error, got %+v", entity.Errors)
	}
	if entity.IsValid {
		t.Error("empty applicant should be invalid")
	}
}

func TestValidateCoverageExpirationBeforeEffective(t *testing.T) {
	eff := submission.NewDate(2026, 6, 1)
	exp := submission.NewDate(2026, 5, 1)
	c := &submission.Coverage{
		PolicyType:     "property",
		EffectiveDate:  &eff,
		ExpirationDate: &exp,
	}

	entity := newEngine().ValidateCoverage(c, false)

	if !hasMessage(entity.Errors, "Expiration date must be after effective date") {
		t.Errorf("missing date order error, got %+v", entity.Errors)
	}
}

func TestValidateLossRequiresDate(t *testing.T) {
	loss := &submission.LossRecord{LossType: "Fire", PaidAmount: floatPtr(10_000)}

	entity := newEngine().ValidateLoss(loss, false, 0)

	if !hasMessage(entity.Errors, "Loss date is required") {
		t.Errorf("missing loss date error, got %+v", entity.Errors)
	}
}

func TestCrossFieldTIVMismatchWarns(t *testing.T) {
	sub := completeSubmission()
	sub.Coverage.BuildingLimit = floatPtr(500_000)

	result := newEngine().ValidateSubmission(sub, false)

	if !hasMessage(result.Warnings, "differs significantly from location TIV") {
		t.Errorf("missing TIV mismatch warning, got %+v", result.Warnings)
	}
}

func TestHighValueLocationRule(t *testing.T) {
	sub := completeSubmission()
	sub.Locations[0].TotalInsuredValue = floatPtr(15_000_000)
	sub.Locations[0].BuildingValue = floatPtr(15_000_000)
	sub.Coverage.BuildingLimit = floatPtr(15_000_000)
	sub.Locations[0].SprinklerSystem = nil
	sub.Locations[0].ProtectionClass = ""

	result := newEngine().ValidateSubmission(sub, false)

	if !hasMessage(result.Warnings, "High-value properties should include sprinkler") {
		t.Errorf("missing BR002 warning, got %+v", result.Warnings)
	}

	sub.Locations[0].SprinklerSystem = boolPtr(true)
	sub.Locations[0].ProtectionClass = "3"

	result = newEngine().ValidateSubmission(sub, false)
	if hasMessage(result.Warnings, "High-value properties should include sprinkler") {
		t.Error("BR002 warning raised for protected high-value location")
	}
}

func TestStrictModeRecommendations(t *testing.T) {
	sub := completeSubmission()
	sub.Applicant.FEIN = ""
	sub.Applicant.NAICSCode = "332710"

	lenient := newEngine().ValidateSubmission(sub, false)
	strict := newEngine().ValidateSubmission(sub, true)

	if hasMessage(lenient.Warnings, "FEIN is recommended") {
		t.Error("lenient mode should not warn on missing FEIN")
	}
	if !hasMessage(strict.Warnings, "FEIN is recommended") {
		t.Errorf("strict mode missing FEIN warning, got %+v", strict.Warnings)
	}
}

func TestCompletenessGates(t *testing.T) {
	engine := newEngine()

	empty := submission.NewSubmission()
	result := engine.ValidateSubmission(empty, false)
	if result.CanProceedToGeneration {
		t.Error("empty submission should not pass the generation gate")
	}
	if result.CanSubmitToCarrier {
		t.Error("empty submission should not pass the carrier gate")
	}

	full := completeSubmission()
	result = engine.ValidateSubmission(full, false)
	if result.CompletenessPercentage <= 0 {
		t.Errorf("completeness = %d, want > 0", result.CompletenessPercentage)
	}
	if result.CanSubmitToCarrier && result.CompletenessPercentage < validation.CarrierThreshold {
		t.Error("carrier gate passed below threshold")
	}

	rich := engine.ValidateSubmission(fullSubmission(), false)
	if !rich.IsValid {
		t.Errorf("full submission invalid: %+v", rich.BlockingErrors)
	}
	if !rich.CanProceedToGeneration {
		t.Errorf("full submission blocked at %d%% completeness", rich.CompletenessPercentage)
	}
}

func TestDataQualityScore(t *testing.T) {
	result := newEngine().ValidateSubmission(completeSubmission(), false)

	if result.DataQualityScore < 0 || result.DataQualityScore > 100 {
		t.Errorf("quality score out of range: %v", result.DataQualityScore)
	}

	degraded := newEngine().ValidateSubmission(submission.NewSubmission(), false)
	if degraded.DataQualityScore >= result.DataQualityScore {
		t.Errorf(
			"empty submission quality %v should be below complete submission %v",
			degraded.DataQualityScore, result.DataQualityScore,
		)
	}
}
