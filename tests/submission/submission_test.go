package submission_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/submitez/submitez/internal/submission"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestNewSubmission(t *testing.T) {
	sub := submission.NewSubmission()

	if sub.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("ID not assigned")
	}
	if sub.Status != submission.StatusDraft {
		t.Errorf("status = %s, want draft", sub.Status)
	}
	if sub.CreatedAt.IsZero() || sub.UpdatedAt.IsZero() {
		t.Error("timestamps not stamped")
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from submission.Status
		to   submission.Status
		ok   bool
	}{
		{"draft to uploaded", submission.StatusDraft, submission.StatusUploaded, true},
		{"draft to extracting", submission.StatusDraft, submission.StatusExtracting, false},
		{"uploaded again", submission.StatusUploaded, submission.StatusUploaded, true},
		{"uploaded to extracting", submission.StatusUploaded, submission.StatusExtracting, true},
		{"extracting to extracted", submission.StatusExtracting, submission.StatusExtracted, true},
		{"extracted re-extract", submission.StatusExtracted, submission.StatusExtracting, true},
		{"extracted to validating", submission.StatusExtracted, submission.StatusValidating, true},
		{"validating to validated", submission.StatusValidating, submission.StatusValidated, true},
		{"validated to generating", submission.StatusValidated, submission.StatusGenerating, true},
		{"generating to completed", submission.StatusGenerating, submission.StatusCompleted, true},
		{"completed re-validate", submission.StatusCompleted, submission.StatusValidating, true},
		{"completed to uploaded", submission.StatusCompleted, submission.StatusUploaded, false},
		{"draft to completed", submission.StatusDraft, submission.StatusCompleted, false},
		{"anywhere to error", submission.StatusExtracting, submission.StatusError, true},
		{"error retry extract", submission.StatusError, submission.StatusExtracting, true},
		{"error retry upload", submission.StatusError, submission.StatusUploaded, true},
		{"error to completed", submission.StatusError, submission.StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.ok {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.ok)
			}
		})
	}
}

func TestUpdateStatusStampsTimestamps(t *testing.T) {
	sub := submission.NewSubmission()

	steps := []submission.Status{
		submission.StatusUploaded,
		submission.StatusExtracting,
		submission.StatusExtracted,
		submission.StatusValidating,
		submission.StatusValidated,
		submission.StatusGenerating,
		submission.StatusCompleted,
	}
	for _, next := range steps {
		if err := sub.UpdateStatus(next); err != nil {
			t.Fatalf("UpdateStatus(%s) error = %v", next, err)
		}
	}

	if sub.ExtractedAt == nil {
		t.Error("ExtractedAt not stamped")
	}
	if sub.ValidatedAt == nil {
		t.Error("ValidatedAt not stamped")
	}
	if sub.GeneratedAt == nil {
		t.Error("GeneratedAt not stamped")
	}
	if sub.SubmittedAt == nil {
		t.Error("SubmittedAt not stamped on completion")
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	sub := submission.NewSubmission()

	err := sub.UpdateStatus(submission.StatusGenerating)
	if err == nil {
		t.Fatal("expected error for draft -> generating")
	}
	if sub.Status != submission.StatusDraft {
		t.Errorf("status mutated to %s on rejected transition", sub.Status)
	}
}

func TestAddGeneratedFileReplacesSameFormType(t *testing.T) {
	sub := submission.NewSubmission()

	sub.AddGeneratedFile(submission.FileRef{Filename: "old.pdf", FormType: "125"})
	sub.AddGeneratedFile(submission.FileRef{Filename: "other.pdf", FormType: "140"})
	sub.AddGeneratedFile(submission.FileRef{Filename: "new.pdf", FormType: "125"})

	if len(sub.GeneratedFiles) != 2 {
		t.Fatalf("generated files = %d, want 2", len(sub.GeneratedFiles))
	}
	if sub.GeneratedFiles[0].Filename != "new.pdf" {
		t.Errorf("form 125 file = %s, want new.pdf", sub.GeneratedFiles[0].Filename)
	}
}

func TestNormalizeAssignsLocationNumbers(t *testing.T) {
	sub := submission.NewSubmission()
	sub.Locations = []submission.PropertyLocation{
		{AddressLine1: "1 Main St"},
		{AddressLine1: "2 Oak Ave", LocationNumber: "7"},
		{AddressLine1: "3 Elm Rd"},
	}

	sub.Normalize()

	if sub.Locations[0].LocationNumber != "1" {
		t.Errorf("location 0 number = %q, want 1", sub.Locations[0].LocationNumber)
	}
	if sub.Locations[1].LocationNumber != "7" {
		t.Errorf("location 1 number = %q, want 7 (preserved)", sub.Locations[1].LocationNumber)
	}
	if sub.Locations[2].LocationNumber != "3" {
		t.Errorf("location 2 number = %q, want 3", sub.Locations[2].LocationNumber)
	}
}

func TestLocationNormalizeComputesTIV(t *testing.T) {
	loc := submission.PropertyLocation{
		BuildingValue:       floatPtr(1_000_000),
		ContentsValue:       floatPtr(250_000),
		BusinessIncomeValue: floatPtr(100_000),
	}

	loc.Normalize()

	if loc.TotalInsuredValue == nil {
		t.Fatal("TotalInsuredValue not computed")
	}
	if *loc.TotalInsuredValue != 1_350_000 {
		t.Errorf("TIV = %v, want 1350000", *loc.TotalInsuredValue)
	}
}

func TestTotalTIV(t *testing.T) {
	sub := submission.NewSubmission()
	sub.Locations = []submission.PropertyLocation{
		{TotalInsuredValue: floatPtr(500_000)},
		{TotalInsuredValue: floatPtr(750_000)},
		{},
	}

	if got := sub.TotalTIV(); got != 1_250_000 {
		t.Errorf("TotalTIV() = %v, want 1250000", got)
	}
}

func TestApplicantNormalize(t *testing.T) {
	a := submission.Applicant{
		BusinessName: "  Acme Manufacturing  ",
		MailingState: "tx",
	}

	a.Normalize()

	if a.BusinessName != "Acme Manufacturing" {
		t.Errorf("business name = %q", a.BusinessName)
	}
	if a.MailingState != "TX" {
		t.Errorf("mailing state = %q, want TX", a.MailingState)
	}
	if a.MailingCountry != "USA" {
		t.Errorf("mailing country = %q, want USA", a.MailingCountry)
	}
}

func TestApplicantDisplayName(t *testing.T) {
	a := submission.Applicant{BusinessName: "Acme Corp", DBAName: "Acme"}
	if got := a.DisplayName(); got != "Acme Corp (DBA: Acme)" {
		t.Errorf("DisplayName() = %q", got)
	}

	a.DBAName = ""
	if got := a.DisplayName(); got != "Acme Corp" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestApplicantMissingFields(t *testing.T) {
	a := submission.Applicant{}
	missing := a.MissingFields()

	want := map[string]bool{
		"business_name":      true,
		"fein_or_naics_code": true,
		"complete_address":   true,
	}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v", missing)
	}
	for _, field := range missing {
		if !want[field] {
			t.Errorf("unexpected missing field %q", field)
		}
	}
}

func TestLossNormalizeStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   string
	}{
		{"lowercase", "open", "Open"},
		{"uppercase", "CLOSED", "Closed"},
		{"empty defaults open", "", "Open"},
		{"unknown preserved", "Litigated", "Litigated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loss := submission.LossRecord{ClaimStatus: tt.status}
			loss.Normalize()
			if loss.ClaimStatus != tt.want {
				t.Errorf("claim status = %q, want %q", loss.ClaimStatus, tt.want)
			}
		})
	}
}

func TestLossIsSignificant(t *testing.T) {
	loss := submission.LossRecord{LossAmount: floatPtr(25_000)}
	if !loss.IsSignificant(submission.SignificantLossThreshold) {
		t.Error("25000 loss should be significant at threshold 10000")
	}

	loss = submission.LossRecord{PaidAmount: floatPtr(5_000)}
	if loss.IsSignificant(submission.SignificantLossThreshold) {
		t.Error("5000 paid should not be significant at threshold 10000")
	}
}

func TestLossIncurredAmount(t *testing.T) {
	loss := submission.LossRecord{
		PaidAmount:     floatPtr(12_000),
		ReservedAmount: floatPtr(3_000),
	}
	if got := loss.IncurredAmount(); got != 15_000 {
		t.Errorf("IncurredAmount() = %v, want 15000", got)
	}
}

func TestLossNetPaidAmount(t *testing.T) {
	loss := submission.LossRecord{
		PaidAmount: floatPtr(12_000),
		Recoveries: floatPtr(4_000),
	}
	if got := loss.NetPaidAmount(); got != 8_000 {
		t.Errorf("NetPaidAmount() = %v, want 8000", got)
	}

	loss = submission.LossRecord{Recoveries: floatPtr(4_000)}
	if got := loss.NetPaidAmount(); got != -4_000 {
		t.Errorf("NetPaidAmount() with no paid amount = %v, want -4000", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := submission.ParseDate("2025-06-15")
	if err != nil {
		t.Fatalf("ParseDate error = %v", err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	if string(data) != `"2025-06-15"` {
		t.Errorf("marshal = %s", data)
	}

	var decoded submission.Date
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if decoded.ISO() != "2025-06-15" {
		t.Errorf("round trip = %s", decoded.ISO())
	}
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-06-15", "2025-06-15"},
		{"06/15/2025", "2025-06-15"},
		{"06-15-2025", "2025-06-15"},
	}

	for _, tt := range tests {
		d, err := submission.ParseDate(tt.input)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v", tt.input, err)
			continue
		}
		if d.ISO() != tt.want {
			t.Errorf("ParseDate(%q).ISO() = %s, want %s", tt.input, d.ISO(), tt.want)
		}
	}
}

func TestCoverageHasExpiredTermCheck(t *testing.T) {
	eff := submission.NewDate(2025, time.June, 1)
	exp := submission.NewDate(2026, time.June, 1)

	if !eff.Before(exp) {
		t.Error("effective date should be before expiration")
	}
	if !exp.After(eff) {
		t.Error("expiration date should be after effective")
	}
}

func TestCanonicalViewOnlyPopulated(t *testing.T) {
	sub := submission.NewSubmission()
	view := sub.CanonicalView()

	if _, ok := view["applicant"]; ok {
		t.Error("empty submission should have no applicant block")
	}
	if _, ok := view["locations"]; ok {
		t.Error("empty submission should have no locations block")
	}
	if _, ok := view["submission"]; !ok {
		t.Error("submission metadata block should always be present")
	}
}

func TestCanonicalViewApplicant(t *testing.T) {
	sub := submission.NewSubmission()
	sub.Applicant = &submission.Applicant{
		BusinessName:        "Acme Manufacturing Inc",
		FEIN:                "12-3456789",
		MailingAddressLine1: "100 Industrial Way",
		MailingCity:         "Houston",
		MailingState:        "TX",
		MailingZip:          "77001",
	}

	view := sub.CanonicalView()

	applicant, ok := view["applicant"].(map[string]any)
	if !ok {
		t.Fatal("applicant block missing")
	}
	if applicant["business_name"] != "Acme Manufacturing Inc" {
		t.Errorf("business_name = %v", applicant["business_name"])
	}
	if applicant["fein"] != "12-3456789" {
		t.Errorf("fein = %v", applicant["fein"])
	}

	mailing, ok := applicant["mailing"].(map[string]any)
	if !ok {
		t.Fatal("mailing block missing")
	}
	if mailing["city"] != "Houston" {
		t.Errorf("mailing city = %v", mailing["city"])
	}

	meta := view["submission"].(map[string]any)
	if meta["applicant_signature"] != "Acme Manufacturing Inc" {
		t.Errorf("applicant_signature = %v", meta["applicant_signature"])
	}
}

func TestCanonicalViewLocationRollups(t *testing.T) {
	sub := submission.NewSubmission()
	sub.Applicant = &submission.Applicant{BusinessName: "Acme"}
	sub.Coverage = &submission.Coverage{PolicyType: "property"}
	sub.Locations = []submission.PropertyLocation{
		{
			AddressLine1:      "1 Main St",
			City:              "Austin",
			State:             "TX",
			ZipCode:           "78701",
			BuildingValue:     floatPtr(2_000_000),
			ContentsValue:     floatPtr(500_000),
			TotalInsuredValue: floatPtr(2_500_000),
			SprinklerSystem:   boolPtr(true),
			YearBuilt:         intPtr(1998),
		},
	}

	view := sub.CanonicalView()

	coverage := view["coverage"].(map[string]any)
	if coverage["total_building_limit"] != 2_000_000.0 {
		t.Errorf("total_building_limit = %v", coverage["total_building_limit"])
	}
	if coverage["total_insured_value"] != 2_500_000.0 {
		t.Errorf("total_insured_value = %v", coverage["total_insured_value"])
	}

	locations := view["locations"].([]map[string]any)
	if len(locations) != 1 {
		t.Fatalf("locations = %d, want 1", len(locations))
	}
	if locations[0]["building_limit"] != 2_000_000.0 {
		t.Errorf("building_limit = %v", locations[0]["building_limit"])
	}
	if locations[0]["sprinkler_system"] != true {
		t.Errorf("sprinkler_system = %v", locations[0]["sprinkler_system"])
	}
}

func TestHasExtractedData(t *testing.T) {
	sub := submission.NewSubmission()
	if sub.HasExtractedData() {
		t.Error("empty submission reports extracted data")
	}

	sub.Applicant = &submission.Applicant{BusinessName: "Acme"}
	if !sub.HasExtractedData() {
		t.Error("submission with applicant should report extracted data")
	}
}

func TestSetValidationResults(t *testing.T) {
	sub := submission.NewSubmission()

	errs := []submission.ValidationIssue{{
		FieldPath: "applicant.business_name",
		Severity:  submission.SeverityError,
		Category:  submission.CategoryRequiredField,
		Message:   "Business name is required",
		Blocking:  true,
	}}

	sub.SetValidationResults(errs, nil, false)

	if len(sub.ValidationErrors) != 1 {
		t.Fatalf("validation errors = %d, want 1", len(sub.ValidationErrors))
	}
	if sub.IsValid {
		t.Error("IsValid should be false")
	}
}

func TestSummarize(t *testing.T) {
	sub := submission.NewSubmission()
	sub.Applicant = &submission.Applicant{BusinessName: "Acme Manufacturing"}
	sub.BrokerName = "Jordan Wells"
	sub.Locations = []submission.PropertyLocation{
		{TotalInsuredValue: floatPtr(500_000)},
		{TotalInsuredValue: floatPtr(250_000)},
	}
	sub.LossHistory = []submission.LossRecord{{}}
	sub.UploadedFiles = []submission.FileRef{{Filename: "sov.xlsx"}}
	sub.ExtractionConfidence = floatPtr(0.82)

	sum := sub.Summarize()

	if sum.ID != sub.ID {
		t.Errorf("ID = %v, want %v", sum.ID, sub.ID)
	}
	if sum.ApplicantName != "Acme Manufacturing" {
		t.Errorf("ApplicantName = %q, want Acme Manufacturing", sum.ApplicantName)
	}
	if sum.BrokerName != "Jordan Wells" {
		t.Errorf("BrokerName = %q, want Jordan Wells", sum.BrokerName)
	}
	if sum.LocationCount != 2 || sum.LossCount != 1 {
		t.Errorf("counts = %d locations / %d losses, want 2 / 1", sum.LocationCount, sum.LossCount)
	}
	if sum.UploadedFileCount != 1 || sum.GeneratedFileCount != 0 {
		t.Errorf("file counts = %d / %d, want 1 / 0", sum.UploadedFileCount, sum.GeneratedFileCount)
	}
	if sum.TotalInsuredValue != 750_000 {
		t.Errorf("TotalInsuredValue = %v, want 750000", sum.TotalInsuredValue)
	}
	if sum.ExtractionConfidence == nil || *sum.ExtractionConfidence != 0.82 {
		t.Errorf("ExtractionConfidence = %v, want 0.82", sum.ExtractionConfidence)
	}
}

func TestSummarizeEmptySubmission(t *testing.T) {
	sum := submission.NewSubmission().Summarize()

	if sum.ApplicantName != "" {
		t.Errorf("ApplicantName = %q, want empty", sum.ApplicantName)
	}
	if sum.LocationCount != 0 || sum.TotalInsuredValue != 0 {
		t.Errorf("counts = %d / %v, want zeroes", sum.LocationCount, sum.TotalInsuredValue)
	}
}
