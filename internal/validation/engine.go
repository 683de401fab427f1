// Package validation implements multi-level submission validation for
// SubmitEZ: per-entity field checks, cross-field consistency checks,
// and business rules, rolled up into completeness and quality scoring
// that gates the workflow.
package validation

import (
	"fmt"
	"log/slog"

	"github.com/submitez/submitez/internal/submission"
	"github.com/submitez/submitez/pkg/formatting"
)

// HighValueTIV is the total insured value above which a location is
// expected to document its fire protection.
const HighValueTIV = 10_000_000

const minLocationYearBuilt = 1800

// Engine runs the validation rule set against submissions.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a validation engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger.With("system", "validation")}
}

// ValidateSubmission runs every validation level against the submission
// and returns the aggregated result. Strict mode upgrades recommended
// fields to warnings.
func (e *Engine) ValidateSubmission(sub *submission.Submission, strict bool) *Result {
	result := &Result{SubmissionID: sub.ID}

	if sub.Applicant == nil {
		result.Errors = append(result.Errors, submission.ValidationIssue{
			FieldPath: "applicant",
			Severity:  submission.SeverityError,
			Category:  submission.CategoryRequiredField,
			Message:   "Applicant information is required",
			Blocking:  true,
		})
	} else {
		entity := e.ValidateApplicant(sub.Applicant, strict)
		result.EntityValidations = append(result.EntityValidations, entity)
		result.Errors = append(result.Errors, entity.Errors...)
		result.Warnings = append(result.Warnings, entity.Warnings...)
	}

	if len(sub.Locations) == 0 {
		result.Errors = append(result.Errors, submission.ValidationIssue{
			FieldPath: "locations",
			Severity:  submission.SeverityError,
			Category:  submission.CategoryRequiredField,
			Message:   "At least one property location is required",
			Blocking:  true,
		})
	}
	for i := range sub.Locations {
		entity := e.ValidateLocation(&sub.Locations[i], strict, i)
		result.EntityValidations = append(result.EntityValidations, entity)
		result.Errors = append(result.Errors, entity.Errors...)
		result.Warnings = append(result.Warnings, entity.Warnings...)
	}

	if sub.Coverage == nil {
		result.Warnings = append(result.Warnings, submission.ValidationIssue{
			FieldPath: "coverage",
			Severity:  submission.SeverityWarning,
			Category:  submission.CategoryRequiredField,
			Message:   "Coverage information is recommended",
		})
	} else {
		entity := e.ValidateCoverage(sub.Coverage, strict)
		result.EntityValidations = append(result.EntityValidations, entity)
		result.Errors = append(result.Errors, entity.Errors...)
		result.Warnings = append(result.Warnings, entity.Warnings...)
	}

	for i := range sub.LossHistory {
		entity := e.ValidateLoss(&sub.LossHistory[i], strict, i)
		result.EntityValidations = append(result.EntityValidations, entity)
		result.Errors = append(result.Errors, entity.Errors...)
		result.Warnings = append(result.Warnings, entity.Warnings...)
	}

	for _, issue := range e.crossFieldIssues(sub) {
		e.appendBySeverity(result, issue)
	}
	for _, issue := range e.businessRuleIssues(sub) {
		e.appendBySeverity(result, issue)
	}

	result.finalize(e.completeness(sub))

	e.logger.Info("submission validated",
		"id", sub.ID,
		"valid", result.IsValid,
		"completeness", result.CompletenessPercentage,
		"errors", result.TotalErrors,
		"warnings", result.TotalWarnings,
	)

	return result
}

func (e *Engine) appendBySeverity(result *Result, issue submission.ValidationIssue) {
	switch issue.Severity {
	case submission.SeverityError:
		result.Errors = append(result.Errors, issue)
	case submission.SeverityWarning:
		result.Warnings = append(result.Warnings, issue)
	default:
		result.Info = append(result.Info, issue)
	}
}

// ValidateApplicant checks the applicant entity's field formats and
// required data.
func (e *Engine) ValidateApplicant(a *submission.Applicant, strict bool) EntityResult {
	var errors, warnings []submission.ValidationIssue

	if a.BusinessName == "" {
		errors = append(errors, submission.ValidationIssue{
			FieldPath: "applicant.business_name",
			Severity:  submission.SeverityError,
			Category:  submission.CategoryRequiredField,
			Message:   "Business name is required",
			Blocking:  true,
		})
	}

	if a.FEIN != "" {
		if !IsValidFEIN(a.FEIN) {
			errors = append(errors, submission.ValidationIssue{
				FieldPath:    "applicant.fein",
				Severity:     submission.SeverityError,
				Category:     submission.CategoryInvalidFormat,
				Message:      "Invalid FEIN format (expected XX-XXXXXXX)",
				CurrentValue: a.FEIN,
			})
		}
	} else if strict {
		warnings = append(warnings, submission.ValidationIssue{
			FieldPath: "applicant.fein",
			Severity:  submission.SeverityWarning,
			Category:  submission.CategoryRequiredField,
			Message:   "FEIN is recommended for commercial insurance",
		})
	}

	if a.NAICSCode != "" && !IsValidNAICS(a.NAICSCode) {
		warnings = append(warnings, submission.ValidationIssue{
			FieldPath:    "applicant.naics_code",
			Severity:     submission.SeverityWarning,
			Category:     submission.CategoryInvalidFormat,
			Message:      "Invalid NAICS code format",
			CurrentValue: a.NAICSCode,
		})
	}

	if a.Email != "" && !IsValidEmail(a.Email) {
		errors = append(errors, submission.ValidationIssue{
			FieldPath:    "applicant.email",
			Severity:     submission.SeverityError,
			Category:     submission.CategoryInvalidFormat,
			Message:      "Invalid email address format",
			CurrentValue: a.Email,
		})
	}

	if a.Phone != "" && !IsValidPhone(a.Phone) {
		warnings = append(warnings, submission.ValidationIssue{
			FieldPath:    "applicant.phone",
			Severity:     submission.SeverityWarning,
			Category:     submission.CategoryInvalidFormat,
			Message:      "Invalid phone number format",
			CurrentValue: a.Phone,
		})
	}

	if !a.HasCompleteMailingAddress() && !a.HasCompletePhysicalAddress() {
		errors = append(errors, submission.ValidationIssue{
			FieldPath: "applicant.address",
			Severity:  submission.SeverityError,
			Category:  submission.CategoryRequiredField,
			Message:   "Complete mailing or physical address is required",
			Blocking:  true,
		})
	}

	if a.MailingState != "" && !IsValidState(a.MailingState) {
		errors = append(errors, submission.ValidationIssue{
			FieldPath:    "applicant.mailing_state",
			Severity:     submission.SeverityError,
			Category:     submission.CategoryInvalidValue,
			Message:      "Invalid state code",
			CurrentValue: a.MailingState,
		})
	}

	if a.MailingZip != "" && !IsValidZip(a.MailingZip) {
		errors = append(errors, submission.ValidationIssue{
			FieldPath:    "applicant.mailing_zip",
			Severity:     submission.SeverityError,
			Category:     submission.CategoryInvalidFormat,
			Message:      "Invalid ZIP code format",
			CurrentValue: a.MailingZip,
		})
	}

	return EntityResult{
		EntityType:             "applicant",
		IsValid:                blockingCount(errors) == 0,
		IsComplete:             a.IsComplete(),
		CompletenessPercentage: entityCompleteness(a),
		MissingFields:          a.MissingFields(),
		Errors:                 errors,
		Warnings:               warnings,
	}
}

// ValidateLocation checks one property location.
func (e *Engine) ValidateLocation(loc *submission.PropertyLocation, strict bool, index int) EntityResult {
	var errors, warnings []submission.ValidationIssue
	prefix := fmt.Sprintf("locations[%d]", index)

	required := []struct {
		value   string
		field   string
		message string
	}{
		{loc.AddressLine1, "address_line1", "Street address is required"},
		{loc.City, "city", "City is required"},
		{loc.State, "state", "State is required"},
		{loc.ZipCode, "zip_code", "ZIP code is required"},
	}
	for _, req := range required {
		if req.value == "" {
			errors = append(errors, submission.ValidationIssue{
				FieldPath: prefix + "." + req.field,
				Severity:  submission.SeverityError,
				Category:  submission.CategoryRequiredField,
				Message:   req.message,
				Blocking:  true,
			})
		}
	}

	if loc.State != "" && !IsValidState(loc.State) {
		errors = append(errors, submission.ValidationIssue{
			FieldPath:    prefix + ".state",
			Severity:     submission.SeverityError,
			Category:     submission.CategoryInvalidValue,
			Message:      "Invalid state code",
			CurrentValue: loc.State,
		})
	}

	if loc.ZipCode != "" && !IsValidZip(loc.ZipCode) {
		errors = append(errors, submission.ValidationIssue{
			FieldPath:    prefix + ".zip_code",
			Severity:     submission.SeverityError,
			Category:     submission.CategoryInvalidFormat,
			Message:      "Invalid ZIP code format",
			CurrentValue: loc.ZipCode,
		})
	}

	if loc.YearBuilt != nil {
		if !IsValidYear(*loc.YearBuilt, minLocationYearBuilt) {
			errors = append(errors, submission.ValidationIssue{
				FieldPath:    prefix + ".year_built",
				Severity:     submission.SeverityError,
				Category:     submission.CategoryInvalidValue,
				Message:      "Invalid year built",
				CurrentValue: *loc.YearBuilt,
			})
		}
	} else if strict {
		warnings = append(warnings, submission.ValidationIssue{
			FieldPath: prefix + ".year_built",
			Severity:  submission.SeverityWarning,
			Category:  submission.CategoryRequiredField,
			Message:   "Year built is recommended",
		})
	}

	if loc.BuildingValue != nil && !IsValidCurrency(*loc.BuildingValue) {
		errors = append(errors, submission.ValidationIssue{
			FieldPath:    prefix + ".building_value",
			Severity:     submission.SeverityError,
			Category:     submission.CategoryInvalidValue,
			Message:      "Invalid building value",
			CurrentValue: *loc.BuildingValue,
		})
	}

	if loc.TotalInsuredValue != nil {
		switch {
		case !IsValidCurrency(*loc.TotalInsuredValue):
			errors = append(errors, submission.ValidationIssue{
				FieldPath:    prefix + ".total_insured_value",
				Severity:     submission.SeverityError,
				Category:     submission.CategoryInvalidValue,
				Message:      "Invalid total insured value",
				CurrentValue: *loc.TotalInsuredValue,
			})
		case *loc.TotalInsuredValue <= 0:
			errors = append(errors, submission.ValidationIssue{
				FieldPath:    prefix + ".total_insured_value",
				Severity:     submission.SeverityError,
				Category:     submission.CategoryInvalidValue,
				Message:      "Total insured value must be greater than zero",
				CurrentValue: *loc.TotalInsuredValue,
			})
		}
	}

	return EntityResult{
		EntityType:             "location",
		EntityID:               loc.LocationNumber,
		IsValid:                blockingCount(errors) == 0,
		IsComplete:             loc.IsComplete(),
		CompletenessPercentage: entityCompleteness(loc),
		MissingFields:          loc.MissingFields(),
		Errors:                 errors,
		Warnings:               warnings,
	}
}

// ValidateCoverage checks the coverage terms.
func (e *Engine) ValidateCoverage(c *submission.Coverage, strict bool) EntityResult {
	var errors, warnings []submission.ValidationIssue

	if c.EffectiveDate == nil {
		warnings = append(warnings, submission.ValidationIssue{
			FieldPath: "coverage.effective_date",
			Severity:  submission.SeverityWarning,
			Category:  submission.CategoryRequiredField,
			Message:   "Effective date is recommended",
		})
	}

	if c.ExpirationDate == nil {
		warnings = append(warnings, submission.ValidationIssue{
			FieldPath: "coverage.expiration_date",
			Severity:  submission.SeverityWarning,
			Category:  submission.CategoryRequiredField,
			Message:   "Expiration date is recommended",
		})
	}

	if c.EffectiveDate != nil && c.ExpirationDate != nil {
		if !c.ExpirationDate.After(*c.EffectiveDate) {
			errors = append(errors, submission.ValidationIssue{
				FieldPath: "coverage.expiration_date",
				Severity:  submission.SeverityError,
				Category:  submission.CategoryInvalidValue,
				Message:   "Expiration date must be after effective date",
				Blocking:  true,
			})
		}
	}

	if c.BuildingLimit != nil && !IsValidCurrency(*c.BuildingLimit) {
		errors = append(errors, submission.ValidationIssue{
			FieldPath:    "coverage.building_limit",
			Severity:     submission.SeverityError,
			Category:     submission.CategoryInvalidValue,
			Message:      "Invalid building limit",
			CurrentValue: *c.BuildingLimit,
		})
	}

	return EntityResult{
		EntityType:             "coverage",
		IsValid:                blockingCount(errors) == 0,
		IsComplete:             c.IsComplete(),
		CompletenessPercentage: entityCompleteness(c),
		MissingFields:          c.MissingFields(),
		Errors:                 errors,
		Warnings:               warnings,
	}
}

// ValidateLoss checks one loss history record.
func (e *Engine) ValidateLoss(loss *submission.LossRecord, strict bool, index int) EntityResult {
	var errors, warnings []submission.ValidationIssue
	prefix := fmt.Sprintf("loss_history[%d]", index)

	if loss.LossDate == nil {
		errors = append(errors, submission.ValidationIssue{
			FieldPath: prefix + ".loss_date",
			Severity:  submission.SeverityError,
			Category:  submission.CategoryRequiredField,
			Message:   "Loss date is required",
			Blocking:  true,
		})
	}

	if loss.LossAmount == nil && loss.PaidAmount == nil {
		warnings = append(warnings, submission.ValidationIssue{
			FieldPath: prefix + ".loss_amount",
			Severity:  submission.SeverityWarning,
			Category:  submission.CategoryRequiredField,
			Message:   "Loss amount or paid amount should be provided",
		})
	}

	return EntityResult{
		EntityType:             "loss",
		IsValid:                blockingCount(errors) == 0,
		IsComplete:             loss.IsComplete(),
		CompletenessPercentage: entityCompleteness(loss),
		MissingFields:          loss.MissingFields(),
		Errors:                 errors,
		Warnings:               warnings,
	}
}

// crossFieldIssues checks consistency between entities.
func (e *Engine) crossFieldIssues(sub *submission.Submission) []submission.ValidationIssue {
	var issues []submission.ValidationIssue

	if len(sub.Locations) > 0 && sub.Coverage != nil && sub.Coverage.BuildingLimit != nil {
		locationTIV := sub.TotalTIV()
		buildingLimit := *sub.Coverage.BuildingLimit

		max := locationTIV
		if buildingLimit > max {
			max = buildingLimit
		}

		diff := locationTIV - buildingLimit
		if diff < 0 {
			diff = -diff
		}

		if max > 0 && diff/max > 0.1 {
			issues = append(issues, submission.ValidationIssue{
				FieldPath: "coverage.building_limit",
				Severity:  submission.SeverityWarning,
				Category:  submission.CategoryInconsistentData,
				Message: fmt.Sprintf(
					"Coverage limit (%s) differs significantly from location TIV (%s)",
					"$"+formatting.FormatNumber(buildingLimit, 0),
					"$"+formatting.FormatNumber(locationTIV, 0),
				),
				RelatedFields: []string{"locations.total_insured_value"},
			})
		}
	}

	return issues
}

// businessRuleIssues applies underwriting rules across the submission.
func (e *Engine) businessRuleIssues(sub *submission.Submission) []submission.ValidationIssue {
	var issues []submission.ValidationIssue

	if len(sub.Locations) == 0 {
		issues = append(issues, submission.ValidationIssue{
			FieldPath: "locations",
			Severity:  submission.SeverityError,
			Category:  submission.CategoryBusinessRule,
			Message:   "At least one property location is required",
			Blocking:  true,
			RuleID:    "BR001",
		})
	}

	for i := range sub.Locations {
		loc := &sub.Locations[i]
		if loc.TotalInsuredValue == nil || *loc.TotalInsuredValue <= HighValueTIV {
			continue
		}
		if loc.SprinklerSystem == nil || !*loc.SprinklerSystem || loc.ProtectionClass == "" {
			issues = append(issues, submission.ValidationIssue{
				FieldPath: fmt.Sprintf("locations[%d]", i),
				Severity:  submission.SeverityWarning,
				Category:  submission.CategoryBusinessRule,
				Message:   "High-value properties should include sprinkler and protection class information",
				RuleID:    "BR002",
			})
		}
	}

	return issues
}

// completeness scores the submission across weighted entity sections.
func (e *Engine) completeness(sub *submission.Submission) int {
	total := 0
	max := applicantWeight + locationsWeight + coverageWeight + lossesWeight

	if sub.Applicant != nil {
		total += entityCompleteness(sub.Applicant) * applicantWeight / 100
	}

	if len(sub.Locations) > 0 {
		sum := 0
		for i := range sub.Locations {
			sum += entityCompleteness(&sub.Locations[i])
		}
		total += (sum / len(sub.Locations)) * locationsWeight / 100
	}

	if sub.Coverage != nil {
		total += entityCompleteness(sub.Coverage) * coverageWeight / 100
	}

	if len(sub.LossHistory) > 0 {
		total += lossesWeight
	} else {
		total += lossesEmptyCredit
	}

	pct := total * 100 / max
	if pct > 100 {
		pct = 100
	}
	return pct
}

func blockingCount(issues []submission.ValidationIssue) int {
	count := 0
	for _, issue := range issues {
		if issue.Blocking {
			count++
		}
	}
	return count
}
