package submission

import "strings"

// Applicant is the insured business entity on a submission.
type Applicant struct {
	BusinessName     string `json:"business_name"`
	FEIN             string `json:"fein,omitempty"`
	DBAName          string `json:"dba_name,omitempty"`
	NAICSCode        string `json:"naics_code,omitempty"`
	NAICSDescription string `json:"naics_description,omitempty"`
	BusinessType     string `json:"business_type,omitempty"`
	YearsInBusiness  *int   `json:"years_in_business,omitempty"`
	Description      string `json:"description,omitempty"`

	ContactName  string `json:"contact_name,omitempty"`
	ContactTitle string `json:"contact_title,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Fax          string `json:"fax,omitempty"`
	Website      string `json:"website,omitempty"`

	MailingAddressLine1 string `json:"mailing_address_line1,omitempty"`
	MailingAddressLine2 string `json:"mailing_address_line2,omitempty"`
	MailingCity         string `json:"mailing_city,omitempty"`
	MailingState        string `json:"mailing_state,omitempty"`
	MailingZip          string `json:"mailing_zip,omitempty"`
	MailingCountry      string `json:"mailing_country,omitempty"`

	PhysicalAddressLine1 string `json:"physical_address_line1,omitempty"`
	PhysicalAddressLine2 string `json:"physical_address_line2,omitempty"`
	PhysicalCity         string `json:"physical_city,omitempty"`
	PhysicalState        string `json:"physical_state,omitempty"`
	PhysicalZip          string `json:"physical_zip,omitempty"`
	PhysicalCountry      string `json:"physical_country,omitempty"`
}

// Normalize trims string fields, uppercases state codes, and applies
// the USA country default.
func (a *Applicant) Normalize() {
	fields := []*string{
		&a.BusinessName, &a.FEIN, &a.DBAName, &a.NAICSCode, &a.NAICSDescription,
		&a.BusinessType, &a.Description, &a.ContactName, &a.ContactTitle,
		&a.Email, &a.Phone, &a.Fax, &a.Website,
		&a.MailingAddressLine1, &a.MailingAddressLine2, &a.MailingCity,
		&a.MailingState, &a.MailingZip,
		&a.PhysicalAddressLine1, &a.PhysicalAddressLine2, &a.PhysicalCity,
		&a.PhysicalState, &a.PhysicalZip,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}

	a.MailingState = strings.ToUpper(a.MailingState)
	a.PhysicalState = strings.ToUpper(a.PhysicalState)

	if a.MailingCountry == "" {
		a.MailingCountry = "USA"
	}
	if a.PhysicalCountry == "" {
		a.PhysicalCountry = "USA"
	}
}

// HasCompleteMailingAddress reports whether the mailing address carries
// street, city, state, and ZIP.
func (a *Applicant) HasCompleteMailingAddress() bool {
	return a.MailingAddressLine1 != "" &&
		a.MailingCity != "" &&
		a.MailingState != "" &&
		a.MailingZip != ""
}

// HasCompletePhysicalAddress reports whether the physical address carries
// street, city, state, and ZIP.
func (a *Applicant) HasCompletePhysicalAddress() bool {
	return a.PhysicalAddressLine1 != "" &&
		a.PhysicalCity != "" &&
		a.PhysicalState != "" &&
		a.PhysicalZip != ""
}

// DisplayName returns the business name, annotated with the DBA when present.
func (a *Applicant) DisplayName() string {
	if a.DBAName != "" {
		return a.BusinessName + " (DBA: " + a.DBAName + ")"
	}
	return a.BusinessName
}

// IsComplete reports whether the applicant carries the minimum data
// needed for form generation: a business name, a tax or industry
// identifier, and one complete address.
func (a *Applicant) IsComplete() bool {
	if a.BusinessName == "" {
		return false
	}
	if a.FEIN == "" && a.NAICSCode == "" {
		return false
	}
	return a.HasCompleteMailingAddress() || a.HasCompletePhysicalAddress()
}

// MissingFields lists the critical fields the applicant still lacks.
func (a *Applicant) MissingFields() []string {
	var missing []string
	if a.BusinessName == "" {
		missing = append(missing, "business_name")
	}
	if a.FEIN == "" && a.NAICSCode == "" {
		missing = append(missing, "fein_or_naics_code")
	}
	if !a.HasCompleteMailingAddress() && !a.HasCompletePhysicalAddress() {
		missing = append(missing, "complete_address")
	}
	return missing
}
