package submission

import "strings"

// SignificantLossThreshold is the default dollar amount above which a
// loss is treated as significant for underwriting review.
const SignificantLossThreshold = 10_000

var claimStatuses = []string{"Open", "Closed", "Pending", "Denied", "Withdrawn"}

// LossRecord is a single prior claim on the applicant's loss history.
type LossRecord struct {
	LossDate        *Date  `json:"loss_date"`
	ClaimNumber     string `json:"claim_number,omitempty"`
	LossType        string `json:"loss_type,omitempty"`
	LossDescription string `json:"loss_description,omitempty"`
	CauseOfLoss     string `json:"cause_of_loss,omitempty"`

	LossAmount     *float64 `json:"loss_amount,omitempty"`
	PaidAmount     *float64 `json:"paid_amount,omitempty"`
	ReservedAmount *float64 `json:"reserved_amount,omitempty"`
	Deductible     *float64 `json:"deductible,omitempty"`
	Recoveries     *float64 `json:"recoveries,omitempty"`

	ClaimStatus  string `json:"claim_status,omitempty"`
	DateReported *Date  `json:"date_reported,omitempty"`
	DateClosed   *Date  `json:"date_closed,omitempty"`
	DaysToClose  *int   `json:"days_to_close,omitempty"`

	LocationAffected string `json:"location_affected,omitempty"`
	LocationAddress  string `json:"location_address,omitempty"`
	CoverageType     string `json:"coverage_type,omitempty"`
	CoverageLine     string `json:"coverage_line,omitempty"`
	PolicyNumber     string `json:"policy_number,omitempty"`

	ClaimantName      string `json:"claimant_name,omitempty"`
	ClaimantType      string `json:"claimant_type,omitempty"`
	InjuryType        string `json:"injury_type,omitempty"`
	InjuryDescription string `json:"injury_description,omitempty"`
	MedicalOnly       *bool  `json:"medical_only,omitempty"`
	LostTime          *bool  `json:"lost_time,omitempty"`

	AtFault         *bool  `json:"at_fault,omitempty"`
	Subrogation     *bool  `json:"subrogation,omitempty"`
	Litigation      *bool  `json:"litigation,omitempty"`
	FraudSuspected  *bool  `json:"fraud_suspected,omitempty"`
	Catastrophe     *bool  `json:"catastrophe,omitempty"`
	CatastropheCode string `json:"catastrophe_code,omitempty"`

	AdjusterName    string `json:"adjuster_name,omitempty"`
	AdjusterCompany string `json:"adjuster_company,omitempty"`
	Notes           string `json:"notes,omitempty"`
	InternalNotes   string `json:"internal_notes,omitempty"`
}

// Normalize trims string fields and canonicalizes the claim status.
// Unknown statuses are kept as extracted; an empty status defaults to Open.
func (l *LossRecord) Normalize() {
	fields := []*string{
		&l.ClaimNumber, &l.LossType, &l.LossDescription, &l.CauseOfLoss,
		&l.ClaimStatus, &l.LocationAffected, &l.LocationAddress,
		&l.CoverageType, &l.CoverageLine, &l.PolicyNumber,
		&l.ClaimantName, &l.ClaimantType, &l.InjuryType, &l.InjuryDescription,
		&l.CatastropheCode, &l.AdjusterName, &l.AdjusterCompany,
		&l.Notes, &l.InternalNotes,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}

	if l.ClaimStatus == "" {
		l.ClaimStatus = "Open"
		return
	}
	for _, status := range claimStatuses {
		if strings.EqualFold(l.ClaimStatus, status) {
			l.ClaimStatus = status
			return
		}
	}
}

// IncurredAmount returns the total incurred: paid plus reserved.
func (l *LossRecord) IncurredAmount() float64 {
	var total float64
	if l.PaidAmount != nil {
		total += *l.PaidAmount
	}
	if l.ReservedAmount != nil {
		total += *l.ReservedAmount
	}
	return total
}

// NetPaidAmount returns the paid amount less any recoveries.
func (l *LossRecord) NetPaidAmount() float64 {
	var net float64
	if l.PaidAmount != nil {
		net = *l.PaidAmount
	}
	if l.Recoveries != nil {
		net -= *l.Recoveries
	}
	return net
}

// IsOpen reports whether the claim is still open or pending.
func (l *LossRecord) IsOpen() bool {
	return l.ClaimStatus == "Open" || l.ClaimStatus == "Pending"
}

// IsSignificant reports whether the loss meets the threshold, checking
// the loss amount first and falling back to the paid amount.
func (l *LossRecord) IsSignificant(threshold float64) bool {
	if l.LossAmount != nil {
		return *l.LossAmount >= threshold
	}
	if l.PaidAmount != nil {
		return *l.PaidAmount >= threshold
	}
	return false
}

// IsRecent reports whether the loss occurred within the given number of years.
func (l *LossRecord) IsRecent(years int) bool {
	if l.LossDate == nil {
		return false
	}
	cutoff := Today().AddDate(-years, 0, 0)
	return !l.LossDate.Time.Before(cutoff)
}

// IsComplete reports whether the record carries the minimum data for
// loss-run reporting.
func (l *LossRecord) IsComplete() bool {
	return l.LossDate != nil &&
		(l.LossType != "" || l.CauseOfLoss != "") &&
		(l.LossAmount != nil || l.PaidAmount != nil) &&
		l.ClaimStatus != ""
}

// MissingFields lists the critical fields the record still lacks.
func (l *LossRecord) MissingFields() []string {
	var missing []string
	if l.LossDate == nil {
		missing = append(missing, "loss_date")
	}
	if l.LossType == "" && l.CauseOfLoss == "" {
		missing = append(missing, "loss_type_or_cause")
	}
	if l.LossAmount == nil && l.PaidAmount == nil {
		missing = append(missing, "loss_amount_or_paid")
	}
	if l.ClaimStatus == "" {
		missing = append(missing, "claim_status")
	}
	return missing
}
