package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
)

var (
	digitsOnly = regexp.MustCompile(`\D`)
	zip5       = regexp.MustCompile(`^\d{5}$`)
	zip9       = regexp.MustCompile(`^\d{5}-\d{4}$`)
)

// invalidFEINPrefixes are the two-digit prefixes the IRS has never issued.
var invalidFEINPrefixes = map[string]bool{
	"00": true, "07": true, "08": true, "09": true,
	"17": true, "18": true, "19": true, "78": true, "79": true,
}

var validStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true,
	"CO": true, "CT": true, "DE": true, "FL": true, "GA": true,
	"HI": true, "ID": true, "IL": true, "IN": true, "IA": true,
	"KS": true, "KY": true, "LA": true, "ME": true, "MD": true,
	"MA": true, "MI": true, "MN": true, "MS": true, "MO": true,
	"MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true,
	"SD": true, "TN": true, "TX": true, "UT": true, "VT": true,
	"VA": true, "WA": true, "WV": true, "WI": true, "WY": true,
	"DC": true, "PR": true, "VI": true, "GU": true, "AS": true, "MP": true,
}

// IsValidEmail reports whether the value parses as an RFC 5322 address.
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// IsValidPhone reports whether the value is a valid US phone number.
func IsValidPhone(phone string) bool {
	if phone == "" {
		return false
	}
	parsed, err := phonenumbers.Parse(phone, "US")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}

// FormatPhone normalizes a US phone number to E.164, returning the
// empty string when the number is invalid.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	parsed, err := phonenumbers.Parse(phone, "US")
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return ""
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// IsValidFEIN reports whether the value is a plausible Federal Employer
// Identification Number: nine digits with an issued prefix. Separators
// are ignored.
func IsValidFEIN(fein string) bool {
	clean := digitsOnly.ReplaceAllString(fein, "")
	if len(clean) != 9 {
		return false
	}
	return !invalidFEINPrefixes[clean[:2]]
}

// FormatFEIN normalizes a FEIN to the standard XX-XXXXXXX form,
// returning the empty string when the value is invalid.
func FormatFEIN(fein string) string {
	if !IsValidFEIN(fein) {
		return ""
	}
	clean := digitsOnly.ReplaceAllString(fein, "")
	return clean[:2] + "-" + clean[2:]
}

// IsValidZip reports whether the value is a 5-digit or ZIP+4 code.
func IsValidZip(zip string) bool {
	return zip5.MatchString(zip) || zip9.MatchString(zip)
}

// IsValidState reports whether the value is a US state, district, or
// territory abbreviation.
func IsValidState(state string) bool {
	if len(state) != 2 {
		return false
	}
	return validStates[strings.ToUpper(state)]
}

// IsValidNAICS reports whether the value holds 2 to 6 digits.
func IsValidNAICS(naics string) bool {
	if naics == "" {
		return false
	}
	clean := digitsOnly.ReplaceAllString(naics, "")
	return len(clean) >= 2 && len(clean) <= 6
}

// IsValidYear reports whether the year falls within [minYear, next year].
func IsValidYear(year, minYear int) bool {
	return year >= minYear && year <= time.Now().Year()+1
}

// IsValidCurrency reports whether the amount is non-negative.
func IsValidCurrency(amount float64) bool {
	return amount >= 0
}
