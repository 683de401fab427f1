package formatting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
}

// FormatDate renders a date value as MM/DD/YYYY. It accepts ISO dates,
// RFC 3339 timestamps, and values already in MM/DD/YYYY form.
func FormatDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("01/02/2006"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date value: %q", value)
}

// FormatMoney renders a currency amount with thousands separators and
// two decimal places, e.g. 1500000 -> "$1,500,000.00".
func FormatMoney(v float64, withSymbol bool) string {
	s := FormatNumber(v, 2)
	if withSymbol {
		if strings.HasPrefix(s, "-") {
			return "-$" + s[1:]
		}
		return "$" + s
	}
	return s
}

// FormatNumber renders a numeric value with thousands separators and the
// requested decimal precision, e.g. (1234567.891, 2) -> "1,234,567.89".
func FormatNumber(v float64, decimals int) string {
	negative := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', decimals, 64)

	whole, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
