package formatting_test

import (
	"testing"

	"github.com/submitez/submitez/pkg/formatting"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"iso date", "2025-06-15", "06/15/2025", false},
		{"rfc3339", "2025-06-15T10:30:00Z", "06/15/2025", false},
		{"already formatted", "06/15/2025", "06/15/2025", false},
		{"leading whitespace", "  2025-01-01", "01/01/2025", false},
		{"empty", "", "", true},
		{"garbage", "next tuesday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.FormatDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		withSymbol bool
		want       string
	}{
		{"plain", 1500000, false, "1,500,000.00"},
		{"with symbol", 1500000, true, "$1,500,000.00"},
		{"cents", 1234.5, false, "1,234.50"},
		{"zero", 0, true, "$0.00"},
		{"negative with symbol", -250.75, true, "-$250.75"},
		{"small", 5, false, "5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatting.FormatMoney(tt.value, tt.withSymbol)
			if got != tt.want {
				t.Errorf("FormatMoney(%v, %v) = %q, want %q", tt.value, tt.withSymbol, got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     string
	}{
		{"millions", 1234567.891, 2, "1,234,567.89"},
		{"no decimals", 1234567.891, 0, "1,234,568"},
		{"hundreds", 512, 0, "512"},
		{"exact thousand", 1000, 0, "1,000"},
		{"negative", -98765.4, 1, "-98,765.4"},
		{"zero", 0, 2, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatting.FormatNumber(tt.value, tt.decimals)
			if got != tt.want {
				t.Errorf("FormatNumber(%v, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
			}
		})
	}
}
