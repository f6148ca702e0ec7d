package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse accepts the monetary spellings used across the system: "R$ 1.234,56",
// "1234,56" and plain "1234.56". The result is always rounded to two
// fractional digits.
func Parse(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "R$")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty monetary value")
	}

	if strings.Contains(cleaned, ",") {
		// Brazilian spelling: dots are thousands separators.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid monetary value %q: %w", s, err)
	}

	return d.Round(2), nil
}

// Format renders a decimal in Brazilian spelling with two fractional digits
// and dot thousands grouping, e.g. "1.234,56".
func Format(d decimal.Decimal) string {
	fixed := d.Round(2).StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	out := grouped.String() + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatBRL renders "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + Format(d)
}
