package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount interprets a cleaned amount string as an exact decimal.
// Parentheses encode a negative sign; currency symbols and thousands
// separators are cosmetic. Returns ok=false for empty or non-numeric
// tokens. Decimal arithmetic keeps the sign test exact; monetary values
// never round-trip through floats.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	replacer := strings.NewReplacer("$", "", ",", "", " ", "", "%", "")
	s = replacer.Replace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative && d.IsPositive() {
		d = d.Neg()
	}
	return d, true
}
