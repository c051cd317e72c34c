package parse

import "strings"

// noValueTokens are the tokens the upstream extractor emits for an empty
// cell: blank, ASCII dash, en dash, em dash.
var noValueTokens = map[string]struct{}{
	"":  {},
	"-": {},
	"–": {},
	"—": {},
}

// CleanValue normalizes a raw numeric token into a canonical signed-amount
// string. Normalization is intentionally non-destructive: sign stays encoded
// as parentheses, currency symbols and thousands separators are preserved,
// and no conversion to a numeric type happens, so the output remains an
// exact audit trail back to the source formatting. Tokens representing "no
// value" collapse to "". Unparseable tokens pass through unchanged (modulo
// surrounding whitespace); CleanValue never fails.
func CleanValue(raw string) string {
	s := strings.TrimSpace(raw)
	if _, ok := noValueTokens[s]; ok {
		return ""
	}
	// A bare currency symbol is also an empty cell ("$ —" split artifacts).
	if trimmed := strings.TrimSpace(strings.TrimPrefix(s, "$")); trimmed != "" {
		if _, ok := noValueTokens[trimmed]; ok {
			return ""
		}
	} else if strings.HasPrefix(s, "$") {
		return ""
	}
	// Collapse internal runs of whitespace so "$   7,754" and "$ 7,754"
	// compare equal downstream.
	return strings.Join(strings.Fields(s), " ")
}

// HasAmount reports whether a cleaned token carries at least one digit.
func HasAmount(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
