package parse

import "strings"

// CategoryRule maps account-name keywords to a category. Keywords are
// lowercase substrings; a rule matches when any keyword appears in the name.
type CategoryRule struct {
	Keywords []string
	Category string
}

// RuleSet is a statement type's ordered keyword-rule table. The first
// matching rule wins and every name resolves to something: rules, then the
// total fallback where configured, then the universal default. Keeping the
// tables as data rather than branching code lets each statement type ship
// its own table and keeps the engine itself trivial to test.
type RuleSet struct {
	Rules   []CategoryRule
	Default string

	// TotalFallback resolves ambiguous "Total ..." rows by sub-keyword
	// before the default applies (balance sheet: "Total current assets"
	// vs "Total liabilities" vs "Total shareholders' equity").
	TotalFallback []CategoryRule

	// CalculatedKeywords mark derived rows beyond the universal "total"
	// (e.g. "gross profit", "net income", "net cash provided").
	CalculatedKeywords []string
}

// Categorize assigns a category to an account name. No name is left
// uncategorized.
func (rs RuleSet) Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range rs.Rules {
		if containsAny(lower, rule.Keywords) {
			return rule.Category
		}
	}
	if strings.Contains(lower, "total") {
		for _, rule := range rs.TotalFallback {
			if containsAny(lower, rule.Keywords) {
				return rule.Category
			}
		}
	}
	return rs.Default
}

// IsCalculated reports whether an account name denotes a subtotal, total,
// or otherwise derived row.
func (rs RuleSet) IsCalculated(name string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "total") {
		return true
	}
	return containsAny(lower, rs.CalculatedKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
