package parse

import "strings"

// SectionRules describes how one statement type opens and closes labeled
// sections. All keyword matching is case-insensitive substring matching
// against the row's account name.
type SectionRules struct {
	// HeaderKeywords mark rows that open a section (e.g. "operating
	// expenses:", "cash flows from operating activities"). A trailing
	// colon on the account name also marks a header regardless of
	// keywords, since the upstream extractor preserves colons on section
	// labels far more reliably than indentation.
	HeaderKeywords []string

	// TotalKeywords mark rows that close the active section after being
	// processed as normal line items (e.g. "total operating expenses").
	TotalKeywords []string

	// Indent maps a normalized section name to the indent level of its
	// children. Sections absent from the map indent children one level.
	Indent map[string]int
}

// IsHeader reports whether a row opens a section. A trailing colon always
// marks a header; keyword matches only do when the row carries no values,
// so single-step statements that report amounts on a keyword-bearing row
// keep them as data. Total lines never open sections.
func (r SectionRules) IsHeader(name string, hasValues bool) bool {
	if r.IsTotalLine(name) {
		return false
	}
	trimmed := strings.TrimSpace(name)
	if strings.HasSuffix(trimmed, ":") {
		return true
	}
	if hasValues {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, kw := range r.HeaderKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsTotalLine reports whether an account name matches the statement's
// total-line pattern. Totals close the section they summarize.
func (r SectionRules) IsTotalLine(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, kw := range r.TotalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SectionContext is the per-parse state machine that recovers the hierarchy
// OCR-flattened text loses. Visual indentation in the source PDF does not
// survive extraction reliably, so parent/child structure is reconstructed
// from section-boundary semantics instead of column position. One context
// is owned by exactly one parse; it is never shared.
type SectionContext struct {
	current string
}

// Current returns the name of the active section, or "" if none.
func (c *SectionContext) Current() string { return c.current }

// Open sets the active section. The stored name has its trailing colon
// stripped so it matches the emitted header item's account name.
func (c *SectionContext) Open(name string) {
	c.current = strings.TrimSuffix(strings.TrimSpace(name), ":")
}

// Close resets the active section. Called after a total line is processed.
func (c *SectionContext) Close() { c.current = "" }

// Placement derives a row's indent level and parent section from the active
// section. With no active section the row sits at top level.
func (c *SectionContext) Placement(rules SectionRules) (indent int, parent string) {
	if c.current == "" {
		return 0, ""
	}
	indent = 1
	if lvl, ok := rules.Indent[sectionKey(c.current)]; ok {
		indent = lvl
	}
	return indent, c.current
}

// sectionKey normalizes a section name for Indent lookups.
func sectionKey(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), ":")
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
