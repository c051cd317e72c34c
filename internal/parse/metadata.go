package parse

import (
	"regexp"
	"sort"
	"strings"
)

// defaultUnitsNote is assumed when the source text carries no units phrasing.
const defaultUnitsNote = "In millions"

var (
	unitsRe = regexp.MustCompile(`(?i)\(?\s*in\s+(?:millions|thousands|billions)[^)\r\n]*\)?`)
	yearRe  = regexp.MustCompile(`(?:19|20)\d{2}`)

	// companySuffixRe spots corporate name lines in the page preamble.
	companySuffixRe = regexp.MustCompile(`(?i)\b(?:inc|incorporated|corp|corporation|company|holdings|ltd|plc|llc)\b\.?`)

	periodPrefixRe = regexp.MustCompile(`(?i)(?:fiscal\s+)?years?\s+ended`)
)

// metadata holds the statement-level fields extracted from the page
// preamble before any rows are processed.
type metadata struct {
	company string
	title   string
	units   string
	periods []string
}

// extractMetadata pulls company name, document title, units note, and the
// reporting periods from the raw text. Defaults apply where the source is
// silent; extraction never fails.
func extractMetadata(raw string, titleKeywords []string, defaultTitle string) metadata {
	md := metadata{title: defaultTitle, units: defaultUnitsNote}

	if m := unitsRe.FindString(raw); m != "" {
		md.units = strings.Trim(strings.TrimSpace(m), "()")
	}

	lines := strings.Split(raw, "\n")
	limit := len(lines)
	if limit > 20 {
		limit = 20
	}
	for _, line := range lines[:limit] {
		trimmed := strings.Trim(strings.TrimSpace(line), "|- ")
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		if md.title == defaultTitle && containsAny(lower, titleKeywords) {
			md.title = trimmed
			continue
		}
		if md.company == "" && companySuffixRe.MatchString(trimmed) && !containsAny(lower, titleKeywords) {
			md.company = trimmed
		}
	}

	md.periods = extractPeriods(raw)
	return md
}

// extractPeriods collects the column-header period labels: every distinct
// date in the text's header lines, most recent first. When the page carries
// "Year(s) Ended" wording the label keeps it, matching the exact column
// header a reader would see.
func extractPeriods(raw string) []string {
	prefix := ""
	if periodPrefixRe.MatchString(raw) {
		prefix = "Year Ended "
	}

	seen := make(map[string]struct{})
	var dates []string
	collect := func(line string) {
		for _, d := range dateRe.FindAllString(line, -1) {
			d = strings.Join(strings.Fields(d), " ")
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dates = append(dates, d)
		}
	}
	for _, line := range strings.Split(raw, "\n") {
		if isDateHeader(strings.TrimSpace(line)) {
			collect(line)
		}
	}
	// No dedicated date-header lines (shareholders' equity embeds its
	// dates in "Balances, <date>" rows): fall back to every date in the
	// text.
	if len(dates) == 0 {
		collect(raw)
	}

	// Most recent first. Stable so same-year dates keep source order.
	sort.SliceStable(dates, func(i, j int) bool {
		return YearOf(dates[i]) > YearOf(dates[j])
	})

	periods := make([]string, len(dates))
	for i, d := range dates {
		periods[i] = prefix + d
	}
	return periods
}

// YearOf returns the fiscal year embedded in a period label, or 0 if the
// label carries none. The last 4-digit year wins: "Year Ended January 26,
// 2020" embeds 2020.
func YearOf(label string) int {
	matches := yearRe.FindAllString(label, -1)
	if len(matches) == 0 {
		return 0
	}
	last := matches[len(matches)-1]
	year := 0
	for _, r := range last {
		year = year*10 + int(r-'0')
	}
	return year
}
