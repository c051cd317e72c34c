package parse

import (
	"regexp"
	"strings"
)

// Row is one candidate data row: an account label plus its raw value cells,
// left to right. Values are uncleaned at this stage.
type Row struct {
	AccountName string
	Values      []string
}

// DropReason names the filter rule that rejected a candidate row. Every
// candidate either becomes exactly one Row or is dropped under exactly one
// reason, so callers can account for the full input.
type DropReason string

const (
	DropEmpty      DropReason = "empty"
	DropSeparator  DropReason = "separator"
	DropDateHeader DropReason = "date_header"
	DropBareYear   DropReason = "bare_year"
	DropArtifact   DropReason = "artifact"
	DropNoValues   DropReason = "no_values"
)

// DroppedRow records a rejected candidate line and the rule that rejected it.
type DroppedRow struct {
	Line   string     `json:"line"`
	Reason DropReason `json:"reason"`
}

// RowSet is the Row Extractor output: accepted rows plus the dropped lines.
// len(Rows) + len(Dropped) always equals the number of input lines.
type RowSet struct {
	Rows    []Row
	Dropped []DroppedRow
}

const monthNames = `January|February|March|April|May|June|July|August|September|October|November|December`

var (
	pipeLineRe  = regexp.MustCompile(`^\s*\|(.+)\|\s*$`)
	separatorRe = regexp.MustCompile(`^[\s\-+|=_.]+$`)
	bareYearRe  = regexp.MustCompile(`^[\s$|]*(?:19|20)\d{2}(?:[\s$|]+(?:19|20)\d{2})*[\s|]*$`)
	letterRe    = regexp.MustCompile(`[A-Za-z]`)

	dateRe      = regexp.MustCompile(`(?i)(?:` + monthNames + `)\s+\d{1,2},?\s+\d{4}`)
	yearEndedRe = regexp.MustCompile(`(?i)(?:fiscal\s+)?(?:year|three\s+months|twelve\s+months|period)s?\s+ended`)

	// amountRe matches a currency/number token: optional parentheses for
	// sign, optional dollar sign, digits with thousands separators and an
	// optional decimal part.
	amountRe = regexp.MustCompile(`\(\s*\$?\s*\d[\d,]*(?:\.\d+)?\s*\)|\$?\s*-?\d[\d,]*(?:\.\d+)?`)
)

// ExtractRows splits raw text into candidate delimited rows and discards
// non-data lines (titles, date headers, separators, border artifacts).
// arity is the statement's expected cell count per row (account cell
// included); values are right-padded to arity-1 cells. arity <= 0 keeps
// each row's natural width (shareholders' equity).
//
// Two strategies are supported, chosen by the text's delimiter style: if
// any line carries pipe borders, only pipe-bordered lines are treated as
// data; otherwise a space-delimited fallback applies.
func ExtractRows(raw string, arity int) RowSet {
	lines := strings.Split(raw, "\n")
	pipeStyle := false
	for _, line := range lines {
		if pipeLineRe.MatchString(line) {
			pipeStyle = true
			break
		}
	}

	var set RowSet
	for _, line := range lines {
		if reason, noisy := classifyNoise(line); noisy {
			set.Dropped = append(set.Dropped, DroppedRow{Line: line, Reason: reason})
			continue
		}

		var row Row
		var ok bool
		var reason DropReason
		if pipeStyle {
			row, reason, ok = extractPipeRow(line, arity)
		} else {
			row, reason, ok = extractFallbackRow(line, arity)
		}
		if !ok {
			set.Dropped = append(set.Dropped, DroppedRow{Line: line, Reason: reason})
			continue
		}
		set.Rows = append(set.Rows, row)
	}
	return set
}

// classifyNoise applies the uniform filter rules that identify table-border
// reconstruction noise rather than data. Order matters: bare years have no
// letters, so they must be checked before the generic artifact rule.
func classifyNoise(line string) (DropReason, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return DropEmpty, true
	}
	if separatorRe.MatchString(trimmed) {
		return DropSeparator, true
	}
	if bareYearRe.MatchString(trimmed) {
		return DropBareYear, true
	}
	if !letterRe.MatchString(trimmed) {
		return DropArtifact, true
	}
	if isDateHeader(trimmed) {
		return DropDateHeader, true
	}
	return "", false
}

// isDateHeader reports whether a line is purely period/date header text:
// after removing date phrases and "year ended" wording, no letters remain.
func isDateHeader(line string) bool {
	if !dateRe.MatchString(line) && !yearEndedRe.MatchString(line) {
		return false
	}
	rest := dateRe.ReplaceAllString(line, "")
	rest = yearEndedRe.ReplaceAllString(rest, "")
	return !letterRe.MatchString(rest)
}

// extractPipeRow parses a |cell|cell|...| bordered line. Lines without pipe
// borders inside a pipe-style document are interspersed prose, not data.
func extractPipeRow(line string, arity int) (Row, DropReason, bool) {
	m := pipeLineRe.FindStringSubmatch(line)
	if m == nil {
		return Row{}, DropArtifact, false
	}
	cells := strings.Split(m[1], "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	name := cells[0]
	if name == "" {
		return Row{}, DropArtifact, false
	}
	return Row{AccountName: name, Values: padValues(cells[1:], arity)}, "", true
}

// extractFallbackRow parses a free-form space-delimited line: the account
// name is everything before the first numeric token, amounts are pulled by
// the general currency/number pattern. Digits inside date phrases do not
// count as amounts, so labels like "Balances, January 27, 2019" stay whole.
// Lines with letters but no amounts pass through with empty values so the
// section tracker can still see header rows; the parser drops them if they
// turn out not to be headers.
func extractFallbackRow(line string, arity int) (Row, DropReason, bool) {
	trimmed := strings.TrimRight(line, " \t")

	dateLocs := dateRe.FindAllStringIndex(trimmed, -1)
	inDate := func(pos int) bool {
		for _, dl := range dateLocs {
			if pos >= dl[0] && pos < dl[1] {
				return true
			}
		}
		return false
	}

	var values []string
	nameEnd := -1
	for _, m := range amountRe.FindAllStringIndex(trimmed, -1) {
		if inDate(m[0]) {
			continue
		}
		if nameEnd < 0 {
			nameEnd = m[0]
		}
		values = append(values, strings.TrimSpace(trimmed[m[0]:m[1]]))
	}

	if nameEnd < 0 {
		name := strings.TrimSpace(trimmed)
		return Row{AccountName: name, Values: padValues(nil, arity)}, "", true
	}

	name := strings.TrimSpace(trimmed[:nameEnd])
	if name == "" {
		// Numbers with no label: border artifact the noise filter missed
		// (e.g. a stray "$" column fragment).
		return Row{}, DropArtifact, false
	}
	return Row{AccountName: name, Values: padValues(values, arity)}, "", true
}

// padValues right-pads (or truncates) values to arity-1 cells. arity <= 0
// leaves the natural width untouched.
func padValues(values []string, arity int) []string {
	if arity <= 0 {
		return values
	}
	want := arity - 1
	if len(values) > want {
		return values[:want]
	}
	for len(values) < want {
		values = append(values, "")
	}
	return values
}
