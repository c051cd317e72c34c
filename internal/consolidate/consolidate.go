package consolidate

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/statement-cli/internal/model"
	"github.com/sells-group/statement-cli/internal/parse"
)

// sourceInfo records which document supplied a value, for the overlap
// tie-break: the document whose own period set most narrowly contains the
// period is more authoritative; equal narrowness resolves to the
// later-processed document. Deterministic, never iteration order.
type sourceInfo struct {
	narrowness int
	order      int
}

// mergedItem accumulates one account's values across documents. Hierarchy
// metadata stays as introduced by the first contributing document.
type mergedItem struct {
	item         model.LineItem
	yearValues   map[int]string
	yearSources  map[int]sourceInfo
	labelValues  map[string]string
	labelSources map[string]sourceInfo
}

// Consolidate merges same-type statements from multiple source documents
// into one deduplicated, chronologically ordered statement. The statement
// type is taken from the first input; inputs of a different type are
// skipped with a warning. An empty input set yields an empty consolidated
// statement, not an error.
func Consolidate(statements []*model.Statement) *model.ConsolidatedStatement {
	out := &model.ConsolidatedStatement{}
	if len(statements) == 0 {
		return out
	}

	out.StatementType = statements[0].StatementType
	var inputs []*model.Statement
	for _, s := range statements {
		if s == nil {
			continue
		}
		if s.StatementType != out.StatementType {
			out.Warnings = append(out.Warnings, fmt.Sprintf(
				"skipped %s statement in %s consolidation", s.StatementType, out.StatementType))
			continue
		}
		inputs = append(inputs, s)
	}
	out.SourceDocuments = len(inputs)

	yearLabels := mergePeriods(inputs, out)

	var (
		order []string
		items = make(map[string]*mergedItem)
	)
	for docIdx, stmt := range inputs {
		narrowness := len(stmt.ReportingPeriods)
		for _, li := range stmt.LineItems {
			key := NormalizeAccount(li.AccountName)
			if key == "" {
				continue
			}
			mi, ok := items[key]
			if !ok {
				if fk, found := closestKey(key, order); found {
					mi, ok = items[fk], true
				}
			}
			if !ok {
				mi = &mergedItem{
					item:         li,
					yearValues:   make(map[int]string),
					yearSources:  make(map[int]sourceInfo),
					labelValues:  make(map[string]string),
					labelSources: make(map[string]sourceInfo),
				}
				mi.item.Values = nil
				items[key] = mi
				order = append(order, key)
			} else if li.IsSectionHeader && mi.item.IsSectionHeader {
				// A section header matching an existing one by name is
				// never duplicated.
				continue
			}

			src := sourceInfo{narrowness: narrowness, order: docIdx}
			for label, value := range li.Values {
				if year := parse.YearOf(label); year > 0 {
					mergeValue(mi.yearValues, mi.yearSources, year, value, src, mi.item.AccountName)
				} else {
					// Positional slots (shareholders' equity) carry no
					// fiscal year; merge by literal label.
					mergeLabelValue(mi.labelValues, mi.labelSources, label, value, src, mi.item.AccountName)
				}
			}
		}
	}

	out.LineItems = make([]model.LineItem, 0, len(order))
	for _, key := range order {
		mi := items[key]
		li := mi.item
		values := make(map[string]string, len(mi.yearValues)+len(mi.labelValues))
		for year, v := range mi.yearValues {
			label, ok := yearLabels[year]
			if !ok {
				label = fmt.Sprintf("%d", year)
			}
			values[label] = v
		}
		for label, v := range mi.labelValues {
			values[label] = v
		}
		if len(values) > 0 {
			li.Values = values
		}
		if !li.IsSectionHeader && len(values) == 0 {
			// An account that contributed no surviving values is not
			// retained as a placeholder.
			continue
		}
		out.LineItems = append(out.LineItems, li)
	}

	fillHeaderFields(inputs, out)
	return out
}

// mergePeriods builds the consolidated reporting-period timeline: the
// union of all inputs' periods, strictly descending by embedded year, one
// label per year. Conflicting labels for the same year keep the label from
// the most recently supplied statement, with a warning. Returns the final
// year-to-label mapping.
func mergePeriods(inputs []*model.Statement, out *model.ConsolidatedStatement) map[int]string {
	yearLabels := make(map[int]string)
	var years []int
	for _, stmt := range inputs {
		for _, label := range stmt.ReportingPeriods {
			year := parse.YearOf(label)
			if year == 0 {
				continue
			}
			existing, ok := yearLabels[year]
			if !ok {
				years = append(years, year)
			} else if existing != label {
				out.Warnings = append(out.Warnings, fmt.Sprintf(
					"conflicting labels for fiscal year %d: %q replaces %q", year, label, existing))
				zap.L().Warn("consolidate: conflicting period labels",
					zap.Int("year", year),
					zap.String("kept", label),
					zap.String("replaced", existing),
				)
			}
			yearLabels[year] = label
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out.ReportingPeriods = make([]string, len(years))
	for i, y := range years {
		out.ReportingPeriods[i] = yearLabels[y]
	}
	return yearLabels
}

func mergeValue(values map[int]string, sources map[int]sourceInfo, year int, value string, src sourceInfo, account string) {
	cur, ok := sources[year]
	if !ok {
		values[year] = value
		sources[year] = src
		return
	}
	if values[year] != value {
		zap.L().Warn("consolidate: value conflict",
			zap.String("account", account),
			zap.Int("year", year),
			zap.String("existing", values[year]),
			zap.String("candidate", value),
		)
	}
	// Narrower period set wins; equal narrowness resolves to the
	// later-processed document.
	if src.narrowness < cur.narrowness || (src.narrowness == cur.narrowness && src.order >= cur.order) {
		values[year] = value
		sources[year] = src
	}
}

func mergeLabelValue(values map[string]string, sources map[string]sourceInfo, label, value string, src sourceInfo, account string) {
	cur, ok := sources[label]
	if !ok {
		values[label] = value
		sources[label] = src
		return
	}
	if values[label] != value {
		zap.L().Warn("consolidate: value conflict",
			zap.String("account", account),
			zap.String("column", label),
			zap.String("existing", values[label]),
			zap.String("candidate", value),
		)
	}
	if src.narrowness < cur.narrowness || (src.narrowness == cur.narrowness && src.order >= cur.order) {
		values[label] = value
		sources[label] = src
	}
}

// fillHeaderFields takes company, title, and units from the first input
// that supplies each.
func fillHeaderFields(inputs []*model.Statement, out *model.ConsolidatedStatement) {
	for _, stmt := range inputs {
		if out.CompanyName == "" {
			out.CompanyName = stmt.CompanyName
		}
		if out.DocumentTitle == "" {
			out.DocumentTitle = stmt.DocumentTitle
		}
		if out.UnitsNote == "" {
			out.UnitsNote = stmt.UnitsNote
		}
	}
}
