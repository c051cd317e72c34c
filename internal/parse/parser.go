package parse

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/statement-cli/internal/model"
)

// Parser turns one raw-text page into a Statement. Implementations are
// stateless and safe for concurrent use; all per-parse state lives inside
// a single Parse call.
type Parser interface {
	Type() model.StatementType
	Parse(raw string) (*model.Statement, error)
	ParseFile(path string) (*model.Statement, error)
}

// decorator applies statement-specific tagging to a line item as it is
// built (cash-flow activity type and direction). A fresh decorator is
// created per parse so no state leaks between calls.
type decorator func(item *model.LineItem)

// schema is the per-statement-type configuration the shared driver runs
// over: column arity, section rules, category rules, and metadata hints.
// The five statement parsers differ only in their schema tables plus the
// optional decorator hook.
type schema struct {
	typ           model.StatementType
	arity         int
	section       SectionRules
	categories    RuleSet
	titleKeywords []string
	defaultTitle  string

	// slots overrides period-keyed values with fixed positional slot
	// names (shareholders' equity, whose columns are unlabeled in the
	// row data itself).
	slots []string

	// newDecorator, when set, is invoked once per parse to build the
	// statement-specific item hook.
	newDecorator func() decorator
}

// ParseTrace accounts for every candidate row of a parse: each row either
// became exactly one line item or was dropped under a named reason.
type ParseTrace struct {
	Candidates int
	Emitted    int
	Dropped    []DroppedRow
}

type statementParser struct {
	sc schema
}

func (p *statementParser) Type() model.StatementType { return p.sc.typ }

func (p *statementParser) ParseFile(path string) (*model.Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "parse: read %s", path)
	}
	return p.Parse(string(data))
}

func (p *statementParser) Parse(raw string) (*model.Statement, error) {
	stmt, _ := p.parse(raw)
	return stmt, nil
}

// ParseWithTrace parses and additionally returns the row accounting used
// by callers that audit filter behavior.
func (p *statementParser) ParseWithTrace(raw string) (*model.Statement, ParseTrace) {
	return p.parse(raw)
}

func (p *statementParser) parse(raw string) (*model.Statement, ParseTrace) {
	md := extractMetadata(raw, p.sc.titleKeywords, p.sc.defaultTitle)
	set := ExtractRows(raw, p.sc.arity)

	trace := ParseTrace{
		Candidates: len(set.Rows) + len(set.Dropped),
		Dropped:    set.Dropped,
	}

	keys := md.periods
	if p.sc.slots != nil {
		keys = p.sc.slots
	}

	ctx := &SectionContext{}
	var dec decorator
	if p.sc.newDecorator != nil {
		dec = p.sc.newDecorator()
	}

	var items []model.LineItem
	for _, row := range set.Rows {
		values := make(map[string]string, len(keys))
		for i, rawVal := range row.Values {
			if i >= len(keys) {
				break
			}
			if cv := CleanValue(rawVal); cv != "" {
				values[keys[i]] = cv
			}
		}

		// Rule 1: section headers open a subsection and carry no values.
		if p.sc.section.IsHeader(row.AccountName, len(values) > 0) {
			name := strings.TrimSuffix(strings.TrimSpace(row.AccountName), ":")
			item := model.LineItem{
				AccountName:     name,
				IsSectionHeader: true,
				Category:        p.sc.categories.Categorize(name),
			}
			ctx.Open(row.AccountName)
			if dec != nil {
				dec(&item)
			}
			items = append(items, item)
			continue
		}

		if len(values) == 0 {
			// Not a header and nothing extractable: never emitted as a
			// placeholder.
			trace.Dropped = append(trace.Dropped, DroppedRow{Line: row.AccountName, Reason: DropNoValues})
			zap.L().Debug("parse: dropped row with no values",
				zap.String("statement_type", string(p.sc.typ)),
				zap.String("account", row.AccountName),
			)
			continue
		}

		indent, parent := ctx.Placement(p.sc.section)
		lower := strings.ToLower(row.AccountName)
		item := model.LineItem{
			AccountName:   strings.TrimSpace(row.AccountName),
			Values:        values,
			IndentLevel:   indent,
			ParentSection: parent,
			Category:      p.sc.categories.Categorize(row.AccountName),
			IsTotal:       strings.Contains(lower, "total") || p.sc.section.IsTotalLine(row.AccountName),
			IsCalculated:  p.sc.categories.IsCalculated(row.AccountName),
		}
		if dec != nil {
			dec(&item)
		}
		items = append(items, item)

		// Rule 2: totals close the section they summarize.
		if p.sc.section.IsTotalLine(row.AccountName) {
			ctx.Close()
		}
	}

	trace.Emitted = len(items)
	return &model.Statement{
		StatementType:    p.sc.typ,
		CompanyName:      md.company,
		DocumentTitle:    md.title,
		UnitsNote:        md.units,
		ReportingPeriods: md.periods,
		LineItems:        items,
	}, trace
}
