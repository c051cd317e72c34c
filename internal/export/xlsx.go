package export

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/statement-cli/internal/model"
)

// sheetNames maps statement types to their worksheet tab names.
var sheetNames = map[model.StatementType]string{
	model.StatementTypeIncome:        "Income Statement",
	model.StatementTypeBalanceSheet:  "Balance Sheet",
	model.StatementTypeCashFlow:      "Cash Flow",
	model.StatementTypeComprehensive: "Comprehensive Income",
	model.StatementTypeEquity:        "Shareholders Equity",
}

// equityColumns maps the shareholders'-equity positional value slots to
// their display headers. Equity values are slot-keyed, not period-keyed.
var equityColumns = []struct{ key, label string }{
	{"shares", "Shares"},
	{"amount", "Amount"},
	{"additional_paid_in_capital", "Additional Paid-In Capital"},
	{"treasury_stock", "Treasury Stock"},
	{"accumulated_other_comprehensive_income", "Accumulated Other Comprehensive Income"},
	{"retained_earnings", "Retained Earnings"},
	{"total_equity", "Total Shareholders' Equity"},
}

// indentWidth is the number of leading spaces per indent level in the
// rendered account column.
const indentWidth = 4

// WriteStatementXLSX renders a statement as a formatted workbook: one data
// row per line item, indentation as leading spaces, section headers as bold
// separator rows, units note under the title.
func WriteStatementXLSX(stmt *model.Statement, path string) error {
	return writeXLSX(xlsxDoc{
		typ:     stmt.StatementType,
		company: stmt.CompanyName,
		title:   stmt.DocumentTitle,
		units:   stmt.UnitsNote,
		periods: stmt.ReportingPeriods,
		items:   stmt.LineItems,
	}, path)
}

// WriteConsolidatedXLSX renders a consolidated statement the same way,
// with the merged multi-year period columns.
func WriteConsolidatedXLSX(cs *model.ConsolidatedStatement, path string) error {
	return writeXLSX(xlsxDoc{
		typ:     cs.StatementType,
		company: cs.CompanyName,
		title:   cs.DocumentTitle,
		units:   cs.UnitsNote,
		periods: cs.ReportingPeriods,
		items:   cs.LineItems,
	}, path)
}

type xlsxDoc struct {
	typ     model.StatementType
	company string
	title   string
	units   string
	periods []string
	items   []model.LineItem
}

func writeXLSX(doc xlsxDoc, path string) error {
	f := xlsx.NewFile()

	name := sheetNames[doc.typ]
	if name == "" {
		name = "Statement"
	}
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}

	bold := xlsx.NewStyle()
	bold.Font.Bold = true
	bold.ApplyFont = true

	addTitleRow(sheet, doc.company, bold)
	addTitleRow(sheet, doc.title, bold)
	if doc.units != "" {
		addTitleRow(sheet, "("+doc.units+")", nil)
	}
	sheet.AddRow()

	// Header row: account column plus one column per period (or, for
	// shareholders' equity, per positional slot).
	keys := doc.periods
	labels := doc.periods
	if doc.typ == model.StatementTypeEquity {
		keys = make([]string, len(equityColumns))
		labels = make([]string, len(equityColumns))
		for i, col := range equityColumns {
			keys[i] = col.key
			labels[i] = col.label
		}
	}

	header := sheet.AddRow()
	accountCell := header.AddCell()
	accountCell.Value = "Account"
	accountCell.SetStyle(bold)
	for _, label := range labels {
		c := header.AddCell()
		c.Value = label
		c.SetStyle(bold)
	}

	for _, li := range doc.items {
		row := sheet.AddRow()
		nameCell := row.AddCell()
		nameCell.Value = strings.Repeat(" ", li.IndentLevel*indentWidth) + li.AccountName

		if li.IsSectionHeader {
			nameCell.SetStyle(bold)
			continue
		}
		if li.IsTotal {
			nameCell.SetStyle(bold)
		}
		for _, key := range keys {
			row.AddCell().Value = li.Value(key)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func addTitleRow(sheet *xlsx.Sheet, text string, style *xlsx.Style) {
	if text == "" {
		return
	}
	cell := sheet.AddRow().AddCell()
	cell.Value = text
	if style != nil {
		cell.SetStyle(style)
	}
}
