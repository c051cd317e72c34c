package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/statement-cli/internal/model"
)

func testStatement() *model.Statement {
	return &model.Statement{
		StatementType: model.StatementTypeIncome,
		CompanyName:   "NVIDIA Corporation",
		DocumentTitle: "Consolidated Statements of Income",
		UnitsNote:     "In millions",
		ReportingPeriods: []string{
			"Year Ended January 26, 2020",
			"Year Ended January 27, 2019",
		},
		LineItems: []model.LineItem{
			{AccountName: "Revenue", Category: "revenue", Values: map[string]string{
				"Year Ended January 26, 2020": "10,918",
				"Year Ended January 27, 2019": "11,716",
			}},
			{AccountName: "Operating expenses", IsSectionHeader: true, Category: "expense"},
			{AccountName: "Research and development", Category: "expense", IndentLevel: 1,
				ParentSection: "Operating expenses", Values: map[string]string{
					"Year Ended January 26, 2020": "2,829",
				}},
			{AccountName: "Total operating expenses", Category: "expense", IndentLevel: 1,
				IsTotal: true, IsCalculated: true, Values: map[string]string{
					"Year Ended January 26, 2020": "3,922",
				}},
		},
	}
}

func cellValues(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.Value
	}
	return out
}

func TestWriteStatementXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "income.xlsx")
	require.NoError(t, WriteStatementXLSX(testStatement(), path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "Income Statement", sheet.Name)

	// Title block: company, document title, units, blank spacer.
	assert.Equal(t, "NVIDIA Corporation", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Consolidated Statements of Income", sheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "(In millions)", sheet.Rows[2].Cells[0].Value)

	header := cellValues(sheet.Rows[4])
	assert.Equal(t, []string{"Account", "Year Ended January 26, 2020", "Year Ended January 27, 2019"}, header)

	revenue := cellValues(sheet.Rows[5])
	assert.Equal(t, []string{"Revenue", "10,918", "11,716"}, revenue)

	// Section headers render as a bold label row with no value cells.
	headerRow := sheet.Rows[6]
	require.Len(t, headerRow.Cells, 1)
	assert.Equal(t, "Operating expenses", headerRow.Cells[0].Value)
	assert.True(t, headerRow.Cells[0].GetStyle().Font.Bold)

	// Indentation renders as leading spaces in the account column.
	rd := sheet.Rows[7]
	assert.Equal(t, "    Research and development", rd.Cells[0].Value)
	assert.Equal(t, "2,829", rd.Cells[1].Value)
	assert.Equal(t, "", rd.Cells[2].Value)

	total := sheet.Rows[8]
	assert.True(t, total.Cells[0].GetStyle().Font.Bold)
}

func TestWriteConsolidatedXLSX(t *testing.T) {
	src := testStatement()
	cs := &model.ConsolidatedStatement{
		StatementType:    src.StatementType,
		CompanyName:      src.CompanyName,
		DocumentTitle:    src.DocumentTitle,
		UnitsNote:        src.UnitsNote,
		ReportingPeriods: src.ReportingPeriods,
		LineItems:        src.LineItems,
		SourceDocuments:  2,
	}

	path := filepath.Join(t.TempDir(), "consolidated.xlsx")
	require.NoError(t, WriteConsolidatedXLSX(cs, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	assert.Equal(t, "Income Statement", f.Sheets[0].Name)
}

func TestWriteStatementXLSXEquityColumns(t *testing.T) {
	stmt := &model.Statement{
		StatementType: model.StatementTypeEquity,
		DocumentTitle: "Consolidated Statements of Shareholders' Equity",
		LineItems: []model.LineItem{
			{AccountName: "Net income", Values: map[string]string{
				"shares": "", "amount": "", "retained_earnings": "4,141",
			}},
		},
	}

	path := filepath.Join(t.TempDir(), "equity.xlsx")
	require.NoError(t, WriteStatementXLSX(stmt, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	sheet := f.Sheets[0]

	// Header row follows the fixed slot layout, not reporting periods.
	var headerRow *xlsx.Row
	for _, row := range sheet.Rows {
		if len(row.Cells) > 0 && row.Cells[0].Value == "Account" {
			headerRow = row
			break
		}
	}
	require.NotNil(t, headerRow)
	got := cellValues(headerRow)
	assert.Equal(t, "Shares", got[1])
	assert.Equal(t, "Retained Earnings", got[6])
	assert.Equal(t, "Total Shareholders' Equity", got[7])
}
