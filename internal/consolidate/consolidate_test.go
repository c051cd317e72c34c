package consolidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/statement-cli/internal/model"
	"github.com/sells-group/statement-cli/internal/parse"
)

// incomeDoc builds a one-account income statement covering the given
// periods, with one value per period.
func incomeDoc(account string, periods []string, values []string) *model.Statement {
	vals := make(map[string]string, len(periods))
	for i, p := range periods {
		vals[p] = values[i]
	}
	return &model.Statement{
		StatementType:    model.StatementTypeIncome,
		CompanyName:      "NVIDIA Corporation",
		DocumentTitle:    "Consolidated Statements of Income",
		UnitsNote:        "In millions",
		ReportingPeriods: periods,
		LineItems: []model.LineItem{
			{AccountName: account, Values: vals, Category: "revenue"},
		},
	}
}

func consolidatedItem(t *testing.T, cs *model.ConsolidatedStatement, name string) model.LineItem {
	t.Helper()
	for _, li := range cs.LineItems {
		if li.AccountName == name {
			return li
		}
	}
	t.Fatalf("consolidated item %q not found", name)
	return model.LineItem{}
}

func TestConsolidateBuildsDescendingTimeline(t *testing.T) {
	t.Parallel()

	recent := incomeDoc("Revenue",
		[]string{"Year Ended January 26, 2020", "Year Ended January 27, 2019", "Year Ended January 28, 2018"},
		[]string{"10,918", "11,716", "9,714"})
	older := incomeDoc("Revenue",
		[]string{"Year Ended January 28, 2018", "Year Ended January 29, 2017", "Year Ended January 31, 2016"},
		[]string{"9,714", "6,910", "5,010"})

	cs := Consolidate([]*model.Statement{recent, older})

	require.Equal(t, []string{
		"Year Ended January 26, 2020",
		"Year Ended January 27, 2019",
		"Year Ended January 28, 2018",
		"Year Ended January 29, 2017",
		"Year Ended January 31, 2016",
	}, cs.ReportingPeriods)
	assert.Equal(t, 2, cs.SourceDocuments)

	rev := consolidatedItem(t, cs, "Revenue")
	assert.Len(t, rev.Values, 5)
	assert.Equal(t, "10,918", rev.Value("Year Ended January 26, 2020"))
	assert.Equal(t, "5,010", rev.Value("Year Ended January 31, 2016"))

	// Overlapping 2018 appears once.
	years := make(map[int]bool)
	for _, p := range cs.ReportingPeriods {
		y := parse.YearOf(p)
		assert.False(t, years[y], "year %d repeated", y)
		years[y] = true
	}
}

// The timeline is strictly descending by embedded fiscal year no matter
// what order the documents arrive in.
func TestConsolidateTimelineOrderIsInputOrderIndependent(t *testing.T) {
	t.Parallel()

	older := incomeDoc("Revenue",
		[]string{"Year Ended January 31, 2016"}, []string{"5,010"})
	recent := incomeDoc("Revenue",
		[]string{"Year Ended January 26, 2020"}, []string{"10,918"})

	cs := Consolidate([]*model.Statement{older, recent})
	require.Len(t, cs.ReportingPeriods, 2)
	assert.Equal(t, 2020, parse.YearOf(cs.ReportingPeriods[0]))
	assert.Equal(t, 2016, parse.YearOf(cs.ReportingPeriods[1]))
}

// When two documents both report a period, the one whose own period set
// most narrowly contains it is more authoritative.
func TestConsolidateNarrowerDocumentWinsOverlap(t *testing.T) {
	t.Parallel()

	narrow := incomeDoc("Revenue",
		[]string{"Year Ended January 31, 2021", "Year Ended January 26, 2020"},
		[]string{"16,675", "10,920"})
	wide := incomeDoc("Revenue",
		[]string{"Year Ended January 26, 2020", "Year Ended January 27, 2019", "Year Ended January 28, 2018"},
		[]string{"10,918", "11,716", "9,714"})

	for name, docs := range map[string][]*model.Statement{
		"narrow first": {narrow, wide},
		"narrow last":  {wide, narrow},
	} {
		t.Run(name, func(t *testing.T) {
			cs := Consolidate(docs)
			rev := consolidatedItem(t, cs, "Revenue")
			assert.Equal(t, "10,920", rev.Value("Year Ended January 26, 2020"))
		})
	}
}

// Equal narrowness resolves to the most recently supplied document.
func TestConsolidateEqualNarrownessPrefersLaterDocument(t *testing.T) {
	t.Parallel()

	first := incomeDoc("Revenue",
		[]string{"Year Ended January 26, 2020"}, []string{"10,918"})
	second := incomeDoc("Revenue",
		[]string{"Year Ended January 26, 2020"}, []string{"10,920"})

	cs := Consolidate([]*model.Statement{first, second})
	assert.Equal(t, "10,920", consolidatedItem(t, cs, "Revenue").Value("Year Ended January 26, 2020"))
}

func TestConsolidateConflictingPeriodLabels(t *testing.T) {
	t.Parallel()

	a := incomeDoc("Revenue", []string{"Year Ended January 26, 2020"}, []string{"10,918"})
	b := incomeDoc("Revenue", []string{"January 26, 2020"}, []string{"10,918"})

	cs := Consolidate([]*model.Statement{a, b})

	require.Len(t, cs.ReportingPeriods, 1)
	assert.Equal(t, "January 26, 2020", cs.ReportingPeriods[0])
	require.NotEmpty(t, cs.Warnings)
	assert.Contains(t, cs.Warnings[0], "conflicting labels for fiscal year 2020")
}

func TestConsolidateMergesAccountVariants(t *testing.T) {
	t.Parallel()

	a := incomeDoc("Research and Development",
		[]string{"Year Ended January 26, 2020"}, []string{"2,829"})
	b := incomeDoc("Research and development",
		[]string{"Year Ended January 27, 2019"}, []string{"2,376"})
	// One OCR edit away from the canonical key.
	c := incomeDoc("Research and developmen",
		[]string{"Year Ended January 28, 2018"}, []string{"1,797"})

	cs := Consolidate([]*model.Statement{a, b, c})

	require.Len(t, cs.LineItems, 1)
	item := cs.LineItems[0]
	// Metadata comes from the first document that introduced the account.
	assert.Equal(t, "Research and Development", item.AccountName)
	assert.Len(t, item.Values, 3)
	assert.Equal(t, "1,797", item.Value("Year Ended January 28, 2018"))
}

func TestConsolidateDeduplicatesSectionHeaders(t *testing.T) {
	t.Parallel()

	header := model.LineItem{AccountName: "Operating expenses", IsSectionHeader: true, Category: "expense"}
	mk := func(period, value string) *model.Statement {
		return &model.Statement{
			StatementType:    model.StatementTypeIncome,
			ReportingPeriods: []string{period},
			LineItems: []model.LineItem{
				header,
				{AccountName: "Research and development", Values: map[string]string{period: value},
					IndentLevel: 1, ParentSection: "Operating expenses", Category: "expense"},
			},
		}
	}

	cs := Consolidate([]*model.Statement{
		mk("Year Ended January 26, 2020", "2,829"),
		mk("Year Ended January 27, 2019", "2,376"),
	})

	headers := 0
	for _, li := range cs.LineItems {
		if li.IsSectionHeader {
			headers++
		}
	}
	assert.Equal(t, 1, headers)

	rd := consolidatedItem(t, cs, "Research and development")
	assert.Equal(t, 1, rd.IndentLevel)
	assert.Equal(t, "Operating expenses", rd.ParentSection)
	assert.Len(t, rd.Values, 2)
}

func TestConsolidateSkipsMismatchedTypes(t *testing.T) {
	t.Parallel()

	income := incomeDoc("Revenue", []string{"Year Ended January 26, 2020"}, []string{"10,918"})
	balance := &model.Statement{
		StatementType:    model.StatementTypeBalanceSheet,
		ReportingPeriods: []string{"January 26, 2020"},
		LineItems: []model.LineItem{
			{AccountName: "Total assets", Values: map[string]string{"January 26, 2020": "17,315"}},
		},
	}

	cs := Consolidate([]*model.Statement{income, balance})

	assert.Equal(t, model.StatementTypeIncome, cs.StatementType)
	assert.Equal(t, 1, cs.SourceDocuments)
	require.Len(t, cs.Warnings, 1)
	assert.Contains(t, cs.Warnings[0], "skipped balance_sheet statement")
}

func TestConsolidateSlotKeyedValuesMergeByLabel(t *testing.T) {
	t.Parallel()

	mk := func(shares string) *model.Statement {
		return &model.Statement{
			StatementType: model.StatementTypeEquity,
			LineItems: []model.LineItem{
				{AccountName: "Net income", Values: map[string]string{"shares": shares, "amount": "4,141"}},
			},
		}
	}

	cs := Consolidate([]*model.Statement{mk("4,141"), mk("4,141")})
	ni := consolidatedItem(t, cs, "Net income")
	assert.Equal(t, "4,141", ni.Value("shares"))
	assert.Equal(t, "4,141", ni.Value("amount"))
	assert.Empty(t, cs.ReportingPeriods)
}

func TestConsolidateEmptyInput(t *testing.T) {
	t.Parallel()

	cs := Consolidate(nil)
	assert.Empty(t, cs.LineItems)
	assert.Empty(t, cs.ReportingPeriods)
	assert.Equal(t, 0, cs.SourceDocuments)
	assert.Empty(t, cs.Warnings)
}

func TestConsolidateFillsHeaderFieldsFromFirstSource(t *testing.T) {
	t.Parallel()

	a := incomeDoc("Revenue", []string{"Year Ended January 26, 2020"}, []string{"10,918"})
	a.CompanyName = ""
	b := incomeDoc("Revenue", []string{"Year Ended January 27, 2019"}, []string{"11,716"})

	cs := Consolidate([]*model.Statement{a, b})
	assert.Equal(t, "NVIDIA Corporation", cs.CompanyName)
	assert.Equal(t, "Consolidated Statements of Income", cs.DocumentTitle)
	assert.Equal(t, "In millions", cs.UnitsNote)
}
