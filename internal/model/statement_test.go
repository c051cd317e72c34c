package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatementType(t *testing.T) {
	t.Parallel()

	t.Run("canonical names", func(t *testing.T) {
		t.Parallel()
		for _, typ := range AllStatementTypes {
			got, ok := ParseStatementType(string(typ))
			require.True(t, ok)
			assert.Equal(t, typ, got)
		}
	})

	t.Run("cli aliases", func(t *testing.T) {
		t.Parallel()
		aliases := map[string]StatementType{
			"income":        StatementTypeIncome,
			"balance":       StatementTypeBalanceSheet,
			"cashflow":      StatementTypeCashFlow,
			"cash":          StatementTypeCashFlow,
			"comprehensive": StatementTypeComprehensive,
			"equity":        StatementTypeEquity,
		}
		for alias, want := range aliases {
			got, ok := ParseStatementType(alias)
			require.True(t, ok, "alias %q", alias)
			assert.Equal(t, want, got)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		_, ok := ParseStatementType("ledger")
		assert.False(t, ok)
	})
}

func TestLineItemValue(t *testing.T) {
	t.Parallel()

	li := LineItem{Values: map[string]string{"Year Ended January 26, 2020": "2,829"}}
	assert.Equal(t, "2,829", li.Value("Year Ended January 26, 2020"))
	assert.Equal(t, "", li.Value("Year Ended January 27, 2019"))

	var empty LineItem
	assert.Equal(t, "", empty.Value("anything"))
}

func TestStatementViews(t *testing.T) {
	t.Parallel()

	s := &Statement{LineItems: []LineItem{
		{AccountName: "Operating expenses", IsSectionHeader: true, Category: "expense"},
		{AccountName: "Research and development", Category: "expense"},
		{AccountName: "Total operating expenses", Category: "expense", IsTotal: true},
		{AccountName: "Revenue", Category: "revenue"},
	}}

	assert.Len(t, s.ItemsInCategory("expense"), 3)
	assert.Len(t, s.ItemsInCategory("revenue"), 1)
	assert.Empty(t, s.ItemsInCategory("asset"))

	require.Len(t, s.Totals(), 1)
	assert.Equal(t, "Total operating expenses", s.Totals()[0].AccountName)

	require.Len(t, s.SectionHeaders(), 1)
	assert.Equal(t, "Operating expenses", s.SectionHeaders()[0].AccountName)
}
