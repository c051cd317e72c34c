package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/statement-cli/internal/model"
)

var cashFlowSample = strings.Join([]string{
	"CONSOLIDATED STATEMENTS OF CASH FLOWS",
	"(In millions)",
	"",
	"Year Ended January 26, 2020",
	"",
	"Cash flows from operating activities:",
	"Net income 2,796",
	"Depreciation and amortization 381",
	"Changes in operating assets and liabilities:",
	"Accounts receivable (233)",
	"Net cash provided by operating activities 4,761",
	"Cash flows from investing activities:",
	"Purchases of marketable securities (6,874)",
	"Proceeds from maturities of marketable securities 4,744",
	"Net cash used in investing activities (2,987)",
	"Cash flows from financing activities:",
	"Dividends paid (390)",
	"Net cash used in financing activities (792)",
}, "\n")

func TestCashFlowParserActivityTracking(t *testing.T) {
	t.Parallel()

	stmt, err := NewCashFlowParser().Parse(cashFlowSample)
	require.NoError(t, err)

	wantActivity := map[string]model.ActivityType{
		"Net income":                                model.ActivityOperating,
		"Depreciation and amortization":             model.ActivityOperating,
		"Accounts receivable":                       model.ActivityOperating,
		"Net cash provided by operating activities": model.ActivityOperating,
		"Purchases of marketable securities":        model.ActivityInvesting,
		"Net cash used in investing activities":     model.ActivityInvesting,
		"Dividends paid":                            model.ActivityFinancing,
		"Net cash used in financing activities":     model.ActivityFinancing,
	}
	for name, want := range wantActivity {
		assert.Equal(t, want, findItem(t, stmt, name).ActivityType, "item %q", name)
	}
}

func TestCashFlowParserDirectionInference(t *testing.T) {
	t.Parallel()

	stmt, err := NewCashFlowParser().Parse(cashFlowSample)
	require.NoError(t, err)

	wantDirection := map[string]model.CashFlowDirection{
		// Keyword-driven.
		"Depreciation and amortization":                     model.DirectionInflow,
		"Purchases of marketable securities":                model.DirectionOutflow,
		"Proceeds from maturities of marketable securities": model.DirectionInflow,
		"Dividends paid":                                    model.DirectionOutflow,
		// Sign-driven.
		"Net income":          model.DirectionInflow,
		"Accounts receivable": model.DirectionOutflow,
		"Net cash provided by operating activities": model.DirectionInflow,
		"Net cash used in investing activities":     model.DirectionOutflow,
	}
	for name, want := range wantDirection {
		assert.Equal(t, want, findItem(t, stmt, name).CashFlowDirection, "item %q", name)
	}
}

func TestCashFlowParserSectionsAndCategories(t *testing.T) {
	t.Parallel()

	stmt, err := NewCashFlowParser().Parse(cashFlowSample)
	require.NoError(t, err)

	ar := findItem(t, stmt, "Accounts receivable")
	assert.Equal(t, "working_capital", ar.Category)
	assert.Equal(t, 2, ar.IndentLevel)
	assert.Equal(t, "Changes in operating assets and liabilities", ar.ParentSection)

	da := findItem(t, stmt, "Depreciation and amortization")
	assert.Equal(t, "operating_adjustment", da.Category)

	netOp := findItem(t, stmt, "Net cash provided by operating activities")
	assert.True(t, netOp.IsTotal)
	assert.True(t, netOp.IsCalculated)

	// Each activity header resets the section for what follows.
	purchases := findItem(t, stmt, "Purchases of marketable securities")
	assert.Equal(t, "investment_activity", purchases.Category)
	assert.Equal(t, "Cash flows from investing activities", purchases.ParentSection)
}

// The activity tracker lives inside the parse call; a statement missing
// its operating header still defaults to operating, and a previous parse
// never bleeds activity state into the next.
func TestCashFlowParserActivityStateDoesNotLeak(t *testing.T) {
	t.Parallel()

	p := NewCashFlowParser()
	_, err := p.Parse(cashFlowSample)
	require.NoError(t, err)

	stmt, err := p.Parse("Year Ended January 26, 2020\nDepreciation and amortization 381")
	require.NoError(t, err)
	assert.Equal(t, model.ActivityOperating, findItem(t, stmt, "Depreciation and amortization").ActivityType)
}
