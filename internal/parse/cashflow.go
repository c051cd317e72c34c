package parse

import (
	"strings"

	"github.com/sells-group/statement-cli/internal/model"
)

// cashFlowArity: account name plus five value columns (three fiscal years,
// some filings carry paired sub-columns).
const cashFlowArity = 6

var cashFlowSectionRules = SectionRules{
	HeaderKeywords: []string{
		"cash flows from operating activities",
		"cash flows from investing activities",
		"cash flows from financing activities",
		"operating activities",
		"investing activities",
		"financing activities",
		"adjustments to reconcile",
		"changes in operating assets and liabilities",
		"supplemental",
	},
	TotalKeywords: []string{
		"total",
		"net cash provided",
		"net cash used",
		"net increase in cash",
		"net decrease in cash",
		"net change in cash",
	},
	Indent: map[string]int{
		"adjustments to reconcile net income to net cash provided by operating activities": 2,
		"changes in operating assets and liabilities":                                      2,
	},
}

var cashFlowCategories = RuleSet{
	Rules: []CategoryRule{
		{Keywords: []string{
			"depreciation", "amortization", "stock-based compensation",
			"share-based compensation", "impairment", "deferred income tax",
		}, Category: "operating_adjustment"},
		{Keywords: []string{
			"receivable", "inventor", "payable", "accrued", "prepaid",
			"deferred revenue", "operating assets",
		}, Category: "working_capital"},
		{Keywords: []string{
			"purchases", "proceeds", "maturities", "sales of",
			"acquisition", "property and equipment",
		}, Category: "investment_activity"},
		{Keywords: []string{
			"dividend", "repurchase", "issuance", "debt", "borrow", "repayment",
		}, Category: "financing_activity"},
		{Keywords: []string{"cash paid", "cash received"}, Category: "supplemental"},
	},
	Default: "operating",
	CalculatedKeywords: []string{
		"net income",
		"net cash provided",
		"net cash used",
		"net increase",
		"net decrease",
		"net change",
	},
}

// activityKeywords maps section-header phrasing to the activity bucket.
// Evaluated in order; "supplemental" phrasing varies the most, so it is
// matched last on a single keyword.
var activityKeywords = []struct {
	keyword  string
	activity model.ActivityType
}{
	{"operating activities", model.ActivityOperating},
	{"investing activities", model.ActivityInvesting},
	{"financing activities", model.ActivityFinancing},
	{"supplemental", model.ActivitySupplemental},
}

func activityOf(name string) (model.ActivityType, bool) {
	lower := strings.ToLower(name)
	for _, ak := range activityKeywords {
		if strings.Contains(lower, ak.keyword) {
			return ak.activity, true
		}
	}
	return "", false
}

// Direction keyword tables: matched before any sign inspection. The
// reconciling non-cash addbacks (depreciation, amortization, compensation)
// count as inflows by convention even though they are not receipts.
var (
	inflowKeywords = []string{
		"proceeds", "issuance", "maturities", "sales of", "borrow",
		"depreciation", "amortization", "stock-based compensation",
		"share-based compensation",
	}
	outflowKeywords = []string{
		"purchases", "payments", "repurchase", "dividend", "repayment",
		"acquisition", "taxes paid", "cash paid",
	}
)

// inferDirection classifies an item as a source or use of cash: keywords
// first, then the sign majority of its values.
func inferDirection(item model.LineItem) model.CashFlowDirection {
	lower := strings.ToLower(item.AccountName)
	if containsAny(lower, inflowKeywords) {
		return model.DirectionInflow
	}
	if containsAny(lower, outflowKeywords) {
		return model.DirectionOutflow
	}

	positive, negative := 0, 0
	for _, v := range item.Values {
		d, ok := ParseAmount(v)
		if !ok {
			continue
		}
		switch {
		case d.IsNegative():
			negative++
		case d.IsPositive():
			positive++
		}
	}
	switch {
	case negative > positive:
		return model.DirectionOutflow
	case positive > negative:
		return model.DirectionInflow
	default:
		return model.DirectionNeutral
	}
}

// NewCashFlowParser builds the cash flow statement parser. Each item is
// additionally tagged with its activity section and cash direction; the
// activity tracker lives inside the decorator closure so parses stay
// independent.
func NewCashFlowParser() Parser {
	return &statementParser{sc: schema{
		typ:           model.StatementTypeCashFlow,
		arity:         cashFlowArity,
		section:       cashFlowSectionRules,
		categories:    cashFlowCategories,
		titleKeywords: []string{"cash flows", "cash flow"},
		defaultTitle:  "Consolidated Statements of Cash Flows",
		newDecorator: func() decorator {
			activity := model.ActivityOperating
			return func(item *model.LineItem) {
				if item.IsSectionHeader {
					if a, ok := activityOf(item.AccountName); ok {
						activity = a
					}
					item.ActivityType = activity
					return
				}
				item.ActivityType = activity
				item.CashFlowDirection = inferDirection(*item)
			}
		},
	}}
}
