package parse

import "github.com/sells-group/statement-cli/internal/model"

// balanceArity: account name plus two balance-date value columns.
const balanceArity = 3

var balanceSectionRules = SectionRules{
	HeaderKeywords: []string{
		"current assets",
		"current liabilities",
		"assets",
		"liabilities",
		"shareholders' equity",
		"shareholders equity",
		"stockholders' equity",
		"stockholders equity",
	},
	TotalKeywords: []string{"total"},
	Indent: map[string]int{
		"current assets":      1,
		"current liabilities": 1,
	},
}

var balanceCategories = RuleSet{
	Rules: []CategoryRule{
		{Keywords: []string{
			"cash", "investment", "receivable", "inventor", "prepaid",
			"property", "equipment", "goodwill", "intangible", "asset",
		}, Category: "asset"},
		{Keywords: []string{
			"payable", "accrued", "debt", "deferred", "obligation", "liabilit",
		}, Category: "liability"},
		{Keywords: []string{
			"stock", "equity", "paid-in capital", "retained earnings",
			"treasury", "accumulated other comprehensive",
		}, Category: "equity"},
	},
	// Ambiguous "Total ..." rows resolve by sub-keyword before the
	// asset default applies.
	TotalFallback: []CategoryRule{
		{Keywords: []string{"asset"}, Category: "asset"},
		{Keywords: []string{"liabilit"}, Category: "liability"},
		{Keywords: []string{"equity"}, Category: "equity"},
	},
	Default: "asset",
}

// NewBalanceSheetParser builds the balance sheet parser.
func NewBalanceSheetParser() Parser {
	return &statementParser{sc: schema{
		typ:           model.StatementTypeBalanceSheet,
		arity:         balanceArity,
		section:       balanceSectionRules,
		categories:    balanceCategories,
		titleKeywords: []string{"balance sheet"},
		defaultTitle:  "Consolidated Balance Sheets",
	}}
}
