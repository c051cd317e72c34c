package parse

import "github.com/sells-group/statement-cli/internal/model"

// equitySlots are the fixed semantic column slots of a shareholders'
// equity statement, left to right. The columns are unlabeled in the row
// data itself, so the mapping is purely positional.
var equitySlots = []string{
	"shares",
	"amount",
	"additional_paid_in_capital",
	"treasury_stock",
	"accumulated_other_comprehensive_income",
	"retained_earnings",
	"total_equity",
}

var equitySectionRules = SectionRules{
	// Colon-terminated labels only; equity statements rarely carry
	// keyword-style section headers.
	TotalKeywords: []string{"total"},
}

var equityCategories = RuleSet{
	Rules: []CategoryRule{
		{Keywords: []string{"balance"}, Category: "balance"},
		{Keywords: []string{"net income", "comprehensive income"}, Category: "income"},
		{Keywords: []string{
			"issuance", "stock option", "employee stock", "stock plans",
			"share-based", "stock-based",
		}, Category: "stock_activity"},
		{Keywords: []string{"repurchase", "treasury"}, Category: "buyback"},
		{Keywords: []string{"dividend"}, Category: "dividend"},
	},
	Default:            "equity_activity",
	CalculatedKeywords: []string{"balance", "net income", "comprehensive income"},
}

// NewEquityParser builds the shareholders' equity parser. Row width is
// variable, so rows keep their natural arity and values map onto the
// positional slots.
func NewEquityParser() Parser {
	return &statementParser{sc: schema{
		typ:           model.StatementTypeEquity,
		arity:         0,
		section:       equitySectionRules,
		categories:    equityCategories,
		titleKeywords: []string{"shareholders' equity", "shareholders equity", "stockholders' equity", "stockholders equity"},
		defaultTitle:  "Consolidated Statements of Shareholders' Equity",
		slots:         equitySlots,
	}}
}
