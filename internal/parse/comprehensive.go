package parse

import "github.com/sells-group/statement-cli/internal/model"

// comprehensiveArity matches the cash flow layout: account name plus five
// value columns.
const comprehensiveArity = 6

var comprehensiveSectionRules = SectionRules{
	HeaderKeywords: []string{
		"other comprehensive income",
		"other comprehensive loss",
		"available-for-sale securities",
		"cash flow hedges",
	},
	TotalKeywords: []string{"total"},
	Indent: map[string]int{
		"available-for-sale securities": 2,
		"cash flow hedges":              2,
	},
}

var comprehensiveCategories = RuleSet{
	Rules: []CategoryRule{
		{Keywords: []string{"net income"}, Category: "net_income"},
		{Keywords: []string{"other comprehensive"}, Category: "oci"},
		{Keywords: []string{"comprehensive income", "comprehensive loss"}, Category: "comprehensive_income"},
		{Keywords: []string{
			"unrealized", "reclassification", "foreign currency",
			"hedges", "available-for-sale", "pension", "tax effect",
		}, Category: "oci_component"},
	},
	Default:            "oci_component",
	CalculatedKeywords: []string{"comprehensive income", "comprehensive loss", "net income"},
}

// NewComprehensiveIncomeParser builds the comprehensive income parser.
func NewComprehensiveIncomeParser() Parser {
	return &statementParser{sc: schema{
		typ:           model.StatementTypeComprehensive,
		arity:         comprehensiveArity,
		section:       comprehensiveSectionRules,
		categories:    comprehensiveCategories,
		titleKeywords: []string{"comprehensive income", "comprehensive loss"},
		defaultTitle:  "Consolidated Statements of Comprehensive Income",
	}}
}
