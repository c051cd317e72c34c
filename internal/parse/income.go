package parse

import "github.com/sells-group/statement-cli/internal/model"

// incomeArity: account name plus three fiscal-year value columns.
const incomeArity = 4

var incomeSectionRules = SectionRules{
	HeaderKeywords: []string{
		"operating expenses",
		"costs and expenses",
	},
	TotalKeywords: []string{"total"},
	Indent: map[string]int{
		"operating expenses": 1,
		"costs and expenses": 1,
	},
}

var incomeCategories = RuleSet{
	// Expense keywords run first: "Cost of revenue" and "Sales, general
	// and administrative" both carry revenue-rule words.
	Rules: []CategoryRule{
		{Keywords: []string{"cost", "expense", "research and development", "sales, general"}, Category: "expense"},
		{Keywords: []string{"revenue", "sales"}, Category: "revenue"},
	},
	Default: "income",
	CalculatedKeywords: []string{
		"gross profit",
		"gross margin",
		"operating income",
		"income before",
		"net income",
		"earnings per share",
	},
}

// NewIncomeParser builds the income statement parser.
func NewIncomeParser() Parser {
	return &statementParser{sc: schema{
		typ:        model.StatementTypeIncome,
		arity:      incomeArity,
		section:    incomeSectionRules,
		categories: incomeCategories,
		titleKeywords: []string{
			"statements of income",
			"statement of income",
			"statements of operations",
			"statement of operations",
		},
		defaultTitle: "Consolidated Statements of Income",
	}}
}
