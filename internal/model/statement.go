package model

// StatementType identifies one of the five supported financial statement
// layouts. Parsers are registered against these values; nothing deeper in
// the pipeline inspects type names.
type StatementType string

const (
	StatementTypeIncome        StatementType = "income_statement"
	StatementTypeBalanceSheet  StatementType = "balance_sheet"
	StatementTypeCashFlow      StatementType = "cash_flow"
	StatementTypeComprehensive StatementType = "comprehensive_income"
	StatementTypeEquity        StatementType = "shareholders_equity"
)

// AllStatementTypes lists every registered statement type in display order.
var AllStatementTypes = []StatementType{
	StatementTypeIncome,
	StatementTypeBalanceSheet,
	StatementTypeCashFlow,
	StatementTypeComprehensive,
	StatementTypeEquity,
}

// ParseStatementType resolves a user-supplied type string (CLI argument or
// job row) to a StatementType. Returns ("", false) for unknown values.
func ParseStatementType(s string) (StatementType, bool) {
	for _, t := range AllStatementTypes {
		if string(t) == s {
			return t, true
		}
	}
	// Common short aliases accepted at the CLI boundary.
	switch s {
	case "income":
		return StatementTypeIncome, true
	case "balance":
		return StatementTypeBalanceSheet, true
	case "cashflow", "cash":
		return StatementTypeCashFlow, true
	case "comprehensive":
		return StatementTypeComprehensive, true
	case "equity":
		return StatementTypeEquity, true
	}
	return "", false
}

// ActivityType tags cash-flow line items with the activity section they
// belong to.
type ActivityType string

const (
	ActivityOperating    ActivityType = "operating"
	ActivityInvesting    ActivityType = "investing"
	ActivityFinancing    ActivityType = "financing"
	ActivitySupplemental ActivityType = "supplemental"
)

// CashFlowDirection classifies a cash-flow item as a source or use of cash.
type CashFlowDirection string

const (
	DirectionInflow  CashFlowDirection = "inflow"
	DirectionOutflow CashFlowDirection = "outflow"
	DirectionNeutral CashFlowDirection = "neutral"
)

// LineItem is one reconstructed row of a statement. Values are keyed by
// reporting-period label (or, for shareholders' equity, by positional slot
// name); iteration order comes from the owning Statement's ReportingPeriods.
type LineItem struct {
	AccountName     string            `json:"account_name"`
	Values          map[string]string `json:"values,omitempty"`
	IndentLevel     int               `json:"indent_level"`
	IsSectionHeader bool              `json:"is_section_header,omitempty"`
	IsTotal         bool              `json:"is_total,omitempty"`
	IsCalculated    bool              `json:"is_calculated,omitempty"`
	Category        string            `json:"category,omitempty"`
	ParentSection   string            `json:"parent_section,omitempty"`

	// Cash-flow statements only.
	ActivityType      ActivityType      `json:"activity_type,omitempty"`
	CashFlowDirection CashFlowDirection `json:"cash_flow_direction,omitempty"`
}

// Value returns the amount for one period, or "" if unset.
func (li LineItem) Value(period string) string {
	if li.Values == nil {
		return ""
	}
	return li.Values[period]
}

// Statement is one structured financial table extracted from one source
// document. Immutable after construction by a parser.
type Statement struct {
	StatementType    StatementType `json:"statement_type"`
	CompanyName      string        `json:"company_name"`
	DocumentTitle    string        `json:"document_title"`
	UnitsNote        string        `json:"units_note"`
	ReportingPeriods []string      `json:"reporting_periods"`
	LineItems        []LineItem    `json:"line_items"`
}

// ItemsInCategory returns the line items tagged with the given category.
// Derived view only; the statement owns no per-category state.
func (s *Statement) ItemsInCategory(category string) []LineItem {
	var out []LineItem
	for _, li := range s.LineItems {
		if li.Category == category {
			out = append(out, li)
		}
	}
	return out
}

// Totals returns the subtotal/total rows of the statement.
func (s *Statement) Totals() []LineItem {
	var out []LineItem
	for _, li := range s.LineItems {
		if li.IsTotal {
			out = append(out, li)
		}
	}
	return out
}

// SectionHeaders returns the header rows that open labeled subsections.
func (s *Statement) SectionHeaders() []LineItem {
	var out []LineItem
	for _, li := range s.LineItems {
		if li.IsSectionHeader {
			out = append(out, li)
		}
	}
	return out
}

// ConsolidatedStatement merges same-type statements from multiple source
// documents into one multi-year timeline. ReportingPeriods is strictly
// descending by embedded fiscal year with no repeated year.
type ConsolidatedStatement struct {
	StatementType    StatementType `json:"statement_type"`
	CompanyName      string        `json:"company_name"`
	DocumentTitle    string        `json:"document_title"`
	UnitsNote        string        `json:"units_note"`
	ReportingPeriods []string      `json:"reporting_periods"`
	LineItems        []LineItem    `json:"line_items"`
	SourceDocuments  int           `json:"source_documents"`
	Warnings         []string      `json:"warnings,omitempty"`
}
