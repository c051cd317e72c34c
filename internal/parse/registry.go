package parse

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/statement-cli/internal/model"
)

// registry maps each statement type to its parser. Parsers are stateless,
// so shared instances are safe under concurrent parses.
var registry = map[model.StatementType]Parser{
	model.StatementTypeIncome:        NewIncomeParser(),
	model.StatementTypeBalanceSheet:  NewBalanceSheetParser(),
	model.StatementTypeCashFlow:      NewCashFlowParser(),
	model.StatementTypeComprehensive: NewComprehensiveIncomeParser(),
	model.StatementTypeEquity:        NewEquityParser(),
}

// ParserFor returns the parser registered for a statement type. Unknown
// types fail here at the dispatch boundary; nothing deeper in the pipeline
// inspects type names.
func ParserFor(t model.StatementType) (Parser, error) {
	p, ok := registry[t]
	if !ok {
		return nil, eris.Errorf("parse: unsupported statement type %q", t)
	}
	return p, nil
}
