package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/statement-cli/internal/consolidate"
	"github.com/sells-group/statement-cli/internal/export"
	"github.com/sells-group/statement-cli/internal/model"
	"github.com/sells-group/statement-cli/internal/parse"
)

var (
	consolidateType      string
	consolidateFormat    string
	consolidateOut       string
	consolidateFromStore bool
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate [<file>...]",
	Short: "Merge statements of one type across overlapping documents",
	Long:  "Parses each input file and merges the results into a single multi-year statement. With --from-store, consolidates previously parsed statements instead of files.",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := model.ParseStatementType(consolidateType)
		if !ok {
			return eris.Errorf("unknown statement type: %s", consolidateType)
		}

		var statements []*model.Statement
		if consolidateFromStore {
			st, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.ListStatements(cmd.Context(), t)
			if err != nil {
				return err
			}
			for _, rec := range records {
				statements = append(statements, rec.Statement)
			}
		} else {
			if len(args) == 0 {
				return eris.New("no input files (pass file paths or --from-store)")
			}
			parser, err := parse.ParserFor(t)
			if err != nil {
				return err
			}
			for _, path := range args {
				stmt, err := parser.ParseFile(path)
				if err != nil {
					return err
				}
				statements = append(statements, stmt)
			}
		}

		if len(statements) == 0 {
			return eris.New("nothing to consolidate")
		}

		result := consolidate.Consolidate(statements)
		zap.L().Info("consolidated statements",
			zap.Int("documents", result.SourceDocuments),
			zap.Int("line_items", len(result.LineItems)),
			zap.Strings("periods", result.ReportingPeriods),
			zap.Int("warnings", len(result.Warnings)),
		)
		for _, w := range result.Warnings {
			zap.L().Warn("consolidation warning", zap.String("detail", w))
		}

		outPath := consolidateOut
		if outPath == "" {
			outPath = outputPath("consolidated_"+string(t), "", consolidateFormat)
		}
		switch consolidateFormat {
		case "xlsx":
			if err := export.WriteConsolidatedXLSX(result, outPath); err != nil {
				return err
			}
		case "json":
			if err := export.WriteJSON(result, outPath); err != nil {
				return err
			}
		default:
			return eris.Errorf("unsupported output format: %s", consolidateFormat)
		}

		zap.L().Info("wrote output", zap.String("path", outPath))
		return nil
	},
}

func init() {
	consolidateCmd.Flags().StringVarP(&consolidateType, "type", "t", "", "statement type (income, balance, cashflow, comprehensive, equity)")
	consolidateCmd.Flags().StringVarP(&consolidateFormat, "format", "f", "xlsx", "output format (xlsx or json)")
	consolidateCmd.Flags().StringVarP(&consolidateOut, "out", "o", "", "output path")
	consolidateCmd.Flags().BoolVar(&consolidateFromStore, "from-store", false, "consolidate stored statements instead of files")
	consolidateCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(consolidateCmd)
}
