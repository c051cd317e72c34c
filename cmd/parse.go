package main

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/statement-cli/internal/export"
	"github.com/sells-group/statement-cli/internal/model"
	"github.com/sells-group/statement-cli/internal/parse"
)

var (
	parseType   string
	parseFormat string
	parseOut    string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Parse statement text files into structured line items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := model.ParseStatementType(parseType)
		if !ok {
			return eris.Errorf("unknown statement type: %s", parseType)
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

			zap.L().Info("parsed statement",
				zap.String("input", path),
				zap.String("company", stmt.CompanyName),
				zap.Int("line_items", len(stmt.LineItems)),
				zap.Strings("periods", stmt.ReportingPeriods),
			)

			outPath := outputPath(path, parseOut, parseFormat)
			if err := writeStatement(stmt, outPath, parseFormat); err != nil {
				return err
			}
			zap.L().Info("wrote output", zap.String("path", outPath))
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseType, "type", "t", "", "statement type (income, balance, cashflow, comprehensive, equity)")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "xlsx", "output format (xlsx or json)")
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "output path (defaults next to input)")
	parseCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(parseCmd)
}

// outputPath derives the output file path from the input path when no
// explicit --out was given.
func outputPath(inputPath, out, format string) string {
	if out != "" {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(cfg.Export.Dir, base+"."+format)
}

func writeStatement(stmt *model.Statement, path, format string) error {
	switch format {
	case "xlsx":
		return export.WriteStatementXLSX(stmt, path)
	case "json":
		return export.WriteJSON(stmt, path)
	default:
		return eris.Errorf("unsupported output format: %s", format)
	}
}
