package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/statement-cli/internal/export"
	"github.com/sells-group/statement-cli/internal/model"
)

var (
	exportType   string
	exportFormat string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export [<statement.json>...]",
	Short: "Render statements as XLSX workbooks",
	Long:  "Renders saved statement JSON files as XLSX. With --type and no file arguments, exports every stored statement of that type from the database instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return exportFiles(args)
		}
		return exportFromStore(cmd)
	},
}

// exportFiles renders previously written statement JSON files. A
// consolidated statement is a superset of a single statement, so one
// decode shape covers both.
func exportFiles(paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return eris.Wrapf(err, "export: read %s", path)
		}
		var cs model.ConsolidatedStatement
		if err := json.Unmarshal(data, &cs); err != nil {
			return eris.Wrapf(err, "export: decode %s", path)
		}

		outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
		if err := export.WriteConsolidatedXLSX(&cs, outPath); err != nil {
			return err
		}
		zap.L().Info("wrote output", zap.String("path", outPath))
	}
	return nil
}

func exportFromStore(cmd *cobra.Command) error {
	t, ok := model.ParseStatementType(exportType)
	if !ok {
		return eris.Errorf("unknown statement type: %s", exportType)
	}

	st, err := initStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.ListStatements(cmd.Context(), t)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		zap.L().Info("no stored statements", zap.String("statement_type", string(t)))
		return nil
	}

	dir := exportDir
	if dir == "" {
		dir = cfg.Export.Dir
	}
	for _, rec := range records {
		name := string(t) + "_" + truncateID(rec.ID) + "." + exportFormat
		path := filepath.Join(dir, name)
		if err := writeStatement(rec.Statement, path, exportFormat); err != nil {
			return err
		}
		zap.L().Info("wrote output", zap.String("path", path))
	}
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportType, "type", "t", "", "statement type to export from the store")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "xlsx", "output format for store exports (xlsx or json)")
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (defaults to export.dir config)")
	rootCmd.AddCommand(exportCmd)
}
