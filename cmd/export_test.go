package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/statement-cli/internal/export"
	"github.com/sells-group/statement-cli/internal/model"
)

func TestExportFiles(t *testing.T) {
	dir := t.TempDir()
	stmt := &model.Statement{
		StatementType:    model.StatementTypeIncome,
		CompanyName:      "NVIDIA Corporation",
		ReportingPeriods: []string{"Year Ended January 26, 2020"},
		LineItems: []model.LineItem{
			{AccountName: "Revenue", Values: map[string]string{"Year Ended January 26, 2020": "10,918"}},
		},
	}
	jsonPath := filepath.Join(dir, "income.json")
	require.NoError(t, export.WriteJSON(stmt, jsonPath))

	require.NoError(t, exportFiles([]string{jsonPath}))

	f, err := xlsx.OpenFile(filepath.Join(dir, "income.xlsx"))
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	assert.Equal(t, "Income Statement", f.Sheets[0].Name)
}

func TestExportFilesMissingInput(t *testing.T) {
	assert.Error(t, exportFiles([]string{filepath.Join(t.TempDir(), "missing.json")}))
}

func TestExportFilesBadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	assert.Error(t, exportFiles([]string{path}))
}
