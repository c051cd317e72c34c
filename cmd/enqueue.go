package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/statement-cli/internal/model"
)

var enqueueType string

var enqueueCmd = &cobra.Command{
	Use:   "enqueue <file>...",
	Short: "Queue statement files for background extraction",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := model.ParseStatementType(enqueueType)
		if !ok {
			return eris.Errorf("unknown statement type: %s", enqueueType)
		}

		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		for _, path := range args {
			job, err := st.EnqueueJob(cmd.Context(), t, path)
			if err != nil {
				return err
			}
			zap.L().Info("job queued",
				zap.String("job_id", job.ID),
				zap.String("input", path),
				zap.String("statement_type", string(t)),
			)
		}
		return nil
	},
}

func init() {
	enqueueCmd.Flags().StringVarP(&enqueueType, "type", "t", "", "statement type (income, balance, cashflow, comprehensive, equity)")
	enqueueCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(enqueueCmd)
}
