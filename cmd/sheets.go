package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "List the sheets of the workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		wb, err := newWorkbookService(cfg)
		if err != nil {
			return err
		}

		names, err := wb.SheetNames(cmd.Context())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			zap.L().Info("workbook has no sheets", zap.String("source", wb.Source().String()))
			return nil
		}

		out := cmd.OutOrStdout()
		for _, name := range names {
			_, _ = fmt.Fprintln(out, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sheetsCmd)
}
