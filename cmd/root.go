package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/sheetmap/internal/config"
)

var (
	cfg          *config.Config
	workbookFlag string
)

var rootCmd = &cobra.Command{
	Use:   "sheetmap",
	Short: "Plot spreadsheet sheets of labelled coordinates on a map",
	Long: `Reads a workbook (XLSX or CSV, local or over HTTP/FTP), normalizes each sheet
into labelled points, assigns marker colours and serves an interactive map that
compares sheets side by side.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if workbookFlag != "" {
			c.Workbook.Source = workbookFlag
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workbookFlag, "workbook", "", "workbook path or URL (overrides workbook.source)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
