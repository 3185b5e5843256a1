package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/sheetmap/internal/palette"
)

var classifyCmd = &cobra.Command{
	Use:   "classify COLOR...",
	Short: "Map hex colours to the nearest marker colour",
	Long: `Prints the marker colour each #RRGGBB colour is drawn with.

Examples:
  sheetmap classify '#1E88E5' '#4CAF50'
  sheetmap classify '#ff0000' --palette markers.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("palette")
		if path == "" {
			path = cfg.Palette.File
		}
		p, err := loadPalette(path)
		if err != nil {
			return err
		}
		return formatClassify(cmd.OutOrStdout(), args, p)
	},
}

func init() {
	classifyCmd.Flags().String("palette", "", "palette YAML file (default from config, else built-in)")
	rootCmd.AddCommand(classifyCmd)
}

// formatClassify stops at the first malformed colour.
func formatClassify(out io.Writer, colors []string, p palette.Palette) error {
	rows := make([][]string, 0, len(colors))
	for _, c := range colors {
		marker, err := palette.Classify(c, p)
		if err != nil {
			return err
		}
		rgb, _ := p.Lookup(marker)
		rows = append(rows, []string{c, marker, rgb.Hex()})
	}
	writeTable(out, []string{"COLOR", "MARKER", "MARKER HEX"}, rows)
	return nil
}
