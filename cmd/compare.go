package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/sheetmap/internal/dashboard"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the terms and extents of several sheets",
	Long: `Loads each --sheet, assigns marker colours in order and reports how many
terms the sheets share.

Examples:
  sheetmap compare --sheet Stores --sheet Depots
  sheetmap compare --sheet Stores --color '#ff0000' --sheet Depots --color '#00ff00'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		names, _ := cmd.Flags().GetStringArray("sheet")
		colors, _ := cmd.Flags().GetStringArray("color")

		env, err := initApp(cfg, false)
		if err != nil {
			return err
		}
		cv, err := env.Dashboard.Compare(cmd.Context(), names, colors)
		if err != nil {
			return err
		}
		formatCompare(cmd.OutOrStdout(), cv)
		return nil
	},
}

func init() {
	f := compareCmd.Flags()
	f.StringArray("sheet", nil, "sheet to compare (repeatable)")
	f.StringArray("color", nil, "marker colour for the sheet at the same position (repeatable)")
	_ = compareCmd.MarkFlagRequired("sheet")
	rootCmd.AddCommand(compareCmd)
}

func formatCompare(out io.Writer, cv dashboard.CompareView) {
	rows := make([][]string, len(cv.Groups))
	for i, g := range cv.Groups {
		terms := ""
		if i < len(cv.Overlap.Sheets) {
			terms = strconv.Itoa(cv.Overlap.Sheets[i].Distinct)
		}
		rows[i] = []string{g.Sheet, g.Color, g.Marker, strconv.Itoa(g.Count), strconv.Itoa(g.Dropped), terms}
	}
	writeTable(out, []string{"SHEET", "COLOR", "MARKER", "POINTS", "DROPPED", "TERMS"}, rows)

	if cv.Status == dashboard.StatusNoValidData {
		_, _ = fmt.Fprintln(out, "\nno valid data to display")
		return
	}
	_, _ = fmt.Fprintf(out, "\nCentre: %.6f, %.6f\n", cv.Centroid.Lat, cv.Centroid.Lng)

	if len(cv.Overlap.Pairs) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out)
	pairs := make([][]string, len(cv.Overlap.Pairs))
	for i, p := range cv.Overlap.Pairs {
		pairs[i] = []string{p.A, p.B, strconv.Itoa(p.Shared), strconv.FormatFloat(p.Jaccard, 'f', 2, 64)}
	}
	writeTable(out, []string{"A", "B", "SHARED", "JACCARD"}, pairs)
	_, _ = fmt.Fprintf(out, "\nShared by all: %d\n", cv.Overlap.SharedByAll)
	if len(cv.Overlap.Common) > 0 {
		_, _ = fmt.Fprintf(out, "Common terms: %s\n", strings.Join(cv.Overlap.Common, ", "))
	}
}
