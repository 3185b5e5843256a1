package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/sheetmap/internal/sheet"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show how a sheet normalizes",
	Long: `Normalizes one sheet and prints the kept and dropped row counts, its centroid,
bounds and median coordinate, followed by the first records.

Examples:
  sheetmap inspect --workbook stores.xlsx --sheet Stores
  sheetmap inspect --sheet Depots --limit 0`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("sheet")
		limit, _ := cmd.Flags().GetInt("limit")

		wb, err := newWorkbookService(cfg)
		if err != nil {
			return err
		}
		t, err := wb.Table(cmd.Context(), name)
		if err != nil {
			return err
		}
		rs, err := sheet.Normalize(t)
		if err != nil {
			return err
		}
		return formatInspect(cmd.OutOrStdout(), rs, limit)
	},
}

func init() {
	f := inspectCmd.Flags()
	f.String("sheet", "", "sheet to inspect")
	f.Int("limit", 20, "records to list (0 = all)")
	_ = inspectCmd.MarkFlagRequired("sheet")
	rootCmd.AddCommand(inspectCmd)
}

func formatInspect(out io.Writer, rs sheet.RecordSet, limit int) error {
	if rs.Empty() {
		_, _ = fmt.Fprintf(out, "%s: no valid data to display (%d rows dropped)\n", rs.Sheet, rs.Dropped)
		return nil
	}

	s, err := rs.Summary()
	if err != nil {
		return eris.Wrap(err, "inspect: summary")
	}
	_, _ = fmt.Fprintf(out, "Sheet:    %s\n", s.Sheet)
	_, _ = fmt.Fprintf(out, "Points:   %d (%d rows dropped)\n", s.Count, s.Dropped)
	_, _ = fmt.Fprintf(out, "Centroid: %.6f, %.6f\n", s.Centroid.Lat, s.Centroid.Lng)
	_, _ = fmt.Fprintf(out, "Bounds:   %.6f, %.6f to %.6f, %.6f\n", s.Min.Lat, s.Min.Lng, s.Max.Lat, s.Max.Lng)
	_, _ = fmt.Fprintf(out, "Median:   %.6f, %.6f\n\n", s.MedianLat, s.MedianLng)

	records := rs.Records
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.Term,
			strconv.FormatFloat(r.Latitude, 'f', 6, 64),
			strconv.FormatFloat(r.Longitude, 'f', 6, 64),
		}
	}
	writeTable(out, []string{"TERM", "LATITUDE", "LONGITUDE"}, rows)
	if len(records) < rs.Len() {
		_, _ = fmt.Fprintf(out, "... %d more\n", rs.Len()-len(records))
	}
	return nil
}
