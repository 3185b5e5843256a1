package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/sheetmap/internal/export"
	"github.com/sells-group/sheetmap/internal/sheet"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a sheet's points to GeoJSON, shapefile or CSV",
	Long: `Normalizes one sheet and writes its points to a file.

Examples:
  sheetmap export --sheet Stores --format geojson --out stores.geojson
  sheetmap export --sheet Stores --format shp --out stores.shp
  sheetmap export --sheet Depots --format csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("sheet")
		formatName, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		if out == "" {
			out = name + format.Extension()
		}

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
		if rs.Empty() {
			zap.L().Warn("sheet has no valid data, writing empty file",
				zap.String("sheet", name),
				zap.Int("dropped", rs.Dropped),
			)
		}

		if err := export.ToFile(out, format, rs, nil); err != nil {
			return eris.Wrapf(err, "export: sheet %q", name)
		}
		zap.L().Info("sheet exported",
			zap.String("sheet", name),
			zap.String("format", string(format)),
			zap.String("path", out),
			zap.Int("points", rs.Len()),
			zap.Int("dropped", rs.Dropped),
		)
		return nil
	},
}

func init() {
	f := exportCmd.Flags()
	f.String("sheet", "", "sheet to export")
	f.String("format", string(export.FormatGeoJSON), "output format: geojson, shp or csv")
	f.String("out", "", "output path (default <sheet>.<ext>)")
	_ = exportCmd.MarkFlagRequired("sheet")
	rootCmd.AddCommand(exportCmd)
}
