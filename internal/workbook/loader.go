package workbook

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sheetmap/internal/fetcher"
	"github.com/sells-group/sheetmap/internal/sheet"
)

// Loader reads a workbook from its source.
type Loader interface {
	Load(ctx context.Context, src Source) (*Workbook, error)
}

// FileLoader reads local files and downloads remote ones to a temp dir first.
type FileLoader struct {
	http fetcher.Fetcher
	ftp  fetcher.Fetcher
	csv  fetcher.CSVOptions
}

// NewLoader creates a FileLoader. Either fetcher may be nil, in which case
// sources with that scheme fail to load.
func NewLoader(httpFetcher, ftpFetcher fetcher.Fetcher) *FileLoader {
	return &FileLoader{
		http: httpFetcher,
		ftp:  ftpFetcher,
		csv:  fetcher.CSVOptions{LazyQuotes: true},
	}
}

// Load reads every sheet of src.
func (l *FileLoader) Load(ctx context.Context, src Source) (*Workbook, error) {
	local := src.Location
	if src.Remote() {
		dir, err := os.MkdirTemp("", "sheetmap-*")
		if err != nil {
			return nil, eris.Wrap(err, "workbook: create temp dir")
		}
		defer os.RemoveAll(dir) //nolint:errcheck

		local = filepath.Join(dir, "workbook."+string(src.Format))
		if err := l.download(ctx, src, local); err != nil {
			return nil, err
		}
	}

	var tables []sheet.Table
	switch src.Format {
	case FormatXLSX:
		t, err := fetcher.ReadXLSXTables(local, fetcher.XLSXOptions{})
		if err != nil {
			return nil, eris.Wrapf(err, "workbook: read %s", src)
		}
		tables = t
	case FormatCSV:
		t, err := l.readCSV(ctx, src, local)
		if err != nil {
			return nil, err
		}
		tables = []sheet.Table{t}
	default:
		return nil, eris.Errorf("workbook: unsupported format %q", src.Format)
	}

	return New(src.Location, tables), nil
}

func (l *FileLoader) download(ctx context.Context, src Source, dst string) error {
	var f fetcher.Fetcher
	switch src.Scheme {
	case "http", "https":
		f = l.http
	case "ftp":
		f = l.ftp
	}
	if f == nil {
		return eris.Errorf("workbook: no fetcher for scheme %q", src.Scheme)
	}

	start := time.Now()
	n, err := f.DownloadToFile(ctx, src.Location, dst)
	if err != nil {
		return eris.Wrapf(err, "workbook: download %s", src)
	}
	zap.L().Info("workbook downloaded",
		zap.String("source", src.Location),
		zap.Int64("bytes", n),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (l *FileLoader) readCSV(ctx context.Context, src Source, local string) (sheet.Table, error) {
	file, err := os.Open(local)
	if err != nil {
		return sheet.Table{}, eris.Wrapf(err, "workbook: open %s", src)
	}
	defer file.Close() //nolint:errcheck

	t, err := fetcher.ReadCSVTable(ctx, src.Name, file, l.csv)
	if err != nil {
		return sheet.Table{}, eris.Wrapf(err, "workbook: read %s", src)
	}
	return t, nil
}
