// Package fetcher reads workbook sheets from XLSX and CSV files and downloads
// remote workbooks over HTTP and FTP.
package fetcher

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// Fetcher downloads a remote workbook.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// writeToFile copies body into a new file at path.
func writeToFile(path string, body io.Reader) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrap(err, "create file")
	}
	defer file.Close() //nolint:errcheck

	n, err := io.Copy(file, body)
	if err != nil {
		return n, eris.Wrap(err, "write file")
	}
	return n, nil
}
