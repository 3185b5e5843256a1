// Package workbook loads spreadsheet workbooks from local or remote sources and
// caches them by source.
package workbook

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Format is the file format of a workbook.
type Format string

// Supported workbook formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Source locates a workbook: a local path or an http(s)/ftp URL.
type Source struct {
	Location string
	Scheme   string // "file", "http", "https" or "ftp"
	Format   Format
	Name     string // file name without extension; names the sheet of a CSV workbook
}

// Remote reports whether the workbook has to be downloaded first.
func (s Source) Remote() bool {
	return s.Scheme != "file"
}

func (s Source) String() string {
	return s.Location
}

// ParseSource classifies location by scheme and file extension.
func ParseSource(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Source{}, eris.New("workbook: empty source")
	}

	src := Source{Location: location, Scheme: "file"}
	var name string

	if strings.Contains(location, "://") {
		u, err := url.Parse(location)
		if err != nil {
			return Source{}, eris.Wrapf(err, "workbook: parse source %q", location)
		}
		switch u.Scheme {
		case "http", "https", "ftp":
			src.Scheme = u.Scheme
		default:
			return Source{}, eris.Errorf("workbook: unsupported scheme %q", u.Scheme)
		}
		name = path.Base(u.Path)
	} else {
		name = filepath.Base(location)
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".xlsx":
		src.Format = FormatXLSX
	case ".csv":
		src.Format = FormatCSV
	default:
		return Source{}, eris.Errorf("workbook: unsupported file type %q", name)
	}
	src.Name = strings.TrimSuffix(name, path.Ext(name))
	return src, nil
}
