package main

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sheetmap/internal/config"
	"github.com/sells-group/sheetmap/internal/dashboard"
	"github.com/sells-group/sheetmap/internal/fetcher"
	"github.com/sells-group/sheetmap/internal/palette"
	"github.com/sells-group/sheetmap/internal/workbook"
)

// appEnv holds the services shared by the subcommands.
type appEnv struct {
	Workbook  *workbook.Service
	Palette   palette.Palette
	Dashboard *dashboard.Service
	Metrics   *dashboard.Metrics
}

// initApp wires the workbook loader, cache and dashboard service from config.
// Metrics are only created when withMetrics is set.
func initApp(c *config.Config, withMetrics bool) (*appEnv, error) {
	wb, err := newWorkbookService(c)
	if err != nil {
		return nil, err
	}

	p, err := loadPalette(c.Palette.File)
	if err != nil {
		return nil, err
	}

	env := &appEnv{Workbook: wb, Palette: p}
	if withMetrics {
		env.Metrics = dashboard.NewMetrics(wb.CacheStats)
	}
	env.Dashboard = dashboard.NewService(wb, p, mapOptions(c.Map), env.Metrics)
	return env, nil
}

func newWorkbookService(c *config.Config) (*workbook.Service, error) {
	if c.Workbook.Source == "" {
		return nil, eris.New("workbook: no source (set --workbook or workbook.source)")
	}
	src, err := workbook.ParseSource(c.Workbook.Source)
	if err != nil {
		return nil, err
	}

	httpFetcher := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  c.Fetch.UserAgent,
		Timeout:    c.Fetch.Timeout(),
		MaxRetries: c.Fetch.MaxRetries,
		RatePerSec: c.Fetch.RatePerSec,
	})
	ftpFetcher := fetcher.NewFTPFetcher(fetcher.FTPOptions{Timeout: c.Fetch.Timeout()})

	loader := workbook.NewBreakerLoader(workbook.NewLoader(httpFetcher, ftpFetcher), workbook.BreakerConfig{
		FailureThreshold: c.Fetch.BreakerFailures,
		ResetTimeout:     c.Fetch.BreakerReset(),
		OnStateChange: func(from, to workbook.BreakerState) {
			zap.L().Warn("workbook source breaker",
				zap.String("source", src.Location),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	}, nil)
	cache := workbook.NewCache(c.Workbook.CacheTTL(), nil)

	zap.L().Debug("workbook source",
		zap.String("location", src.Location),
		zap.String("scheme", src.Scheme),
		zap.String("format", string(src.Format)),
	)
	return workbook.NewService(src, loader, cache), nil
}

// loadPalette reads path, or returns the built-in palette when path is empty.
func loadPalette(path string) (palette.Palette, error) {
	if path == "" {
		return palette.DefaultPalette(), nil
	}
	p, err := palette.LoadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "palette: load %s", path)
	}
	return p, nil
}

func mapOptions(m config.MapConfig) dashboard.MapOptions {
	opts := dashboard.DefaultMapOptions()
	opts.ZoomStart = m.ZoomStart
	opts.FitBounds = m.FitBounds
	opts.Cluster = m.Cluster
	if len(m.DefaultColors) > 0 {
		opts.DefaultColors = m.DefaultColors
	}
	if len(m.Basemaps) > 0 {
		opts.Basemaps = make([]dashboard.Basemap, len(m.Basemaps))
		for i, b := range m.Basemaps {
			opts.Basemaps[i] = dashboard.Basemap{Name: b.Name, URL: b.URL, Attribution: b.Attribution}
		}
	}
	return opts
}
