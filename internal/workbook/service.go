package workbook

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sells-group/sheetmap/internal/sheet"
)

// Service serves sheets of one workbook source, loading it on demand and
// keeping it in a Cache. Concurrent loads of the same source are collapsed.
type Service struct {
	src    Source
	loader Loader
	cache  *Cache
	group  singleflight.Group
}

// NewService creates a Service for src.
func NewService(src Source, loader Loader, cache *Cache) *Service {
	return &Service{src: src, loader: loader, cache: cache}
}

// Source returns the workbook source this service reads.
func (s *Service) Source() Source {
	return s.src
}

// Workbook returns the cached workbook, loading it when absent or expired.
func (s *Service) Workbook(ctx context.Context) (*Workbook, error) {
	key := s.src.Location
	if wb := s.cache.Get(key); wb != nil {
		return wb, nil
	}

	// The load outlives any one caller; each caller waits on its own ctx.
	ch := s.group.DoChan(key, func() (any, error) {
		wb, err := s.loader.Load(context.WithoutCancel(ctx), s.src)
		if err != nil {
			return nil, err
		}
		s.cache.Put(key, wb)
		zap.L().Debug("workbook loaded",
			zap.String("source", key),
			zap.Int("sheets", wb.Len()),
		)
		return wb, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Workbook), nil
	}
}

// SheetNames lists the workbook's sheets in order.
func (s *Service) SheetNames(ctx context.Context) ([]string, error) {
	wb, err := s.Workbook(ctx)
	if err != nil {
		return nil, err
	}
	return wb.SheetNames(), nil
}

// Table returns the named sheet. Unknown names yield ErrSheetNotFound.
func (s *Service) Table(ctx context.Context, name string) (sheet.Table, error) {
	wb, err := s.Workbook(ctx)
	if err != nil {
		return sheet.Table{}, err
	}
	return wb.Table(name)
}

// Invalidate forces the next call to reload the workbook.
func (s *Service) Invalidate() {
	s.cache.Invalidate(s.src.Location)
}

// CacheStats reports the underlying cache statistics.
func (s *Service) CacheStats() CacheStats {
	return s.cache.Stats()
}
