package dashboard

import (
	"embed"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sheetmap/internal/palette"
	"github.com/sells-group/sheetmap/internal/sheet"
	"github.com/sells-group/sheetmap/internal/workbook"
)

//go:embed static/index.html
var staticFiles embed.FS

// Invalidator is implemented by sheet sources that can drop cached data.
type Invalidator interface {
	Invalidate()
}

// HandlerOptions configures NewHandler.
type HandlerOptions struct {
	CORSOrigins []string
	Metrics     *Metrics
}

// NewHandler returns the dashboard router.
func NewHandler(svc *Service, opts HandlerOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(opts.Metrics))

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := &handler{svc: svc}

	r.Get("/", h.index)
	r.Get("/health", h.health)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/sheets", h.sheets)
		r.Get("/sheets/{sheet}/points", h.points)
		r.Get("/compare", h.compare)
		r.Get("/palette", h.palette)
		r.Get("/classify", h.classify)
		r.Get("/map-options", h.mapOptions)
		r.Post("/reload", h.reload)
	})
	return r
}

type handler struct {
	svc *Service
}

func (h *handler) index(w http.ResponseWriter, _ *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) sheets(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Sheets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sheets": names})
}

func (h *handler) points(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "sheet")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}
	view, err := h.svc.Points(r.Context(), name, r.URL.Query().Get("color"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handler) compare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.svc.Compare(r.Context(), q["sheet"], q["color"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handler) palette(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]PaletteEntry{"palette": h.svc.Palette()})
}

func (h *handler) classify(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Classify(r.URL.Query().Get("color"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *handler) mapOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.MapOptions())
}

func (h *handler) reload(w http.ResponseWriter, _ *http.Request) {
	inv, ok := h.svc.sheets.(Invalidator)
	if !ok {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "source cannot be reloaded"})
		return
	}
	inv.Invalidate()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("dashboard: encode response", zap.Error(err))
	}
}

// writeError maps a service error to a status code. Data problems in one sheet
// are answered, never fatal.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		schemaErr *sheet.SchemaError
		parseErr  *palette.ParseError
		configErr *palette.ConfigError
		reqErr    *RequestError
	)

	switch {
	case errors.As(err, &schemaErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   "this sheet cannot be visualized",
			"detail":  schemaErr.Error(),
			"missing": schemaErr.Missing,
		})
	case eris.Is(err, workbook.ErrSheetNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case eris.Is(err, workbook.ErrSourceUnavailable):
		zap.L().Warn("dashboard: workbook source unavailable", zap.Error(err))
		w.Header().Set("Retry-After", "30")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "workbook source unavailable"})
	case errors.As(err, &parseErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": parseErr.Error()})
	case errors.As(err, &reqErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": reqErr.Error()})
	case errors.As(err, &configErr):
		zap.L().Error("dashboard: palette misconfigured", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": configErr.Error()})
	default:
		zap.L().Error("dashboard: request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// requestLogger logs each request and counts it by chi route pattern.
func requestLogger(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			if m != nil {
				m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
			}
			zap.L().Debug("http request",
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
