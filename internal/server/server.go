// Package server exposes a built choropleth map over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/edu-choropleth/internal/choropleth"
	"github.com/sells-group/edu-choropleth/internal/config"
	"github.com/sells-group/edu-choropleth/internal/export"
	"github.com/sells-group/edu-choropleth/internal/histogram"
	"github.com/sells-group/edu-choropleth/internal/model"
	"github.com/sells-group/edu-choropleth/internal/render"
)

// Histogram size in points.
const (
	histogramWidth  = 480
	histogramHeight = 320
)

// Server serves one immutable map. Handlers share it without locking.
type Server struct {
	m        *choropleth.Map
	renderer *render.Renderer
	cfg      config.ServerConfig
	log      *zap.Logger
}

// New creates a Server.
func New(m *choropleth.Map, renderer *render.Renderer, cfg config.ServerConfig) *Server {
	return &Server{
		m:        m,
		renderer: renderer,
		cfg:      cfg,
		log:      zap.L().With(zap.String("component", "server")),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if s.cfg.RequestsPerSec > 0 {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(s.cfg.RequestsPerSec), max(s.cfg.Burst, 1))))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/map.svg", s.handleSVG)
	r.Get("/histogram.png", s.handleHistogram)
	r.Get("/export.xlsx", s.handleExportXLSX)
	r.Get("/export.csv", s.handleExportCSV)

	r.Route("/api", func(r chi.Router) {
		r.Get("/counties/{fips}", s.handleCounty)
		r.Get("/legend", s.handleLegend)
		r.Get("/summary", s.handleSummary)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func rateLimit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.buffered(w, r, "text/html; charset=utf-8", "", func(buf io.Writer) error {
		return s.renderer.HTML(buf, s.m)
	})
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.buffered(w, r, "image/svg+xml", "", func(buf io.Writer) error {
		return s.renderer.SVG(buf, s.m)
	})
}

func (s *Server) handleHistogram(w http.ResponseWriter, r *http.Request) {
	s.buffered(w, r, "image/png", "", func(buf io.Writer) error {
		return histogram.Render(buf, s.m, "png", histogramWidth, histogramHeight)
	})
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.buffered(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "counties.xlsx",
		func(buf io.Writer) error { return export.WriteXLSX(buf, s.m) })
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.buffered(w, r, "text/csv; charset=utf-8", "counties.csv",
		func(buf io.Writer) error { return export.WriteCSV(buf, s.m) })
}

func (s *Server) handleCounty(w http.ResponseWriter, r *http.Request) {
	fips, err := strconv.Atoi(chi.URLParam(r, "fips"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "fips must be an integer")
		return
	}
	row, ok := s.m.Row(fips)
	if !ok {
		writeError(w, http.StatusNotFound, "no record for fips "+strconv.Itoa(fips))
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// Legend is the JSON body of /api/legend.
type Legend struct {
	Palette    []string         `json:"palette"`
	Colors     []string         `json:"colors"`
	Intervals  []model.Interval `json:"intervals"`
	Ticks      []float64        `json:"ticks"`
	Degenerate bool             `json:"degenerate"`
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	c := s.m.Classifier
	writeJSON(w, http.StatusOK, Legend{
		Palette:    c.Palette(),
		Colors:     c.Colors(),
		Intervals:  c.Intervals(),
		Ticks:      c.Ticks(),
		Degenerate: c.Degenerate(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.m.Summary())
}

// buffered renders into memory first so a failure can still produce a 500.
func (s *Server) buffered(w http.ResponseWriter, r *http.Request, contentType, filename string, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.log.Error("render response",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
