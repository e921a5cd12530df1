package httpapi

import (
	"io"
	"log/slog"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/gridpath/geo"
	"github.com/katalvlaran/gridpath/search"
	"github.com/katalvlaran/gridpath/session"
	"github.com/katalvlaran/gridpath/telemetry"
)

// Server binds HTTP handlers to a controller.
type Server struct {
	ctrl *session.Controller
	opts Options
}

// Option configures a Server.
type Option func(*Options)

// Options holds server parameters.
type Options struct {
	// Logger receives one line per request and handler failures.
	Logger *slog.Logger

	// Collector, if set, observes every session started over HTTP.
	Collector *telemetry.Collector

	// Gatherer backs GET /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Projection places path coordinates in GeoJSON output.
	Projection geo.Projection

	// MaxSteps caps n on POST /session/step.
	MaxSteps int

	// BrotliLevel is the compression level for "br" responses.
	BrotliLevel int
}

// DefaultOptions returns Options with a discarding logger, no collector,
// the default gatherer and the identity projection.
func DefaultOptions() Options {
	return Options{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Gatherer:    prometheus.DefaultGatherer,
		Projection:  geo.DefaultProjection(),
		MaxSteps:    10_000,
		BrotliLevel: brotli.DefaultCompression,
	}
}

// WithLogger sets the request logger; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTelemetry attaches c to new sessions and serves g on /metrics.
func WithTelemetry(c *telemetry.Collector, g prometheus.Gatherer) Option {
	return func(o *Options) {
		o.Collector = c
		if g != nil {
			o.Gatherer = g
		}
	}
}

// WithProjection sets the GeoJSON projection.
func WithProjection(p geo.Projection) Option {
	return func(o *Options) { o.Projection = p }
}

// WithMaxSteps caps the step count per request; values below 1 are ignored.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxSteps = n
		}
	}
}

// New returns a server over ctrl.
func New(ctrl *session.Controller, opts ...Option) *Server {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{ctrl: ctrl, opts: o}
}

// Router builds the gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/", Brotli(s.opts.BrotliLevel))
	api.GET("/grid", s.getGrid)
	api.POST("/grid", s.configureGrid)
	api.POST("/grid/toggle", s.cellCommand(s.ctrl.ToggleBlocked))
	api.POST("/grid/start", s.cellCommand(s.ctrl.SetStart))
	api.POST("/grid/end", s.cellCommand(s.ctrl.SetEnd))
	api.POST("/grid/reset", s.resetGrid)

	api.POST("/session", s.startSession)
	api.POST("/session/step", s.stepSession)
	api.GET("/session", s.getSession)
	api.DELETE("/session", s.cancelSession)
	api.GET("/session/path.geojson", s.pathGeoJSON)
	api.GET("/session/map.geojson", s.mapGeoJSON)
	return r
}

// requestLog logs one line per request through slog.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		c.Next()
		s.opts.Logger.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(began)),
		)
	}
}

// sessionOptions returns the per-session options the server adds.
func (s *Server) sessionOptions(strategy search.Strategy) []session.Option {
	opts := []session.Option{session.WithLogger(s.opts.Logger)}
	if s.opts.Collector != nil {
		opts = append(opts, session.WithObserver(s.opts.Collector.Observer(strategy)))
	}
	return opts
}
