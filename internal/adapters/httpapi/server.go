// Package httpapi exposes the hostel service as JSON over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"hostelcore/internal/backup"
	"hostelcore/internal/core"
	"hostelcore/internal/infra/cache"
)

// BasePath prefixes every resource route.
const BasePath = "/api/v1"

// Options wires the router. Only Service is required.
type Options struct {
	Service *core.Service
	// Archiver enables the /admin/snapshots routes.
	Archiver *backup.Archiver
	// Cache stores GET responses keyed by router instance and store
	// revision; CacheTTL <= 0 disables it.
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   *slog.Logger
	// Registerer receives the HTTP collectors; Gatherer backs /metrics.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

type server struct {
	svc      *core.Service
	archiver *backup.Archiver
	cache    cache.Cache
	cacheTTL time.Duration
	// epoch scopes cache keys to this router, since revisions restart
	// with the process.
	epoch  string
	logger *slog.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(opts Options) (*gin.Engine, error) {
	s := &server{
		svc:      opts.Service,
		archiver: opts.Archiver,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		epoch:    uuid.NewString(),
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.logger.ErrorContext(c.Request.Context(), "panic in handler", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError), Kind: "internal"})
	}))
	r.Use(s.requestLog())
	if opts.Registerer != nil {
		m, err := newHTTPMetrics(opts.Registerer)
		if err != nil {
			return nil, err
		}
		r.Use(m.middleware())
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "route not found", Kind: "not_found"})
	})

	r.GET("/healthz", s.health)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	registerDocs(r)

	api := r.Group(BasePath)
	if s.cache != nil && s.cacheTTL > 0 {
		api.Use(s.responseCache())
	}
	s.registerResources(api)
	s.registerHostel(api)
	if s.archiver != nil {
		s.registerAdmin(r.Group("/admin"))
	}
	return r, nil
}

// Handler wraps the router with OpenTelemetry HTTP instrumentation.
func Handler(opts Options) (http.Handler, error) {
	r, err := NewRouter(opts)
	if err != nil {
		return nil, err
	}
	return otelhttp.NewHandler(r, "hostelcore.http",
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return req.Method + " " + req.URL.Path
		})), nil
}

func (s *server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "revision": s.svc.Revision()})
}

func (s *server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.DebugContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
