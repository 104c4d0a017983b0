package catalog

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"SunCatalog/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	AllowedOrigins   []string
	WriteLimitPerMin int

	// UploadDir is served under /images/; PublicDir holds index.html and
	// styles.css. Either may be empty to skip that route.
	UploadDir string
	PublicDir string
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, deps)
	setupStatic(r, deps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", s.handleReady)

	var writeMW []func(http.Handler) http.Handler
	if deps.WriteLimitPerMin > 0 {
		limiter := kit.NewIPRateLimiter(deps.WriteLimitPerMin, time.Minute)
		writeMW = append(writeMW, limiter.Middleware)
	}
	r.Mount("/api", s.Routes(writeMW...))

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.RoutePattern))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func setupStatic(r *chi.Mux, deps HTTPDeps) {
	if deps.UploadDir != "" {
		r.Handle(ImagesPrefix+"*", http.StripPrefix(ImagesPrefix, http.FileServer(http.Dir(deps.UploadDir))))
	}

	if deps.PublicDir != "" {
		r.Get("/", serveFile(filepath.Join(deps.PublicDir, "index.html")))
		r.Get("/styles.css", serveFile(filepath.Join(deps.PublicDir, "styles.css")))
	}
}

func serveFile(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
