package webserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/brain-score/scoreboard/internal/render"
	"github.com/brain-score/scoreboard/internal/webapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires the leaderboard routes, metrics and middleware.
func newRouter(cfg Config) (http.Handler, error) {
	renderer, err := render.New(cfg.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize page renderer: %w", err)
	}
	h := webapi.NewHandlers(cfg.Store, renderer, webapi.NewMetrics(cfg.Registry))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	webapi.RegisterRoutes(r, h)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))

	var handler http.Handler = r
	handler = webapi.CORSMiddleware(handler, cfg.AllowedOrigins...)
	return gzhttp.GzipHandler(handler), nil
}

// requestLogger logs each request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
