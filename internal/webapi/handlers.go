// Package webapi serves the leaderboard as HTML, JSON and a PNG chart.
package webapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/brain-score/scoreboard/internal/chart"
	"github.com/brain-score/scoreboard/internal/leaderboard"
	"github.com/brain-score/scoreboard/internal/models"
	"github.com/brain-score/scoreboard/internal/render"
	"github.com/brain-score/scoreboard/internal/store"
	"github.com/go-chi/chi/v5"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store    store.Store
	renderer *render.Renderer
	metrics  *Metrics
}

// NewHandlers creates a new Handlers. metrics may be nil.
func NewHandlers(s store.Store, renderer *render.Renderer, metrics *Metrics) *Handlers {
	return &Handlers{store: s, renderer: renderer, metrics: metrics}
}

// build assembles the page for one request. Every request reads the store
// afresh.
func (h *Handlers) build(ctx context.Context) (*models.Page, error) {
	start := time.Now()
	page, err := leaderboard.Build(ctx, h.store)
	h.metrics.observe(time.Since(start).Seconds(), err)
	if err != nil {
		slog.Error("building leaderboard", "error", err)
	}
	return page, err
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandlePage renders the HTML leaderboard.
func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	page, err := h.build(r.Context())
	if err != nil {
		http.Error(w, "failed to build leaderboard", http.StatusInternalServerError)
		return
	}
	body, err := h.renderer.RenderBytes(page)
	if err != nil {
		slog.Error("rendering leaderboard", "error", err)
		http.Error(w, "failed to render leaderboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck
}

// HandleLeaderboard returns the page context as JSON.
func (h *Handlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	page, err := h.build(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleChart returns a PNG bar chart of average scores. The optional "top"
// query parameter limits the number of bars.
func (h *Handlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	var opts chart.Options
	if v := r.URL.Query().Get("top"); v != "" {
		top, err := strconv.Atoi(v)
		if err != nil || top < 1 {
			writeError(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		opts.Top = top
	}

	page, err := h.build(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	png, err := chart.AveragesPNG(page, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png) //nolint:errcheck
}

// RegisterRoutes registers all leaderboard routes on r.
func RegisterRoutes(r chi.Router, h *Handlers) {
	r.Get("/", h.HandlePage)
	r.Get("/api/health", h.HandleHealth)
	r.Get("/api/leaderboard", h.HandleLeaderboard)
	r.Get("/api/leaderboard/chart.png", h.HandleChart)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
