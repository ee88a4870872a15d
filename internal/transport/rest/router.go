// Package rest
package rest

import (
	"net/http"

	"hostdash/internal/config"
	"hostdash/internal/logger"
	"hostdash/internal/transport/rest/middleware"
	"hostdash/internal/transport/websocket"
)

type RouterDeps struct {
	Dashboard *DashboardHandler
	Metrics   *MetricsHandler
	WS        *websocket.Handler
	Exporter  http.Handler
}

func NewRouter(cfg *config.Config, log logger.Logger, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New(middleware.RequestID())
	globalMw.Use(
		middleware.Logging(log),
		middleware.Recover(log),
	)

	apiStack := globalMw.Extend(middleware.CORS(cfg))

	// HEALTH
	mux.Handle("GET /health", globalMw.ThenFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))

	// DASHBOARD
	mux.Handle("GET /{$}", globalMw.ThenFunc(deps.Dashboard.Index))

	// API
	mux.Handle("GET /api/metrics", apiStack.ThenFunc(deps.Metrics.Latest))
	mux.Handle("OPTIONS /api/metrics", apiStack.ThenFunc(deps.Metrics.Latest))
	mux.Handle("/api/", apiStack.ThenFunc(func(w http.ResponseWriter, r *http.Request) {
		JSONError(w, http.StatusNotFound, "not found")
	}))

	// PROMETHEUS
	if deps.Exporter != nil {
		mux.Handle("GET /metrics", globalMw.Then(deps.Exporter))
	}

	// WEBSOCKET
	if deps.WS != nil {
		mux.Handle("GET /ws", globalMw.ThenFunc(deps.WS.Serve))
	}

	return mux
}
