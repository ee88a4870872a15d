package rest

import (
	"bytes"
	"io"
	"net/http"

	"hostdash/internal/dashboard"
	"hostdash/internal/domain"
	"hostdash/internal/logger"
	"hostdash/internal/transport/rest/middleware"
)

type DashboardHandler struct {
	sampler domain.MetricsSampler
	render  func(w io.Writer, snap domain.Snapshot) error
	log     logger.Logger
}

func NewDashboardHandler(sampler domain.MetricsSampler, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		sampler: sampler,
		render:  dashboard.Render,
		log:     log,
	}
}

// Index always answers 200. A failed render still yields a minimal page.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	snap := h.sampler.Collect(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	var buf bytes.Buffer
	if err := h.render(&buf, snap); err != nil {
		h.log.Error("dashboard: render failed", "error", err, "request_id", middleware.GetRequestID(r.Context()))
		buf.Reset()
		buf.WriteString(dashboard.Fallback(snap.Hostname))
	}

	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Debug("dashboard: client went away", "error", err)
	}
}
