// Package websocket
package websocket

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"time"

	"hostdash/internal/config"
	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/gorilla/websocket"
)

type Handler struct {
	ctx      context.Context
	sampler  domain.MetricsSampler
	upgrader websocket.Upgrader
	interval time.Duration
	log      logger.Logger
}

// NewHandler ties every stream to ctx so they all end on shutdown.
func NewHandler(ctx context.Context, sampler domain.MetricsSampler, cfg *config.Config, log logger.Logger) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")

			allowed := originAllowed(origin, r.Host, cfg.AllowedOrigins)
			if !allowed {
				log.Warn("websocket origin rejected", "origin", origin)
			}

			return allowed
		},
	}

	return &Handler{
		ctx:      ctx,
		sampler:  sampler,
		upgrader: upgrader,
		interval: cfg.Interval,
		log:      log,
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade failed", "error", err)
		return
	}

	h.log.Info("client connected", "remote_addr", conn.RemoteAddr())

	client := NewClient(conn, h.sampler, h.interval, h.log)
	go client.Run(h.ctx)
}

// originAllowed accepts same-host pages and anything in the allow list.
// An empty allow list admits every origin.
func originAllowed(origin, host string, allowed []string) bool {
	if origin == "" || len(allowed) == 0 {
		return true
	}
	if slices.Contains(allowed, origin) {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == host
}
