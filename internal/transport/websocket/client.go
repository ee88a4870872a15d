package websocket

import (
	"context"
	"encoding/json"
	"time"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client streams snapshots to one connection. Every client samples on its
// own schedule; nothing is shared between connections.
type Client struct {
	conn     *websocket.Conn
	sampler  domain.MetricsSampler
	interval time.Duration
	log      logger.Logger
}

func NewClient(conn *websocket.Conn, sampler domain.MetricsSampler, interval time.Duration, log logger.Logger) *Client {
	return &Client{
		conn:     conn,
		sampler:  sampler,
		interval: interval,
		log:      log,
	}
}

// Run blocks until the peer goes away or ctx is cancelled.
func (c *Client) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.readPump(cancel)
	c.writePump(ctx)
}

// readPump discards inbound messages; it only exists to process control
// frames and notice disconnects.
func (c *Client) readPump(cancel context.CancelFunc) {
	defer cancel()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("ws: client disconnected", "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
		c.conn.Close()
	}()

	if err := c.push(ctx); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return

		case <-ticker.C:
			if err := c.push(ctx); err != nil {
				return
			}

		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) push(ctx context.Context) error {
	snap := c.sampler.Collect(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	message, err := json.Marshal(domain.WsEvent{
		Channel: domain.WsChannelMetrics,
		Event:   domain.WsEventMetricsUpdated,
		Payload: snap,
	})
	if err != nil {
		c.log.Error("ws: failed to encode snapshot", "error", err)
		return err
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.log.Debug("ws: write failed", "error", err)
		return err
	}

	return nil
}
