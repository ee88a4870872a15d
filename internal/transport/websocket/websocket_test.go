package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hostdash/internal/config"
	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/gorilla/websocket"
)

type stubSampler struct{ snap domain.Snapshot }

func (s stubSampler) Collect(context.Context) domain.Snapshot { return s.snap }

func newTestServer(t *testing.T, origins []string) *httptest.Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{Interval: 50 * time.Millisecond, AllowedOrigins: origins}
	h := NewHandler(ctx, stubSampler{domain.Snapshot{Hostname: "box-1"}}, cfg, logger.Nop())

	srv := httptest.NewServer(http.HandlerFunc(h.Serve))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestServeStreamsSnapshots(t *testing.T) {
	srv := newTestServer(t, nil)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	for i := range 2 {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}

		var msg struct {
			Channel string          `json:"channel"`
			Event   string          `json:"event"`
			Payload domain.Snapshot `json:"payload"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if msg.Event != domain.WsEventMetricsUpdated || msg.Channel != domain.WsChannelMetrics {
			t.Fatalf("event = %s/%s", msg.Channel, msg.Event)
		}
		if msg.Payload.Hostname != "box-1" {
			t.Fatalf("hostname = %q", msg.Payload.Hostname)
		}
	}
}

func TestServeRejectsUnknownOrigin(t *testing.T) {
	srv := newTestServer(t, []string{"https://ops.example.com"})

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	if err == nil {
		t.Fatal("dial succeeded for a foreign origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("response = %v, want 403", resp)
	}
}

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"https://ops.example.com"}

	tests := []struct {
		origin string
		list   []string
		want   bool
	}{
		{"", allowed, true},
		{"https://anything.example.com", nil, true},
		{"https://ops.example.com", allowed, true},
		{"http://localhost:3000", allowed, true},
		{"https://evil.example.com", allowed, false},
		{"://bad", allowed, false},
	}

	for _, tt := range tests {
		if got := originAllowed(tt.origin, "localhost:3000", tt.list); got != tt.want {
			t.Errorf("originAllowed(%q, %v) = %v, want %v", tt.origin, tt.list, got, tt.want)
		}
	}
}
