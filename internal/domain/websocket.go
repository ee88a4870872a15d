package domain

const (
	WsChannelMetrics      = "metrics"
	WsEventMetricsUpdated = "metrics.updated"
)

type WsEvent struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}
