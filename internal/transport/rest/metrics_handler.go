package rest

import (
	"net/http"

	"hostdash/internal/domain"
)

type MetricsHandler struct {
	sampler domain.MetricsSampler
}

func NewMetricsHandler(sampler domain.MetricsSampler) *MetricsHandler {
	return &MetricsHandler{
		sampler: sampler,
	}
}

func (h *MetricsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	snap := h.sampler.Collect(r.Context())

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "OK",
		Data:    snap,
		Meta: map[string]any{
			"cpu_usage_percent":   snap.CPUUsagePercent(),
			"memory_free_percent": snap.Memory.FreePercent(),
			"disk_used_percent":   snap.Disk.UsedPercent(),
		},
	})
}
