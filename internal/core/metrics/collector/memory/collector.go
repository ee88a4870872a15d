// Package memory
package memory

import (
	"context"
	"fmt"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/mem"
)

func NewCollector(log logger.Logger) *Collector {
	return &Collector{
		log:     log,
		virtual: mem.VirtualMemoryWithContext,
	}
}

func (c *Collector) Collect(ctx context.Context) (MemoryMetric, error) {
	vm, err := c.virtual(ctx)
	if err != nil {
		return MemoryMetric{}, fmt.Errorf("virtual memory: %w", err)
	}

	available := vm.Available
	if available == 0 && vm.Free > 0 {
		c.log.Debug("available memory not reported, using free", "free", vm.Free)
		available = vm.Free
	}

	var free float64
	if vm.Total > 0 {
		free = float64(available) / float64(vm.Total)
	}

	return MemoryMetric{
		FreeFraction:   domain.ClampFraction(free),
		TotalMB:        int64(vm.Total / 1024 / 1024),
		TotalBytes:     vm.Total,
		AvailableBytes: available,
	}, nil
}
