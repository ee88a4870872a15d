// Package cpu
package cpu

import (
	"context"
	"fmt"
	"math"
	"strings"

	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/cpu"
)

func NewCollector(log logger.Logger) *Collector {
	return &Collector{
		log:    log,
		info:   cpu.InfoWithContext,
		counts: cpu.CountsWithContext,
	}
}

// Collect lists one entry per logical CPU in OS order.
func (c *Collector) Collect(ctx context.Context) ([]CPUInfo, error) {
	stats, err := c.info(ctx)
	if err != nil {
		return []CPUInfo{}, fmt.Errorf("cpu info: %w", err)
	}

	logical, err := c.counts(ctx, true)
	if err != nil {
		c.log.Debug("failed to count logical cpus", "error", err)
		logical = len(stats)
	}

	return expand(stats, logical), nil
}

// expand maps stats to logical CPUs. Platforms other than Linux report one
// stat per package, so the package entries are repeated until every logical
// CPU has a row.
func expand(stats []cpu.InfoStat, logical int) []CPUInfo {
	out := make([]CPUInfo, 0, max(len(stats), logical))
	if len(stats) == 0 {
		return out
	}

	n := max(len(stats), logical)
	for i := range n {
		s := stats[i%len(stats)]
		out = append(out, CPUInfo{
			Model:    strings.TrimSpace(s.ModelName),
			SpeedMHz: int(math.Round(s.Mhz)),
		})
	}

	return out
}
