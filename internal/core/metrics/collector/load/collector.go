// Package load
package load

import (
	"context"
	"fmt"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/load"
)

type Collector struct {
	log logger.Logger
	avg func(ctx context.Context) (*load.AvgStat, error)
}

func NewCollector(log logger.Logger) *Collector {
	return &Collector{log: log, avg: load.AvgWithContext}
}

// Collect fails on platforms without load averages (Windows).
func (c *Collector) Collect(ctx context.Context) (domain.LoadAverage, error) {
	avg, err := c.avg(ctx)
	if err != nil {
		return domain.LoadAverage{}, fmt.Errorf("load average: %w", err)
	}

	return domain.LoadAverage{
		Load1:  avg.Load1,
		Load5:  avg.Load5,
		Load15: avg.Load15,
	}, nil
}
