// Package uptime
package uptime

import (
	"context"
	"fmt"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/host"
)

type Collector struct {
	log    logger.Logger
	uptime func(ctx context.Context) (uint64, error)
}

func NewCollector(log logger.Logger) *Collector {
	return &Collector{log: log, uptime: host.UptimeWithContext}
}

func (c *Collector) Collect(ctx context.Context) (domain.Uptime, error) {
	secs, err := c.uptime(ctx)
	if err != nil {
		return domain.Uptime{}, fmt.Errorf("uptime: %w", err)
	}

	return domain.NewUptime(secs), nil
}
