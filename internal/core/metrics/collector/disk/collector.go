// Package disk
package disk

import (
	"context"
	"fmt"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/disk"
)

func NewCollector(log logger.Logger, path string) *Collector {
	return &Collector{
		log:   log,
		path:  path,
		usage: disk.UsageWithContext,
	}
}

func (c *Collector) Path() string {
	return c.path
}

// Collect reads free and total bytes of the configured volume. On failure the
// returned value is the zero usage for that path, never a partial one.
func (c *Collector) Collect(ctx context.Context) (DiskUsage, error) {
	fallback := domain.NewDiskUsage(c.path, 0, 0)

	stat, err := c.usage(ctx, c.path)
	if err != nil {
		return fallback, fmt.Errorf("disk usage %s: %w", c.path, err)
	}
	if stat == nil {
		return fallback, fmt.Errorf("disk usage %s: no data", c.path)
	}

	return domain.NewDiskUsage(c.path, stat.Total, stat.Free), nil
}
