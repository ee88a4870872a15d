package cpu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/cpu"
)

var errNoSample = errors.New("cpu usage: empty sample")

func NewUsageCollector(log logger.Logger, window time.Duration) *UsageCollector {
	return &UsageCollector{
		log:     log,
		window:  window,
		percent: cpu.PercentWithContext,
	}
}

// Collect blocks for the sampling window and returns overall utilisation as a
// fraction in [0,1]. Cancelling ctx abandons the window.
func (c *UsageCollector) Collect(ctx context.Context) (float64, error) {
	start := time.Now()

	values, err := c.percent(ctx, c.window, false)
	if err != nil {
		return 0, fmt.Errorf("cpu usage: %w", err)
	}
	if len(values) == 0 {
		return 0, errNoSample
	}

	c.log.Debug("cpu usage sampled", "window", c.window, "took", time.Since(start))

	return domain.ClampFraction(values[0] / 100), nil
}
