package cpu

import (
	"context"
	"time"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/cpu"
)

type Collector struct {
	log    logger.Logger
	info   func(ctx context.Context) ([]cpu.InfoStat, error)
	counts func(ctx context.Context, logical bool) (int, error)
}

type UsageCollector struct {
	log     logger.Logger
	window  time.Duration
	percent func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
}

type CPUInfo = domain.CPUInfo
