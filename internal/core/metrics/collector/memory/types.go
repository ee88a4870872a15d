package memory

import (
	"context"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/mem"
)

type Collector struct {
	log     logger.Logger
	virtual func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

type MemoryMetric = domain.MemoryMetric
