package disk

import (
	"context"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/disk"
)

type Collector struct {
	log   logger.Logger
	path  string
	usage func(ctx context.Context, path string) (*disk.UsageStat, error)
}

type DiskUsage = domain.DiskUsage
