package host

import (
	"context"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/host"
)

type Collector struct {
	log      logger.Logger
	hostname func() (string, error)
	info     func(ctx context.Context) (*host.InfoStat, error)
}

// Info is the host identity part of a snapshot.
type Info struct {
	Hostname string
	OS       domain.OSInfo
}
