// Package host
package host

import (
	"context"
	"errors"
	"fmt"
	"os"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/host"
)

func NewCollector(log logger.Logger) *Collector {
	return &Collector{
		log:      log,
		hostname: os.Hostname,
		info:     host.InfoWithContext,
	}
}

// Collect returns an error only when neither the hostname nor the platform
// details could be read. A partial result is returned alongside.
func (c *Collector) Collect(ctx context.Context) (Info, error) {
	var out Info

	name, nameErr := c.hostname()
	if nameErr == nil {
		out.Hostname = name
	}

	stat, infoErr := c.info(ctx)
	if infoErr != nil {
		c.log.Warn("failed to read host info", "error", infoErr)
	} else if stat != nil {
		if out.Hostname == "" {
			out.Hostname = stat.Hostname
		}
		out.OS = domain.OSInfo{
			Platform:      platformName(stat),
			KernelVersion: stat.KernelVersion,
			Arch:          stat.KernelArch,
		}
	}

	if nameErr != nil && out.Hostname == "" {
		return out, fmt.Errorf("hostname: %w", errors.Join(nameErr, infoErr))
	}

	return out, nil
}

func platformName(stat *host.InfoStat) string {
	switch {
	case stat.Platform != "" && stat.PlatformVersion != "":
		return stat.Platform + " " + stat.PlatformVersion
	case stat.Platform != "":
		return stat.Platform
	}
	return stat.OS
}
