// Package network
package network

import (
	"context"
	"fmt"

	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/net"
)

func NewCollector(log logger.Logger) *Collector {
	return &Collector{
		log:        log,
		interfaces: net.InterfacesWithContext,
	}
}

// Collect returns one row per bound address, interfaces in OS order.
func (c *Collector) Collect(ctx context.Context) ([]NetworkInterface, error) {
	ifaces, err := c.interfaces(ctx)
	if err != nil {
		return []NetworkInterface{}, fmt.Errorf("network interfaces: %w", err)
	}

	return c.flatten(ifaces), nil
}
