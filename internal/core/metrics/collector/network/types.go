package network

import (
	"context"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/net"
)

type Collector struct {
	log        logger.Logger
	interfaces func(ctx context.Context) (net.InterfaceStatList, error)
}

type NetworkInterface = domain.NetworkInterface

const (
	familyIPv4 = "IPv4"
	familyIPv6 = "IPv6"
	zeroMAC    = "00:00:00:00:00:00"
)
