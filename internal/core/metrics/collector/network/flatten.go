package network

import (
	stdnet "net"
	"net/netip"
	"slices"

	"github.com/shirou/gopsutil/v4/net"
)

func (c *Collector) flatten(ifaces net.InterfaceStatList) []NetworkInterface {
	rows := make([]NetworkInterface, 0, len(ifaces))

	for _, iface := range ifaces {
		mac := iface.HardwareAddr
		if mac == "" {
			mac = zeroMAC
		}
		internal := slices.Contains(iface.Flags, "loopback")

		for _, a := range iface.Addrs {
			prefix, ok := parseAddr(a.Addr)
			if !ok {
				c.log.Debug("skipping unparsable interface address", "interface", iface.Name, "addr", a.Addr)
				continue
			}

			family := familyIPv6
			if prefix.Addr().Is4() {
				family = familyIPv4
			}

			rows = append(rows, NetworkInterface{
				Name:     iface.Name,
				Family:   family,
				Address:  prefix.Addr().String(),
				Netmask:  netmask(prefix),
				CIDR:     prefix.String(),
				MAC:      mac,
				Internal: internal,
			})
		}
	}

	return rows
}

// parseAddr accepts both "addr/bits" and a bare address, which is treated as
// a host route.
func parseAddr(s string) (netip.Prefix, bool) {
	if p, err := netip.ParsePrefix(s); err == nil {
		return p, true
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, false
	}

	return netip.PrefixFrom(addr.WithZone(""), addr.BitLen()), true
}

func netmask(p netip.Prefix) string {
	mask := stdnet.CIDRMask(p.Bits(), p.Addr().BitLen())
	return stdnet.IP(mask).String()
}
