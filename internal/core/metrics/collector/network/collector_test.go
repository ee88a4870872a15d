package network

import (
	"context"
	"errors"
	"testing"

	"hostdash/internal/logger"

	"github.com/shirou/gopsutil/v4/net"
)

func newTestCollector(list net.InterfaceStatList, err error) *Collector {
	return &Collector{
		log: logger.Nop(),
		interfaces: func(context.Context) (net.InterfaceStatList, error) {
			return list, err
		},
	}
}

func TestCollectFlattensAddresses(t *testing.T) {
	c := newTestCollector(net.InterfaceStatList{
		{
			Name:  "lo",
			Flags: []string{"up", "loopback", "running"},
			Addrs: net.InterfaceAddrList{{Addr: "127.0.0.1/8"}, {Addr: "::1/128"}},
		},
		{
			Name:         "eth0",
			HardwareAddr: "52:54:00:12:34:56",
			Flags:        []string{"up", "broadcast", "multicast"},
			Addrs:        net.InterfaceAddrList{{Addr: "192.168.1.20/24"}, {Addr: "fe80::5054:ff:fe12:3456/64"}},
		},
		{
			Name:  "docker0",
			Flags: []string{"broadcast"},
		},
	}, nil)

	got, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []NetworkInterface{
		{Name: "lo", Family: "IPv4", Address: "127.0.0.1", Netmask: "255.0.0.0", CIDR: "127.0.0.1/8", MAC: zeroMAC, Internal: true},
		{Name: "lo", Family: "IPv6", Address: "::1", Netmask: "ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff", CIDR: "::1/128", MAC: zeroMAC, Internal: true},
		{Name: "eth0", Family: "IPv4", Address: "192.168.1.20", Netmask: "255.255.255.0", CIDR: "192.168.1.20/24", MAC: "52:54:00:12:34:56"},
		{Name: "eth0", Family: "IPv6", Address: "fe80::5054:ff:fe12:3456", Netmask: "ffff:ffff:ffff:ffff::", CIDR: "fe80::5054:ff:fe12:3456/64", MAC: "52:54:00:12:34:56"},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCollectSkipsBadAddresses(t *testing.T) {
	c := newTestCollector(net.InterfaceStatList{
		{Name: "wg0", Addrs: net.InterfaceAddrList{{Addr: "garbage"}, {Addr: "10.0.0.1"}}},
	}, nil)

	got, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %+v, want one row", got)
	}
	if got[0].Address != "10.0.0.1" || got[0].Netmask != "255.255.255.255" {
		t.Errorf("row = %+v", got[0])
	}
}

func TestCollectEmpty(t *testing.T) {
	got, err := newTestCollector(nil, nil).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("got %#v, want empty slice", got)
	}
}

func TestCollectError(t *testing.T) {
	got, err := newTestCollector(nil, errors.New("netlink")).Collect(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("fallback = %#v, want empty slice", got)
	}
}
