package domain

import (
	"context"
	"math"
	"time"
)

// MetricsSampler assembles snapshots. Implementations never fail; broken
// sources show up as zero or empty fields.
type MetricsSampler interface {
	Collect(ctx context.Context) Snapshot
}

// Snapshot is one point-in-time view of the host. It is built once by the
// sampler and never modified afterwards.
type Snapshot struct {
	Hostname          string             `json:"hostname" yaml:"hostname"`
	OS                OSInfo             `json:"os" yaml:"os"`
	CPUs              []CPUInfo          `json:"cpus" yaml:"cpus"`
	CPUUsage          float64            `json:"cpu_usage" yaml:"cpu_usage"`
	Memory            MemoryMetric       `json:"memory" yaml:"memory"`
	Uptime            Uptime             `json:"uptime" yaml:"uptime"`
	Disk              DiskUsage          `json:"disk" yaml:"disk"`
	Load              LoadAverage        `json:"load" yaml:"load"`
	NetworkInterfaces []NetworkInterface `json:"network_interfaces" yaml:"network_interfaces"`
	RecordedAt        time.Time          `json:"recorded_at" yaml:"recorded_at"`
}

type OSInfo struct {
	Platform      string `json:"platform" yaml:"platform"`
	KernelVersion string `json:"kernel_version" yaml:"kernel_version"`
	Arch          string `json:"arch" yaml:"arch"`
}

type CPUInfo struct {
	Model    string `json:"model" yaml:"model"`
	SpeedMHz int    `json:"speed_mhz" yaml:"speed_mhz"`
}

type MemoryMetric struct {
	FreeFraction   float64 `json:"free_fraction" yaml:"free_fraction"`
	TotalMB        int64   `json:"total_mb" yaml:"total_mb"`
	TotalBytes     uint64  `json:"total_bytes" yaml:"total_bytes"`
	AvailableBytes uint64  `json:"available_bytes" yaml:"available_bytes"`
}

type Uptime struct {
	Days    int    `json:"days" yaml:"days"`
	Hours   int    `json:"hours" yaml:"hours"`
	Minutes int    `json:"minutes" yaml:"minutes"`
	Seconds uint64 `json:"seconds" yaml:"seconds"`
}

type DiskUsage struct {
	Path       string `json:"path" yaml:"path"`
	TotalBytes uint64 `json:"total_bytes" yaml:"total_bytes"`
	FreeBytes  uint64 `json:"free_bytes" yaml:"free_bytes"`
	UsedBytes  uint64 `json:"used_bytes" yaml:"used_bytes"`
}

type LoadAverage struct {
	Load1  float64 `json:"load1" yaml:"load1"`
	Load5  float64 `json:"load5" yaml:"load5"`
	Load15 float64 `json:"load15" yaml:"load15"`
}

type NetworkInterface struct {
	Name     string `json:"name" yaml:"name"`
	Family   string `json:"family" yaml:"family"`
	Address  string `json:"address" yaml:"address"`
	Netmask  string `json:"netmask" yaml:"netmask"`
	CIDR     string `json:"cidr" yaml:"cidr"`
	MAC      string `json:"mac" yaml:"mac"`
	Internal bool   `json:"internal" yaml:"internal"`
}

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// NewUptime splits secs into whole days, hours and minutes. Leftover seconds
// are dropped.
func NewUptime(secs uint64) Uptime {
	return Uptime{
		Days:    int(secs / secondsPerDay),
		Hours:   int(secs % secondsPerDay / secondsPerHour),
		Minutes: int(secs % secondsPerHour / secondsPerMinute),
		Seconds: secs,
	}
}

func NewDiskUsage(path string, total, free uint64) DiskUsage {
	var used uint64
	if total > free {
		used = total - free
	}

	return DiskUsage{
		Path:       path,
		TotalBytes: total,
		FreeBytes:  free,
		UsedBytes:  used,
	}
}

// UsedFraction is 0 for a zero-sized volume.
func (d DiskUsage) UsedFraction() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.UsedBytes) / float64(d.TotalBytes)
}

func (d DiskUsage) UsedPercent() float64 {
	return Round2(d.UsedFraction() * 100)
}

func (m MemoryMetric) FreePercent() float64 {
	return Round2(m.FreeFraction * 100)
}

func (s Snapshot) CPUUsagePercent() float64 {
	return Round2(s.CPUUsage * 100)
}

// Round2 rounds v to two decimal places, half away from zero. NaN and
// infinities become 0.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

// ClampFraction forces v into [0,1].
func ClampFraction(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
