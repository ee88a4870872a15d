// Package metrics
package metrics

import (
	"context"
	"fmt"
	"time"

	"hostdash/internal/config"
	"hostdash/internal/core/metrics/collector/cpu"
	"hostdash/internal/core/metrics/collector/disk"
	"hostdash/internal/core/metrics/collector/host"
	"hostdash/internal/core/metrics/collector/load"
	"hostdash/internal/core/metrics/collector/memory"
	"hostdash/internal/core/metrics/collector/network"
	"hostdash/internal/core/metrics/collector/uptime"
	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"golang.org/x/sync/errgroup"
)

// Source is anything that can produce one metric value on demand.
type Source[T any] interface {
	Collect(ctx context.Context) (T, error)
}

type Collectors struct {
	Host     Source[host.Info]
	CPUs     Source[[]domain.CPUInfo]
	CPUUsage Source[float64]
	Memory   Source[domain.MemoryMetric]
	Uptime   Source[domain.Uptime]
	Disk     Source[domain.DiskUsage]
	Load     Source[domain.LoadAverage]
	Network  Source[[]domain.NetworkInterface]
}

type Sampler struct {
	c        Collectors
	diskPath string
	timeout  time.Duration
	log      logger.Logger
}

// slack on top of the cpu window before the whole snapshot is given up on
const collectSlack = 5 * time.Second

func NewSampler(cfg *config.Config, log logger.Logger) *Sampler {
	return NewSamplerWith(Collectors{
		Host:     host.NewCollector(log),
		CPUs:     cpu.NewCollector(log),
		CPUUsage: cpu.NewUsageCollector(log, cfg.CPUSampleWindow),
		Memory:   memory.NewCollector(log),
		Uptime:   uptime.NewCollector(log),
		Disk:     disk.NewCollector(log, cfg.DiskPath),
		Load:     load.NewCollector(log),
		Network:  network.NewCollector(log),
	}, cfg.DiskPath, CollectTimeout(cfg), log)
}

// CollectTimeout bounds one snapshot for the configured cpu window.
func CollectTimeout(cfg *config.Config) time.Duration {
	return cfg.CPUSampleWindow + collectSlack
}

func NewSamplerWith(c Collectors, diskPath string, timeout time.Duration, log logger.Logger) *Sampler {
	return &Sampler{
		c:        c,
		diskPath: diskPath,
		timeout:  timeout,
		log:      log,
	}
}

// Collect builds a fresh snapshot. It never fails: a collector that errors,
// panics or runs past the deadline leaves its fallback value in place.
func (s *Sampler) Collect(ctx context.Context) domain.Snapshot {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		hostInfo host.Info
		snap     domain.Snapshot
		g        errgroup.Group
	)

	run(ctx, &g, s.log, "host", s.c.Host, host.Info{}, &hostInfo)
	run(ctx, &g, s.log, "cpu", s.c.CPUs, []domain.CPUInfo{}, &snap.CPUs)
	run(ctx, &g, s.log, "cpu_usage", s.c.CPUUsage, 0, &snap.CPUUsage)
	run(ctx, &g, s.log, "memory", s.c.Memory, domain.MemoryMetric{}, &snap.Memory)
	run(ctx, &g, s.log, "uptime", s.c.Uptime, domain.Uptime{}, &snap.Uptime)
	run(ctx, &g, s.log, "disk", s.c.Disk, domain.NewDiskUsage(s.diskPath, 0, 0), &snap.Disk)
	run(ctx, &g, s.log, "load", s.c.Load, domain.LoadAverage{}, &snap.Load)
	run(ctx, &g, s.log, "network", s.c.Network, []domain.NetworkInterface{}, &snap.NetworkInterfaces)

	g.Wait()

	snap.Hostname = hostInfo.Hostname
	snap.OS = hostInfo.OS
	snap.RecordedAt = time.Now().UTC()

	return snap
}

type result[T any] struct {
	val T
	err error
}

// run collects one source into dst. Each call owns its dst, so the
// goroutines never share memory. A source that ignores ctx is abandoned at
// the deadline and its late value is dropped.
func run[T any](ctx context.Context, g *errgroup.Group, log logger.Logger, name string, src Source[T], fallback T, dst *T) {
	*dst = fallback
	if src == nil {
		return
	}

	g.Go(func() error {
		ch := make(chan result[T], 1)

		go func() {
			defer func() {
				if r := recover(); r != nil {
					ch <- result[T]{err: fmt.Errorf("panic: %v", r)}
				}
			}()

			val, err := src.Collect(ctx)
			ch <- result[T]{val: val, err: err}
		}()

		select {
		case res := <-ch:
			if res.err != nil {
				log.Error("collector", "name", name, "error", res.err)
				return nil
			}
			*dst = res.val

		case <-ctx.Done():
			log.Error("collector", "name", name, "error", ctx.Err())
		}

		return nil
	})
}
