// Package exporter publishes snapshots in the Prometheus exposition format.
package exporter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hostdash"

var (
	cpuUsageDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "cpu", "usage_ratio"),
		"CPU utilisation over the sampling window, 0 to 1",
		nil, nil,
	)
	cpuInfoDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "cpu", "info"),
		"Logical CPU with its model name; value is the nominal speed in MHz",
		[]string{"index", "model"}, nil,
	)
	memFreeDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "memory", "free_ratio"),
		"Available memory as a fraction of total",
		nil, nil,
	)
	memTotalDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "memory", "total_bytes"),
		"Total physical memory in bytes",
		nil, nil,
	)
	uptimeDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "uptime_seconds"),
		"System uptime in seconds",
		nil, nil,
	)
	diskTotalDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "disk", "total_bytes"),
		"Size of the monitored volume in bytes",
		[]string{"path"}, nil,
	)
	diskFreeDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "disk", "free_bytes"),
		"Free space on the monitored volume in bytes",
		[]string{"path"}, nil,
	)
	diskUsedDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "disk", "used_bytes"),
		"Used space on the monitored volume in bytes",
		[]string{"path"}, nil,
	)
	loadDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "load"),
		"System load average",
		[]string{"window"}, nil,
	)
	netAddrDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "network", "address_info"),
		"Address bound to a network interface",
		[]string{"interface", "family", "address", "internal"}, nil,
	)
)

// Exporter serves one scrape per request. The snapshot is taken with the
// request context, so a client that hangs up releases the cpu window.
type Exporter struct {
	sampler domain.MetricsSampler
	timeout time.Duration
	log     logger.Logger
}

func New(sampler domain.MetricsSampler, timeout time.Duration, log logger.Logger) *Exporter {
	return &Exporter{
		sampler: sampler,
		timeout: timeout,
		log:     log,
	}
}

func (e *Exporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), e.timeout)
	defer cancel()

	snap := e.sampler.Collect(ctx)
	if ctx.Err() != nil && r.Context().Err() != nil {
		e.log.Debug("exporter: scrape abandoned", "error", r.Context().Err())
		return
	}

	// a private registry per scrape keeps runtime collectors out
	reg := prometheus.NewRegistry()
	reg.MustRegister(&snapshotCollector{snap: snap, log: e.log})

	promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		ErrorLog:      errorLog{e.log},
		ErrorHandling: promhttp.ContinueOnError,
	}).ServeHTTP(w, r)
}

// snapshotCollector exposes one already assembled snapshot.
type snapshotCollector struct {
	snap domain.Snapshot
	log  logger.Logger
}

func (c *snapshotCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cpuUsageDesc
	ch <- cpuInfoDesc
	ch <- memFreeDesc
	ch <- memTotalDesc
	ch <- uptimeDesc
	ch <- diskTotalDesc
	ch <- diskFreeDesc
	ch <- diskUsedDesc
	ch <- loadDesc
	ch <- netAddrDesc
}

func (c *snapshotCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.snap

	gauge := func(desc *prometheus.Desc, v float64, labels ...string) {
		for i, l := range labels {
			labels[i] = strings.ToValidUTF8(l, "\uFFFD")
		}

		m, err := prometheus.NewConstMetric(desc, prometheus.GaugeValue, v, labels...)
		if err != nil {
			c.log.Warn("exporter: metric dropped", "metric", desc.String(), "error", err)
			return
		}
		ch <- m
	}

	gauge(cpuUsageDesc, snap.CPUUsage)
	for i, cpu := range snap.CPUs {
		gauge(cpuInfoDesc, float64(cpu.SpeedMHz), strconv.Itoa(i), cpu.Model)
	}

	gauge(memFreeDesc, snap.Memory.FreeFraction)
	gauge(memTotalDesc, float64(snap.Memory.TotalBytes))
	gauge(uptimeDesc, float64(snap.Uptime.Seconds))

	gauge(diskTotalDesc, float64(snap.Disk.TotalBytes), snap.Disk.Path)
	gauge(diskFreeDesc, float64(snap.Disk.FreeBytes), snap.Disk.Path)
	gauge(diskUsedDesc, float64(snap.Disk.UsedBytes), snap.Disk.Path)

	gauge(loadDesc, snap.Load.Load1, "1m")
	gauge(loadDesc, snap.Load.Load5, "5m")
	gauge(loadDesc, snap.Load.Load15, "15m")

	seen := make(map[[3]string]bool, len(snap.NetworkInterfaces))
	for _, n := range snap.NetworkInterfaces {
		key := [3]string{strings.ToValidUTF8(n.Name, "\uFFFD"), n.Family, n.Address}
		if seen[key] {
			continue
		}
		seen[key] = true
		gauge(netAddrDesc, 1, n.Name, n.Family, n.Address, strconv.FormatBool(n.Internal))
	}
}

type errorLog struct {
	log logger.Logger
}

func (l errorLog) Println(v ...any) {
	l.log.Error("exporter: scrape failed", "error", fmt.Sprint(v...))
}
