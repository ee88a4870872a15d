package exporter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type stubSampler struct {
	snap   domain.Snapshot
	ctxErr chan error
}

func (s stubSampler) Collect(ctx context.Context) domain.Snapshot {
	if s.ctxErr != nil {
		s.ctxErr <- ctx.Err()
	}
	return s.snap
}

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Hostname: "box-1",
		CPUs: []domain.CPUInfo{
			{Model: "Intel Xeon", SpeedMHz: 2400},
			{Model: "Intel Xeon", SpeedMHz: 2400},
		},
		CPUUsage: 0.25,
		Memory:   domain.MemoryMetric{FreeFraction: 0.5, TotalMB: 1024, TotalBytes: 1 << 30},
		Uptime:   domain.NewUptime(90061),
		Disk:     domain.NewDiskUsage("/", 1000, 400),
		Load:     domain.LoadAverage{Load1: 0.5, Load5: 0.25, Load15: 0.1},
		NetworkInterfaces: []domain.NetworkInterface{
			{Name: "lo", Family: "IPv4", Address: "127.0.0.1", Internal: true},
			{Name: "eth0", Family: "IPv4", Address: "10.0.0.2"},
		},
	}
}

func scrape(t *testing.T, e *Exporter) (int, string) {
	t.Helper()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Code, rec.Body.String()
}

func TestSnapshotCollector(t *testing.T) {
	c := &snapshotCollector{snap: sampleSnapshot(), log: logger.Nop()}

	// 1 usage + 2 cpu + 2 memory + uptime + 3 disk + 3 load + 2 addresses
	if n := testutil.CollectAndCount(c); n != 14 {
		t.Fatalf("metric count = %d, want 14", n)
	}

	want := `
# HELP hostdash_disk_used_bytes Used space on the monitored volume in bytes
# TYPE hostdash_disk_used_bytes gauge
hostdash_disk_used_bytes{path="/"} 600
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(want), "hostdash_disk_used_bytes"); err != nil {
		t.Fatal(err)
	}
}

func TestSnapshotCollectorDegraded(t *testing.T) {
	c := &snapshotCollector{snap: domain.Snapshot{Disk: domain.NewDiskUsage("/", 0, 0)}, log: logger.Nop()}

	// scalars only: no cpu rows and no addresses
	if n := testutil.CollectAndCount(c); n != 10 {
		t.Fatalf("metric count = %d, want 10", n)
	}
}

func TestServeHTTP(t *testing.T) {
	code, out := scrape(t, New(stubSampler{snap: sampleSnapshot()}, time.Second, logger.Nop()))

	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	for _, s := range []string{
		`hostdash_disk_total_bytes{path="/"} 1000`,
		`hostdash_cpu_usage_ratio 0.25`,
		`hostdash_load{window="5m"} 0.25`,
		`hostdash_network_address_info{address="127.0.0.1",family="IPv4",interface="lo",internal="true"} 1`,
		`hostdash_cpu_info{index="1",model="Intel Xeon"} 2400`,
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q", s)
		}
	}
	if strings.Contains(out, "go_goroutines") {
		t.Error("runtime collectors leaked into output")
	}
}

func TestServeHTTPInvalidUTF8Labels(t *testing.T) {
	snap := sampleSnapshot()
	snap.CPUs[0].Model = "Xeon\xfe"
	snap.NetworkInterfaces = append(snap.NetworkInterfaces, domain.NetworkInterface{
		Name: "eth\xff", Family: "IPv4", Address: "10.0.0.3",
	})

	code, out := scrape(t, New(stubSampler{snap: snap}, time.Second, logger.Nop()))

	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(out, `interface="eth`+"�"+`"`) {
		t.Errorf("sanitised interface missing:\n%s", out)
	}
	if !strings.Contains(out, `model="Xeon`+"�"+`"`) {
		t.Errorf("sanitised cpu model missing:\n%s", out)
	}
	if !strings.Contains(out, `hostdash_uptime_seconds 90061`) {
		t.Error("other metrics lost")
	}
}

func TestServeHTTPUsesRequestContext(t *testing.T) {
	errs := make(chan error, 1)
	e := New(stubSampler{snap: sampleSnapshot(), ctxErr: errs}, time.Minute, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil).WithContext(ctx))

	if err := <-errs; err == nil {
		t.Fatal("sampler did not see the cancelled request context")
	}
	if strings.Contains(rec.Body.String(), "hostdash_") {
		t.Error("abandoned scrape still wrote metrics")
	}
}
