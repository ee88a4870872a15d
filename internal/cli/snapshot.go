package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"hostdash/internal/config"
	"hostdash/internal/core/metrics"
	"hostdash/internal/domain"
	"hostdash/internal/logger"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSnapshotCmd() *cobra.Command {
	var (
		format   string
		diskPath string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Collect one snapshot and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if diskPath != "" {
				cfg.DiskPath = diskPath
			}

			sampler := metrics.NewSampler(cfg, logger.New(cfg))
			snap := sampler.Collect(cmd.Context())

			return writeSnapshot(cmd.OutOrStdout(), snap, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().StringVar(&diskPath, "disk-path", "", "volume to report, overrides DISK_PATH")

	return cmd
}

func writeSnapshot(w io.Writer, snap domain.Snapshot, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)

	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()

	case "text", "":
		return writeText(w, snap)
	}

	return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
}

func writeText(w io.Writer, snap domain.Snapshot) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", bold("Hostname:"), snap.Hostname)
	if snap.OS.Platform != "" {
		fmt.Fprintf(&b, "%s %s %s (%s)\n", bold("OS:"), snap.OS.Platform, snap.OS.KernelVersion, snap.OS.Arch)
	}

	fmt.Fprintf(&b, "\n%s\n", cyan("CPU"))
	for i, c := range snap.CPUs {
		fmt.Fprintf(&b, "  CPU %d  %s  %d MHz\n", i+1, c.Model, c.SpeedMHz)
	}
	fmt.Fprintf(&b, "  Usage: %s\n", usage(snap.CPUUsagePercent()))
	fmt.Fprintf(&b, "  Load:  %.2f %.2f %.2f\n", snap.Load.Load1, snap.Load.Load5, snap.Load.Load15)

	fmt.Fprintf(&b, "\n%s\n", cyan("Memory"))
	fmt.Fprintf(&b, "  Free:  %.2f%%\n", snap.Memory.FreePercent())
	fmt.Fprintf(&b, "  Total: %d MB\n", snap.Memory.TotalMB)

	fmt.Fprintf(&b, "\n%s\n", cyan("Uptime"))
	fmt.Fprintf(&b, "  %d days, %d hours, %d minutes\n", snap.Uptime.Days, snap.Uptime.Hours, snap.Uptime.Minutes)

	fmt.Fprintf(&b, "\n%s %s\n", cyan("Disk"), snap.Disk.Path)
	fmt.Fprintf(&b, "  Used: %s\n", usage(snap.Disk.UsedPercent()))

	fmt.Fprintf(&b, "\n%s\n", cyan("Network"))
	if len(snap.NetworkInterfaces) == 0 {
		fmt.Fprintln(&b, "  none")
	}
	for _, n := range snap.NetworkInterfaces {
		internal := "No"
		if n.Internal {
			internal = "Yes"
		}
		fmt.Fprintf(&b, "  %-12s %-5s %-40s %-16s %s internal=%s\n", n.Name, n.Family, n.Address, n.Netmask, n.MAC, internal)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// usage colours a percentage by how close it is to saturation.
func usage(pct float64) string {
	s := fmt.Sprintf("%.2f%%", pct)
	switch {
	case pct >= 90:
		return red(s)
	case pct >= 70:
		return yellow(s)
	}
	return green(s)
}
