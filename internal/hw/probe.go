package hw

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

const bytesPerGB = 1024 * 1024 * 1024

// Probe reads the CPU, memory, disk and platform facts of the host.
// Every source is a field so callers can substitute their own; the zero
// value of a field means the gopsutil implementation.
type Probe struct {
	HostInfo      func(ctx context.Context) (*host.InfoStat, error)
	CPUInfo       func(ctx context.Context) ([]cpu.InfoStat, error)
	CPUCounts     func(ctx context.Context, logical bool) (int, error)
	VirtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	DiskUsage     func(ctx context.Context, path string) (*disk.UsageStat, error)

	// DiskPath is the path whose filesystem is measured for free space.
	// Empty means the working directory at collection time.
	DiskPath string
}

// NewProbe returns a Probe backed by gopsutil.
func NewProbe() *Probe {
	return &Probe{
		HostInfo:      host.InfoWithContext,
		CPUInfo:       cpu.InfoWithContext,
		CPUCounts:     cpu.CountsWithContext,
		VirtualMemory: mem.VirtualMemoryWithContext,
		DiskUsage:     disk.UsageWithContext,
	}
}

// Collect reads all facts. The platform is read first. Errors are not
// contained: the first failing source aborts the collection. A nil Probe
// reads the local host.
func (p *Probe) Collect(ctx context.Context) (*Facts, error) {
	p = p.withDefaults()

	sys, err := systemInfo(ctx, p.HostInfo)
	if err != nil {
		return nil, err
	}

	cpuName, err := p.cpuName(ctx, sys.Architecture)
	if err != nil {
		return nil, err
	}

	cores, err := p.CPUCounts(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to count CPU cores: %w", err)
	}
	if cores <= 0 {
		return nil, fmt.Errorf("failed to count CPU cores: got %d", cores)
	}

	vm, err := p.VirtualMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get memory info: %w", err)
	}

	free, err := p.diskFree(ctx)
	if err != nil {
		return nil, err
	}

	return &Facts{
		CPU:           cpuName,
		CPUCores:      cores,
		MemoryBytes:   vm.Total,
		DiskFreeBytes: free,
		Platform:      sys.Descriptor(),
		OS:            sys.OS,
	}, nil
}

func (p *Probe) withDefaults() *Probe {
	d := NewProbe()
	if p == nil {
		return d
	}
	c := *p
	if c.HostInfo == nil {
		c.HostInfo = d.HostInfo
	}
	if c.CPUInfo == nil {
		c.CPUInfo = d.CPUInfo
	}
	if c.CPUCounts == nil {
		c.CPUCounts = d.CPUCounts
	}
	if c.VirtualMemory == nil {
		c.VirtualMemory = d.VirtualMemory
	}
	if c.DiskUsage == nil {
		c.DiskUsage = d.DiskUsage
	}
	return &c
}

// cpuName returns the first processor's model name. Some platforms (ARM Linux
// in particular) report none; the kernel architecture stands in for it then.
func (p *Probe) cpuName(ctx context.Context, arch string) (string, error) {
	infos, err := p.CPUInfo(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get CPU info: %w", err)
	}
	for _, info := range infos {
		if info.ModelName != "" {
			return info.ModelName, nil
		}
	}
	if arch == "" {
		return "", errors.New("failed to get CPU info: no model name or architecture reported")
	}
	return arch, nil
}

func (p *Probe) diskFree(ctx context.Context) (uint64, error) {
	path := p.DiskPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return 0, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = wd
	}

	usage, err := p.DiskUsage(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to get disk usage for %s: %w", path, err)
	}
	return usage.Free, nil
}

// GB converts a byte count to gigabytes (1024³ bytes), rounded to two decimals.
func GB(bytes uint64) float64 {
	return math.Round(float64(bytes)/bytesPerGB*100) / 100
}

// FormatGB renders GB(bytes) with two decimals, e.g. "15.50".
func FormatGB(bytes uint64) string {
	return strconv.FormatFloat(GB(bytes), 'f', 2, 64)
}
