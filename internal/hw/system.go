package hw

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// GetSystemInfo retrieves and returns key information about the host system.
func GetSystemInfo(ctx context.Context) (*SystemInfo, error) {
	return systemInfo(ctx, host.InfoWithContext)
}

func systemInfo(ctx context.Context, hostInfo func(context.Context) (*host.InfoStat, error)) (*SystemInfo, error) {
	info, err := hostInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	return &SystemInfo{
		OS:            info.OS,
		Distro:        info.Platform,
		Version:       info.PlatformVersion,
		KernelVersion: info.KernelVersion,
		Architecture:  info.KernelArch,
	}, nil
}

// Descriptor combines OS name, release and machine architecture into a single
// string such as "Linux-6.1.0-x86_64" or "Darwin-23.2.0-arm64".
func (s *SystemInfo) Descriptor() string {
	parts := []string{osDisplayName(s.OS)}
	if s.KernelVersion != "" {
		parts = append(parts, s.KernelVersion)
	}
	if s.Architecture != "" {
		parts = append(parts, s.Architecture)
	}
	return strings.Join(parts, "-")
}

func osDisplayName(os string) string {
	switch os {
	case "":
		return "Unknown"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	case "freebsd":
		return "FreeBSD"
	case "openbsd":
		return "OpenBSD"
	case "netbsd":
		return "NetBSD"
	default:
		return strings.ToUpper(os[:1]) + os[1:]
	}
}
