package hw

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemInfo_Descriptor(t *testing.T) {
	tests := []struct {
		name string
		info SystemInfo
		want string
	}{
		{"linux", SystemInfo{OS: "linux", KernelVersion: "6.1.0-18-amd64", Architecture: "x86_64"}, "Linux-6.1.0-18-amd64-x86_64"},
		{"darwin", SystemInfo{OS: "darwin", KernelVersion: "23.2.0", Architecture: "arm64"}, "Darwin-23.2.0-arm64"},
		{"windows", SystemInfo{OS: "windows", KernelVersion: "10.0.19045 Build 19045", Architecture: "x86_64"}, "Windows-10.0.19045 Build 19045-x86_64"},
		{"bsd", SystemInfo{OS: "freebsd", KernelVersion: "14.0-RELEASE", Architecture: "amd64"}, "FreeBSD-14.0-RELEASE-amd64"},
		{"other", SystemInfo{OS: "solaris", Architecture: "sparc"}, "Solaris-sparc"},
		{"empty", SystemInfo{}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Descriptor())
		})
	}
}

func TestSystemInfo_FromHost(t *testing.T) {
	sys, err := systemInfo(context.Background(), func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{
			OS:              "linux",
			Platform:        "debian",
			PlatformVersion: "12.4",
			KernelVersion:   "6.1.0",
			KernelArch:      "aarch64",
		}, nil
	})
	require.NoError(t, err)

	assert.Equal(t, &SystemInfo{
		OS:            "linux",
		Distro:        "debian",
		Version:       "12.4",
		KernelVersion: "6.1.0",
		Architecture:  "aarch64",
	}, sys)
}

func TestSystemInfo_HostError(t *testing.T) {
	_, err := systemInfo(context.Background(), func(context.Context) (*host.InfoStat, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get host info")
}

func TestGraphicsCardNames_Empty(t *testing.T) {
	var h *HardwareInfo
	assert.Nil(t, h.GraphicsCardNames())
	assert.Nil(t, (&HardwareInfo{}).GraphicsCardNames())
}
