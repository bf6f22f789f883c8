// Package gpu detects the name of the host's GPU.
//
// There is one probe per platform and each shells out to a different native
// tool:
//
//   - macOS: system_profiler SPDisplaysDataType, "Chipset Model:" line
//   - Windows: powershell CIM query of Win32_VideoController names
//   - Linux and everything else: nvidia-smi --query-gpu=name
//
// Probes never fail. A missing tool, a non-zero exit, a timeout or output that
// cannot be parsed all yield the sentinel None.
package gpu

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/hiveden/sysmetrics/internal/defaults"
)

// None is reported when no GPU could be detected.
const None = "None"

const (
	systemProfilerCommand = "system_profiler"
	powershellCommand     = "powershell"
	nvidiaSMICommand      = "nvidia-smi"

	chipsetPrefix = "Chipset Model:"
)

var (
	systemProfilerArgs = []string{"SPDisplaysDataType", "-detailLevel", "full"}
	powershellArgs     = []string{
		"-NoProfile",
		"-NonInteractive",
		"-Command",
		"Get-CimInstance Win32_VideoController | Select-Object -ExpandProperty Name",
	}
	nvidiaSMIArgs = []string{"--query-gpu=name", "--format=csv,noheader"}
)

// Name runs the probe bound to platform p and returns the GPU name or None.
// A nil run uses ExecRunner with defaults.ProbeTimeout.
func Name(ctx context.Context, p Platform, run Runner) string {
	switch p {
	case MacOS:
		return MacOSName(ctx, run)
	case Windows:
		return WindowsName(ctx, run)
	case Linux, Other:
		return NvidiaName(ctx, run)
	}
	return None
}

// MacOSName reads the chipset model from system_profiler's displays report.
func MacOSName(ctx context.Context, run Runner) string {
	out, ok := invoke(ctx, run, systemProfilerCommand, systemProfilerArgs...)
	if !ok {
		return None
	}
	if name, found := parseChipsetModel(out); found {
		return name
	}
	return None
}

// WindowsName returns the first video controller name reported by CIM.
func WindowsName(ctx context.Context, run Runner) string {
	out, ok := invoke(ctx, run, powershellCommand, powershellArgs...)
	if !ok {
		return None
	}
	if name := firstNonEmptyLine(out); name != "" {
		return name
	}
	return None
}

// NvidiaName returns the first GPU name reported by nvidia-smi.
func NvidiaName(ctx context.Context, run Runner) string {
	out, ok := invoke(ctx, run, nvidiaSMICommand, nvidiaSMIArgs...)
	if !ok {
		return None
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	if name := strings.TrimSpace(line); name != "" {
		return name
	}
	return None
}

func invoke(ctx context.Context, run Runner, name string, args ...string) ([]byte, bool) {
	if run == nil {
		run = ExecRunner(defaults.ProbeTimeout)
	}
	out, err := run(ctx, name, args...)
	if err != nil {
		slog.Debug("gpu probe failed", "command", name, "error", err)
		return nil, false
	}
	return out, true
}

func parseChipsetModel(out []byte) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, chipsetPrefix) {
			continue
		}
		_, value, _ := strings.Cut(line, ":")
		if value = strings.TrimSpace(value); value != "" {
			return value, true
		}
	}
	return "", false
}

func firstNonEmptyLine(out []byte) string {
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
