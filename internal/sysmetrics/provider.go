// Package sysmetrics is a run-context provider that tags tracked runs with
// facts about the host they run on: CPU model and core count, memory, free
// disk space, platform and GPU name.
//
// Tags never fails. Either all six fact tags are returned or, if any fact
// could not be read, a single TagError tag carrying the reason.
package sysmetrics

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hiveden/sysmetrics/internal/defaults"
	"github.com/hiveden/sysmetrics/internal/gpu"
	"github.com/hiveden/sysmetrics/internal/hw"
)

// Name is the name the provider registers under.
const Name = "sysmetrics"

// Provider collects host facts as run tags. The zero value is usable and
// reads the local host with default timeouts.
type Provider struct {
	probe        *hw.Probe
	run          gpu.Runner
	logger       *slog.Logger
	timeout      time.Duration
	probeTimeout time.Duration
	diskPath     string
}

// Option configures a Provider. Options may be given in any order.
type Option func(*Provider)

// WithProbe replaces the host fact probe.
func WithProbe(p *hw.Probe) Option {
	return func(pr *Provider) {
		pr.probe = p
	}
}

// WithRunner replaces the command runner used by the GPU probes. It takes
// precedence over WithProbeTimeout.
func WithRunner(r gpu.Runner) Option {
	return func(pr *Provider) {
		pr.run = r
	}
}

// WithDiskPath measures free space on the filesystem holding path instead of
// the working directory. An empty path keeps the probe's own setting.
func WithDiskPath(path string) Option {
	return func(pr *Provider) {
		pr.diskPath = path
	}
}

// WithProbeTimeout bounds each GPU inspection subprocess.
func WithProbeTimeout(d time.Duration) Option {
	return func(pr *Provider) {
		pr.probeTimeout = d
	}
}

// WithCollectTimeout bounds a whole collection.
func WithCollectTimeout(d time.Duration) Option {
	return func(pr *Provider) {
		pr.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(pr *Provider) {
		pr.logger = l
	}
}

// NewProvider returns a Provider reading the local host.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		timeout:      defaults.CollectTimeout,
		probeTimeout: defaults.ProbeTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.probe == nil {
		p.probe = hw.NewProbe()
	}
	if p.diskPath != "" {
		probe := *p.probe
		probe.DiskPath = p.diskPath
		p.probe = &probe
	}
	if p.run == nil {
		p.run = gpu.ExecRunner(p.probeTimeout)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return Name
}

// InContext reports whether the provider applies to the current run. It
// always does.
func (p *Provider) InContext() bool {
	return true
}

// Tags returns the host fact tags, or a single TagError tag on failure.
func (p *Provider) Tags(ctx context.Context) map[string]string {
	return p.Collect(ctx).Map()
}

// Collect gathers the host facts and the GPU name.
func (p *Provider) Collect(ctx context.Context) (res Result) {
	logger := p.logger
	if logger == nil {
		logger = slog.Default()
	}
	probe := p.probe
	if probe == nil {
		probe = hw.NewProbe()
	}
	run := p.run
	if run == nil {
		probeTimeout := p.probeTimeout
		if probeTimeout <= 0 {
			probeTimeout = defaults.ProbeTimeout
		}
		run = gpu.ExecRunner(probeTimeout)
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("panic collecting host facts: %v", r)}
		}
		if res.Err != nil {
			logger.Warn("host fact collection failed", "provider", Name, "error", res.Err)
		}
	}()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	facts, err := probe.Collect(ctx)
	if err != nil {
		return Result{Err: err}
	}

	platform := gpu.ParsePlatform(facts.OS)
	gpuName := gpu.Name(ctx, platform, run)

	logger.Debug("collected host facts",
		"provider", Name,
		"platform", platform.String(),
		"cpu", facts.CPU,
		"gpu", gpuName)

	return Result{Tags: map[string]string{
		TagCPU:        facts.CPU,
		TagCPUCores:   strconv.Itoa(facts.CPUCores),
		TagMemoryGB:   hw.FormatGB(facts.MemoryBytes),
		TagDiskFreeGB: hw.FormatGB(facts.DiskFreeBytes),
		TagPlatform:   facts.Platform,
		TagGPU:        gpuName,
	}}
}
