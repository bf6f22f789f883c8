// Package defaults holds the timeouts shared by the probes, the CLI and the API server.
package defaults

import "time"

const (
	// ProbeTimeout bounds a single inspection subprocess (system_profiler,
	// powershell, nvidia-smi). A probe that hits it reports no GPU.
	ProbeTimeout = 5 * time.Second

	// CollectTimeout bounds a whole tag collection.
	CollectTimeout = 15 * time.Second
)

const (
	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout must exceed CollectTimeout so /tags can always answer.
	ServerWriteTimeout = 30 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 10 * time.Second
)
