package hw

import "github.com/jaypipes/ghw"

// HardwareInfo contains information about the system's hardware.
type HardwareInfo struct {
	CPU          *ghw.CPUInfo    `json:"cpu" yaml:"cpu"`
	Memory       *ghw.MemoryInfo `json:"memory" yaml:"memory"`
	BlockStorage *ghw.BlockInfo  `json:"block_storage" yaml:"block_storage"`
	GPU          *ghw.GPUInfo    `json:"gpu,omitempty" yaml:"gpu,omitempty"`
}

// SystemInfo holds details about the host system.
type SystemInfo struct {
	OS            string `json:"os" yaml:"os"`
	Distro        string `json:"distro" yaml:"distro"`
	Version       string `json:"version" yaml:"version"`
	KernelVersion string `json:"kernelVersion" yaml:"kernelVersion"`
	Architecture  string `json:"architecture" yaml:"architecture"`
}

// Facts is one snapshot of the host facts reported as run tags.
type Facts struct {
	CPU           string `json:"cpu" yaml:"cpu"`
	CPUCores      int    `json:"cpuCores" yaml:"cpuCores"`
	MemoryBytes   uint64 `json:"memoryBytes" yaml:"memoryBytes"`
	DiskFreeBytes uint64 `json:"diskFreeBytes" yaml:"diskFreeBytes"`
	Platform      string `json:"platform" yaml:"platform"`
	// OS is the raw OS name ("linux", "darwin", "windows").
	OS string `json:"os" yaml:"os"`
}
