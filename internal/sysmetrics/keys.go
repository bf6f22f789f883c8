package sysmetrics

// Tag keys emitted by the provider.
const (
	TagCPU        = "sys.cpu"
	TagCPUCores   = "sys.cpu_cores"
	TagMemoryGB   = "sys.memory_gb"
	TagDiskFreeGB = "sys.disk_free_gb"
	TagPlatform   = "sys.platform"
	TagGPU        = "sys.gpu"

	// TagError replaces every other tag when collection fails.
	TagError = "sysmetrics.error"
)

// FactKeys are the keys present on every successful collection.
var FactKeys = []string{
	TagCPU,
	TagCPUCores,
	TagMemoryGB,
	TagDiskFreeGB,
	TagPlatform,
	TagGPU,
}
