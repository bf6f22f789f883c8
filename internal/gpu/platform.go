package gpu

import "strings"

// Platform is the operating system family a GPU probe is bound to.
type Platform int

const (
	Other Platform = iota
	MacOS
	Windows
	Linux
)

// Platforms lists every variant, in declaration order.
func Platforms() []Platform {
	return []Platform{Other, MacOS, Windows, Linux}
}

func (p Platform) String() string {
	switch p {
	case MacOS:
		return "macos"
	case Windows:
		return "windows"
	case Linux:
		return "linux"
	default:
		return "other"
	}
}

// ParsePlatform maps an OS name as reported by runtime.GOOS or gopsutil
// ("darwin", "windows", "linux", ...) onto a Platform. Matching ignores case.
func ParsePlatform(osName string) Platform {
	switch strings.ToLower(strings.TrimSpace(osName)) {
	case "darwin", "macos", "mac os x":
		return MacOS
	case "windows":
		return Windows
	case "linux":
		return Linux
	default:
		return Other
	}
}
