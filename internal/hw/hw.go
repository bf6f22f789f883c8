package hw

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jaypipes/ghw"
)

// GetHardwareInfo returns a detailed inventory of the system's hardware.
// GPU enumeration is best effort: ghw only supports it on some platforms, so a
// failure there leaves GPU nil instead of failing the report.
func GetHardwareInfo() (*HardwareInfo, error) {
	cpu, err := ghw.CPU()
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU info: %w", err)
	}

	memory, err := ghw.Memory()
	if err != nil {
		return nil, fmt.Errorf("failed to get memory info: %w", err)
	}

	block, err := ghw.Block()
	if err != nil {
		return nil, fmt.Errorf("failed to get block storage info: %w", err)
	}

	gpu, err := ghw.GPU()
	if err != nil {
		slog.Debug("gpu inventory unavailable", "error", err)
	}

	return &HardwareInfo{
		CPU:          cpu,
		Memory:       memory,
		BlockStorage: block,
		GPU:          gpu,
	}, nil
}

// GraphicsCardNames lists the product names of the cards in a ghw GPU inventory.
func (h *HardwareInfo) GraphicsCardNames() []string {
	if h == nil || h.GPU == nil {
		return nil
	}
	var names []string
	for _, card := range h.GPU.GraphicsCards {
		if card == nil || card.DeviceInfo == nil {
			continue
		}
		var name string
		if card.DeviceInfo.Product != nil {
			name = strings.TrimSpace(card.DeviceInfo.Product.Name)
		}
		if name == "" && card.DeviceInfo.Vendor != nil {
			name = strings.TrimSpace(card.DeviceInfo.Vendor.Name)
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
