// Package diagnostics logs a startup snapshot of version and host
// information. Every probe degrades gracefully: a sensor that cannot be read
// logs "unknown" and startup continues, since diagnostics exist to help
// operators and must never block a node from coming up.
package diagnostics

import (
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/tessera-network/tesserad/internal/logging"
	"github.com/tessera-network/tesserad/internal/version"
)

// Report logs the version banner and host diagnostics. protocolID is the
// effective P2P protocol version after any CLI override.
func Report(protocolID int) {
	logging.Info("Tessera version: %s", version.Version)
	logging.Info("P2P protocol version: %d", protocolID)
	logging.Info("Wire schema version: %s", version.SchemaVersion)

	logPlatform()
	logCPU()
	logMemory()
}

func logPlatform() {
	info, err := host.Info()
	if err != nil {
		logging.Warn("Failed to read host info: %v", err)
		logging.Info("Platform: unknown")
		return
	}

	logging.Info("Platform: %s %s %s (%s)",
		info.OS, info.Platform, info.PlatformVersion, info.KernelArch)
}

func logCPU() {
	vendor := cpuid.CPU.VendorString
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = "unknown"
	}
	if vendor == "" {
		vendor = "unknown"
	}

	logging.Info("CPU: %s %s (%d logical cores)", vendor, brand, runtime.NumCPU())
}

func logMemory() {
	vm, err := mem.VirtualMemory()
	if err != nil {
		logging.Warn("Failed to read memory info: %v", err)
		logging.Info("Memory: unknown")
	} else {
		logging.Info("Memory: %s total, %s available",
			humanize.IBytes(vm.Total), humanize.IBytes(vm.Available))
	}

	swap, err := mem.SwapMemory()
	if err != nil {
		logging.Debug("Failed to read swap info: %v", err)
		return
	}
	logging.Info("Swap: %s total", humanize.IBytes(swap.Total))
}
