// Package sysmon describes the host a benchmark runs on: system-wide CPU and
// memory usage, logical CPU count, scheduler parallelism and the CPU feature
// flags relevant to tight integer loops.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	syscpu "golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent   float64 // 0.0 .. 100.0
	MemPercent   float64 // 0.0 .. 100.0
	MemTotal     uint64  // bytes
	MemAvailable uint64  // bytes
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemTotal = vmem.Total
		s.MemAvailable = vmem.Available
	}
	return s
}

// HostInfo is the static description printed in the execution configuration.
type HostInfo struct {
	// LogicalCPUs comes from gopsutil and falls back to runtime.NumCPU.
	LogicalCPUs int
	GOMAXPROCS  int
	Arch        string
	// Features lists the detected SIMD/atomic extensions, in a fixed order.
	Features []string
}

// Describe inspects the host. It never fails; missing information falls back
// to what the Go runtime reports.
func Describe() HostInfo {
	info := HostInfo{
		LogicalCPUs: runtime.NumCPU(),
		GOMAXPROCS:  runtime.GOMAXPROCS(0),
		Arch:        runtime.GOARCH,
		Features:    cpuFeatures(),
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		info.LogicalCPUs = n
	}
	return info
}

type feature struct {
	name    string
	present bool
}

func cpuFeatures() []string {
	var candidates []feature
	switch runtime.GOARCH {
	case "amd64", "386":
		candidates = []feature{
			{"sse4.2", syscpu.X86.HasSSE42},
			{"avx", syscpu.X86.HasAVX},
			{"avx2", syscpu.X86.HasAVX2},
			{"avx512f", syscpu.X86.HasAVX512F},
			{"bmi2", syscpu.X86.HasBMI2},
		}
	case "arm64":
		candidates = []feature{
			{"asimd", syscpu.ARM64.HasASIMD},
			{"atomics", syscpu.ARM64.HasATOMICS},
			{"sve", syscpu.ARM64.HasSVE},
		}
	}
	features := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.present {
			features = append(features, c.name)
		}
	}
	return features
}
