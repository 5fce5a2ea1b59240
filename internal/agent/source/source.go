// Package source reads raw CPU and memory counters from the host
package source

import (
	"fmt"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
)

// Source names accepted by New
const (
	ProcfsName   = "procfs"
	GopsutilName = "gopsutil"
)

// Source exposes the current cumulative CPU counters and memory totals
type Source interface {
	// ReadCPU reads the aggregate CPU time buckets
	ReadCPU() (types.CounterReading, error)
	// ReadMemory reads memory total and available
	ReadMemory() (types.MemoryReading, error)
}

// New creates the source registered under name
func New(name string) (Source, error) {
	switch name {
	case ProcfsName, "":
		return NewProcfs(), nil
	case GopsutilName:
		return NewGopsutil(), nil
	default:
		return nil, fmt.Errorf("unknown counter source %q", name)
	}
}
