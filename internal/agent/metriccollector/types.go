// Package metriccollector turns raw counter readings into utilization samples
package metriccollector

import (
	"time"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
)

// CPUSource reads cumulative CPU counters
type CPUSource interface {
	ReadCPU() (types.CounterReading, error)
}

// MemorySource reads memory totals
type MemorySource interface {
	ReadMemory() (types.MemoryReading, error)
}

// Clock returns the current time
type Clock func() time.Time

func timestampMillis(now Clock) int64 {
	return now().UnixMilli()
}

// satSub subtracts b from a, clamping at zero
func satSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
