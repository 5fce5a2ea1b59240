package metriccollector

import (
	"time"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
)

// MemoryCollector converts one memory reading into a usage sample
type MemoryCollector struct {
	source MemorySource
	now    Clock
}

// NewMemoryCollector creates a MemoryCollector
func NewMemoryCollector(source MemorySource) *MemoryCollector {
	return &MemoryCollector{
		source: source,
		now:    time.Now,
	}
}

// Collect reads memory totals and returns the current usage
func (c *MemoryCollector) Collect() (types.MemorySample, error) {
	now := timestampMillis(c.now)
	reading, err := c.source.ReadMemory()
	if err != nil {
		return types.MemorySample{}, err
	}
	return memorySample(now, reading), nil
}

func memorySample(now int64, reading types.MemoryReading) types.MemorySample {
	// available can briefly exceed total when the source is stale
	usedKb := satSub(reading.TotalKb, reading.AvailableKb)
	var usage float64
	if reading.TotalKb > 0 {
		usage = float64(usedKb) / float64(reading.TotalKb) * 100
	}
	return types.MemorySample{
		Time:         now,
		UsagePercent: usage,
		UsedMb:       usedKb / 1024,
		TotalMb:      reading.TotalKb / 1024,
	}
}
