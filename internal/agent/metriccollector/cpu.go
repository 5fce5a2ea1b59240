package metriccollector

import (
	"time"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
)

// CPUCollector computes CPU utilization from the delta between two successive readings.
// It is not safe for concurrent use; the scheduler is its only caller.
type CPUCollector struct {
	source   CPUSource
	now      Clock
	previous *types.CounterReading
}

// NewCPUCollector creates a CPUCollector with no baseline
func NewCPUCollector(source CPUSource) *CPUCollector {
	return &CPUCollector{
		source: source,
		now:    time.Now,
	}
}

// Collect reads the counters and returns the utilization since the previous call.
// The first call only records a baseline and reports zero load.
// On error no sample is produced and the baseline is kept.
func (c *CPUCollector) Collect() (types.CPUSample, error) {
	sample := types.CPUSample{Time: timestampMillis(c.now)}
	current, err := c.source.ReadCPU()
	if err != nil {
		return types.CPUSample{}, err
	}
	if c.previous != nil {
		sample.TotalLoad, sample.UserLoad, sample.SystemLoad = loads(*c.previous, current)
	}
	c.previous = &current
	return sample, nil
}

// HasBaseline reports whether a previous reading is retained
func (c *CPUCollector) HasBaseline() bool {
	return c.previous != nil
}

// loads returns total, user and system load in percent.
// The ratios are independent and are not clamped or normalised.
func loads(previous, current types.CounterReading) (total, user, system float64) {
	totalDelta := satSub(current.Total(), previous.Total())
	if totalDelta == 0 {
		return 0, 0, 0
	}
	activeDelta := satSub(current.Active(), previous.Active())
	userDelta := satSub(current.UserTime(), previous.UserTime())
	systemDelta := satSub(current.SystemTime(), previous.SystemTime())

	d := float64(totalDelta)
	return float64(activeDelta) / d * 100, float64(userDelta) / d * 100, float64(systemDelta) / d * 100
}
