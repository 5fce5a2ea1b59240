// Package types holds the readings and samples passed between the agent packages
package types

// CounterReading is one read of the cumulative CPU time buckets, in USER_HZ ticks
type CounterReading struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	Iowait  uint64
	Irq     uint64
	Softirq uint64
	Steal   uint64
}

// Total is the sum of all buckets
func (r CounterReading) Total() uint64 {
	return r.User + r.Nice + r.System + r.Idle + r.Iowait + r.Irq + r.Softirq + r.Steal
}

// Active is the time spent neither idle nor waiting on I/O
func (r CounterReading) Active() uint64 {
	return r.Total() - r.Idle - r.Iowait
}

// UserTime is user plus nice time
func (r CounterReading) UserTime() uint64 {
	return r.User + r.Nice
}

// SystemTime is kernel time including interrupt handling
func (r CounterReading) SystemTime() uint64 {
	return r.System + r.Irq + r.Softirq
}

// MemoryReading is one read of the memory totals
type MemoryReading struct {
	TotalKb     uint64
	AvailableKb uint64
}

// CPUSample is the CPU utilization observed over one tick.
// Loads are percentages and are not clamped to [0,100].
type CPUSample struct {
	Time       int64   `json:"time"`
	TotalLoad  float64 `json:"total_load"`
	UserLoad   float64 `json:"user_load"`
	SystemLoad float64 `json:"system_load"`
}

// MemorySample is the memory usage observed at one tick
type MemorySample struct {
	Time         int64   `json:"time"`
	UsagePercent float64 `json:"usage_percent"`
	UsedMb       uint64  `json:"used_mb"`
	TotalMb      uint64  `json:"total_mb"`
}

// Snapshot is a point-in-time copy of both series
type Snapshot struct {
	CPU    []CPUSample    `json:"cpu"`
	Memory []MemorySample `json:"memory"`
	Hash   string         `json:"hash,omitempty"`
}
