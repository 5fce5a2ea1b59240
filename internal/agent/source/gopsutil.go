package source

import (
	"fmt"
	"math"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/myerrors"
)

// userHZ converts gopsutil's seconds back into kernel clock ticks
const userHZ = 100

// Gopsutil reads counters through gopsutil, for hosts without a readable procfs
type Gopsutil struct {
	cpuTimes      func(perCPU bool) ([]cpu.TimesStat, error)
	virtualMemory func() (*mem.VirtualMemoryStat, error)
}

// NewGopsutil creates a Gopsutil source
func NewGopsutil() *Gopsutil {
	return &Gopsutil{
		cpuTimes:      cpu.Times,
		virtualMemory: mem.VirtualMemory,
	}
}

// ReadCPU reads the aggregate cpu times
func (g *Gopsutil) ReadCPU() (types.CounterReading, error) {
	times, err := g.cpuTimes(false)
	if err != nil {
		return types.CounterReading{}, fmt.Errorf("%w: cpu times: %v", myerrors.ErrSourceUnavailable, err)
	}
	if len(times) == 0 {
		return types.CounterReading{}, fmt.Errorf("%w: no aggregate cpu times", myerrors.ErrSourceMalformed)
	}
	t := times[0]
	return types.CounterReading{
		User:    toTicks(t.User),
		Nice:    toTicks(t.Nice),
		System:  toTicks(t.System),
		Idle:    toTicks(t.Idle),
		Iowait:  toTicks(t.Iowait),
		Irq:     toTicks(t.Irq),
		Softirq: toTicks(t.Softirq),
		Steal:   toTicks(t.Steal),
	}, nil
}

// ReadMemory reads total and available memory
func (g *Gopsutil) ReadMemory() (types.MemoryReading, error) {
	m, err := g.virtualMemory()
	if err != nil {
		return types.MemoryReading{}, fmt.Errorf("%w: virtual memory: %v", myerrors.ErrSourceUnavailable, err)
	}
	return types.MemoryReading{
		TotalKb:     m.Total / 1024,
		AvailableKb: m.Available / 1024,
	}, nil
}

func toTicks(seconds float64) uint64 {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return uint64(math.Round(seconds * userHZ))
}
