package metriccollector

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/myerrors"
)

// fakeSource replays queued readings in order
type fakeSource struct {
	cpu    []types.CounterReading
	cpuErr []error
	mem    types.MemoryReading
	memErr error
}

func (f *fakeSource) ReadCPU() (types.CounterReading, error) {
	r, err := f.cpu[0], f.cpuErr[0]
	f.cpu, f.cpuErr = f.cpu[1:], f.cpuErr[1:]
	return r, err
}

func (f *fakeSource) ReadMemory() (types.MemoryReading, error) {
	return f.mem, f.memErr
}

func (f *fakeSource) push(r types.CounterReading, err error) {
	f.cpu = append(f.cpu, r)
	f.cpuErr = append(f.cpuErr, err)
}

func fixedClock(ms int64) Clock {
	return func() time.Time { return time.UnixMilli(ms) }
}

var baseReading = types.CounterReading{
	User:    74608,
	Nice:    2520,
	System:  24433,
	Idle:    1117073,
	Iowait:  6176,
	Irq:     4054,
	Softirq: 500,
	Steal:   100,
}

func TestCPUCollector_ColdStart(t *testing.T) {
	src := &fakeSource{}
	src.push(baseReading, nil)
	c := NewCPUCollector(src)
	c.now = fixedClock(1000)

	sample, err := c.Collect()
	require.NoError(t, err)
	assert.Equal(t, types.CPUSample{Time: 1000}, sample)
	assert.True(t, c.HasBaseline())
}

func TestCPUCollector_Loads(t *testing.T) {
	tests := []struct {
		name     string
		next     types.CounterReading
		expected types.CPUSample
	}{
		{
			name:     "Same reading",
			next:     baseReading,
			expected: types.CPUSample{},
		},
		{
			name: "Half active",
			next: func() types.CounterReading {
				r := baseReading
				r.User += 60
				r.System += 40
				r.Idle += 100
				return r
			}(),
			expected: types.CPUSample{TotalLoad: 50, UserLoad: 30, SystemLoad: 20},
		},
		{
			name: "Fully idle",
			next: func() types.CounterReading {
				r := baseReading
				r.Idle += 400
				return r
			}(),
			expected: types.CPUSample{},
		},
		{
			name: "Counters went backwards",
			next: func() types.CounterReading {
				r := baseReading
				r.User -= 1000
				r.Idle -= 1000
				return r
			}(),
			expected: types.CPUSample{},
		},
		{
			name: "Steal counts as active only",
			next: func() types.CounterReading {
				r := baseReading
				r.Steal += 50
				r.Idle += 50
				return r
			}(),
			expected: types.CPUSample{TotalLoad: 50},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			src := &fakeSource{}
			src.push(baseReading, nil)
			src.push(test.next, nil)
			c := NewCPUCollector(src)
			c.now = fixedClock(0)

			_, err := c.Collect()
			require.NoError(t, err)
			sample, err := c.Collect()
			require.NoError(t, err)
			assert.InDelta(t, test.expected.TotalLoad, sample.TotalLoad, 1e-9)
			assert.InDelta(t, test.expected.UserLoad, sample.UserLoad, 1e-9)
			assert.InDelta(t, test.expected.SystemLoad, sample.SystemLoad, 1e-9)
		})
	}
}

func TestCPUCollector_NotClamped(t *testing.T) {
	// user jumped further than total: the ratio is reported as is
	src := &fakeSource{}
	src.push(types.CounterReading{User: 0, Idle: 100}, nil)
	src.push(types.CounterReading{User: 150, Idle: 0}, nil)
	c := NewCPUCollector(src)

	_, err := c.Collect()
	require.NoError(t, err)
	sample, err := c.Collect()
	require.NoError(t, err)
	assert.InDelta(t, 300.0, sample.UserLoad, 1e-9)
	assert.InDelta(t, 300.0, sample.TotalLoad, 1e-9)
}

func TestCPUCollector_ErrorKeepsBaseline(t *testing.T) {
	next := baseReading
	next.User += 100
	next.Idle += 100

	src := &fakeSource{}
	src.push(baseReading, nil)
	src.push(types.CounterReading{}, fmt.Errorf("%w: bad line", myerrors.ErrSourceMalformed))
	src.push(next, nil)
	c := NewCPUCollector(src)

	_, err := c.Collect()
	require.NoError(t, err)

	_, err = c.Collect()
	assert.ErrorIs(t, err, myerrors.ErrSourceMalformed)

	sample, err := c.Collect()
	require.NoError(t, err)
	assert.InDelta(t, 50.0, sample.TotalLoad, 1e-9)
	assert.InDelta(t, 50.0, sample.UserLoad, 1e-9)
}

func TestCPUCollector_FirstReadFails(t *testing.T) {
	src := &fakeSource{}
	src.push(types.CounterReading{}, myerrors.ErrSourceUnavailable)
	src.push(baseReading, nil)
	c := NewCPUCollector(src)

	_, err := c.Collect()
	assert.ErrorIs(t, err, myerrors.ErrSourceUnavailable)
	assert.False(t, c.HasBaseline())

	sample, err := c.Collect()
	require.NoError(t, err)
	assert.Zero(t, sample.TotalLoad)
}

func TestMemoryCollector(t *testing.T) {
	tests := []struct {
		name     string
		reading  types.MemoryReading
		expected types.MemorySample
	}{
		{
			name:     "Half used",
			reading:  types.MemoryReading{TotalKb: 10_000_000, AvailableKb: 5_000_000},
			expected: types.MemorySample{Time: 42, UsagePercent: 50, UsedMb: 4882, TotalMb: 9765},
		},
		{
			name:     "Available above total",
			reading:  types.MemoryReading{TotalKb: 1024, AvailableKb: 4096},
			expected: types.MemorySample{Time: 42, UsagePercent: 0, UsedMb: 0, TotalMb: 1},
		},
		{
			name:     "Zero total",
			reading:  types.MemoryReading{},
			expected: types.MemorySample{Time: 42},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := NewMemoryCollector(&fakeSource{mem: test.reading})
			c.now = fixedClock(42)
			sample, err := c.Collect()
			require.NoError(t, err)
			assert.Equal(t, test.expected, sample)
		})
	}
}

func TestMemoryCollector_Error(t *testing.T) {
	c := NewMemoryCollector(&fakeSource{memErr: myerrors.ErrSourceUnavailable})
	_, err := c.Collect()
	assert.ErrorIs(t, err, myerrors.ErrSourceUnavailable)
}
