// Package storage keeps the collected series and persists snapshots of them
package storage

import (
	"sync"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
)

// Snapshotter takes a point-in-time copy of the series
type Snapshotter interface {
	Snapshot() types.Snapshot
}

// Persister writes a snapshot somewhere the reporting phase can find it
type Persister interface {
	Save(snapshot types.Snapshot) error
}

// SeriesStore holds the CPU and memory series.
// Samples are only ever appended; readers get copies.
type SeriesStore struct {
	mu     sync.RWMutex
	cpu    []types.CPUSample
	memory []types.MemorySample
}

// NewSeriesStore creates an empty SeriesStore with room for capacity samples per series
func NewSeriesStore(capacity int) *SeriesStore {
	if capacity < 0 {
		capacity = 0
	}
	return &SeriesStore{
		cpu:    make([]types.CPUSample, 0, capacity),
		memory: make([]types.MemorySample, 0, capacity),
	}
}

// AppendCPU appends one CPU sample
func (s *SeriesStore) AppendCPU(sample types.CPUSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cpu = append(s.cpu, sample)
}

// AppendMemory appends one memory sample
func (s *SeriesStore) AppendMemory(sample types.MemorySample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory = append(s.memory, sample)
}

// Len returns the length of both series
func (s *SeriesStore) Len() (cpu, memory int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cpu), len(s.memory)
}

// Snapshot copies both series
func (s *SeriesStore) Snapshot() types.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := types.Snapshot{
		CPU:    make([]types.CPUSample, len(s.cpu)),
		Memory: make([]types.MemorySample, len(s.memory)),
	}
	copy(snapshot.CPU, s.cpu)
	copy(snapshot.Memory, s.memory)
	return snapshot
}
