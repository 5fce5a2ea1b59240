package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/myerrors"
)

func TestSeriesStore_SnapshotIsCopy(t *testing.T) {
	s := NewSeriesStore(2)
	s.AppendCPU(types.CPUSample{Time: 1, TotalLoad: 10})
	s.AppendMemory(types.MemorySample{Time: 1, UsagePercent: 20})

	snapshot := s.Snapshot()
	snapshot.CPU[0].TotalLoad = 99
	s.AppendCPU(types.CPUSample{Time: 2, TotalLoad: 30})

	again := s.Snapshot()
	assert.Len(t, snapshot.CPU, 1)
	assert.Len(t, again.CPU, 2)
	assert.Equal(t, 10.0, again.CPU[0].TotalLoad)

	cpu, memory := s.Len()
	assert.Equal(t, 2, cpu)
	assert.Equal(t, 1, memory)
}

func TestSeriesStore_EmptySnapshot(t *testing.T) {
	snapshot := NewSeriesStore(0).Snapshot()
	assert.NotNil(t, snapshot.CPU)
	assert.NotNil(t, snapshot.Memory)
	assert.Empty(t, snapshot.CPU)
}

func TestSeriesStore_ConcurrentReaders(t *testing.T) {
	s := NewSeriesStore(0)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.AppendCPU(types.CPUSample{Time: int64(i)})
			s.AppendMemory(types.MemorySample{Time: int64(i)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			snapshot := s.Snapshot()
			for j, sample := range snapshot.CPU {
				assert.Equal(t, int64(j), sample.Time)
			}
		}
	}()
	wg.Wait()
	cpu, memory := s.Len()
	assert.Equal(t, 1000, cpu)
	assert.Equal(t, 1000, memory)
}

func TestFileStorage(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "Without key", key: ""},
		{name: "With key", key: "secret"},
	}
	snapshot := types.Snapshot{
		CPU:    []types.CPUSample{{Time: 1, TotalLoad: 12.5, UserLoad: 10, SystemLoad: 2.5}},
		Memory: []types.MemorySample{{Time: 1, UsagePercent: 50, UsedMb: 512, TotalMb: 1024}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fs := NewFileStorage(filepath.Join(t.TempDir(), "nested", "telemetry_data.json"), test.key)
			require.NoError(t, fs.Save(snapshot))

			loaded, err := fs.Load()
			require.NoError(t, err)
			assert.Equal(t, snapshot.CPU, loaded.CPU)
			assert.Equal(t, snapshot.Memory, loaded.Memory)
			if test.key == "" {
				assert.Empty(t, loaded.Hash)
			} else {
				assert.NotEmpty(t, loaded.Hash)
			}
		})
	}
}

func TestFileStorage_Format(t *testing.T) {
	fs := NewFileStorage(filepath.Join(t.TempDir(), "telemetry_data.json"), "")
	require.NoError(t, fs.Save(types.Snapshot{
		CPU:    []types.CPUSample{{Time: 5, TotalLoad: 1}},
		Memory: []types.MemorySample{},
	}))
	data, err := os.ReadFile(fs.StoreFile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cpu":[{"time":5,"total_load":1,"user_load":0,"system_load":0}],"memory":[]}`, string(data))
}

func TestFileStorage_HashMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry_data.json")
	require.NoError(t, NewFileStorage(path, "secret").Save(types.Snapshot{
		CPU: []types.CPUSample{{Time: 1, TotalLoad: 1}},
	}))

	_, err := NewFileStorage(path, "other").Load()
	assert.ErrorIs(t, err, myerrors.ErrHashMismatch)
}

func TestFileStorage_Missing(t *testing.T) {
	_, err := NewFileStorage(filepath.Join(t.TempDir(), "absent.json"), "").Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
