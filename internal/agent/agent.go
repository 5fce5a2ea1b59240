// Package agent samples host CPU and memory usage for the length of a CI job
package agent

import (
	"context"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/config"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/metriccollector"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/source"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/loggers"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/repeating"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/storage"
)

// Agent makes all the work with metrics
type Agent struct {
	CPU         *metriccollector.CPUCollector
	Memory      *metriccollector.MemoryCollector
	Store       *storage.SeriesStore
	Scheduler   *repeating.Scheduler
	Termination *TerminationHandler
}

// NewAgent creates new Agent reading from src and flushing to persister
func NewAgent(cfg config.Config, src source.Source, persister storage.Persister) *Agent {
	store := storage.NewSeriesStore(min(cfg.Iterations, maxPreallocated))
	scheduler := repeating.NewScheduler(cfg.Interval, cfg.Iterations)
	return &Agent{
		CPU:         metriccollector.NewCPUCollector(src),
		Memory:      metriccollector.NewMemoryCollector(src),
		Store:       store,
		Scheduler:   scheduler,
		Termination: NewTerminationHandler(scheduler, store, persister),
	}
}

// maxPreallocated caps the initial series capacity; long runs use huge iteration counts
const maxPreallocated = 1024

// Tick collects one sample of each metric. A failing metric does not block the other.
func (a *Agent) Tick() {
	if sample, err := a.CPU.Collect(); err != nil {
		loggers.ErrorLogger.Println("CPU error:", err)
	} else {
		a.Store.AppendCPU(sample)
	}
	if sample, err := a.Memory.Collect(); err != nil {
		loggers.ErrorLogger.Println("Memory error:", err)
	} else {
		a.Store.AppendMemory(sample)
	}
}

// Run collects until the iteration cap or cancellation, then flushes what was collected.
// The flush is shared with the termination path and happens at most once.
func (a *Agent) Run(ctx context.Context) (repeating.State, error) {
	loggers.InfoLogger.Printf("Collecting %d iterations at %s intervals", a.Scheduler.MaxIterations, a.Scheduler.Interval)
	state := a.Scheduler.Run(ctx, a.Tick)
	cpu, memory := a.Store.Len()
	loggers.InfoLogger.Printf("collection %s after %d ticks (%d cpu, %d memory samples)", state, a.Scheduler.Ticks(), cpu, memory)
	return state, a.Termination.Flush()
}
