package agent

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/loggers"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/storage"
)

// Canceller stops a running collection loop
type Canceller interface {
	Cancel()
}

// TerminationHandler persists the collected series exactly once,
// either on a termination signal or when collection ends normally.
type TerminationHandler struct {
	canceller   Canceller
	snapshotter storage.Snapshotter
	persister   storage.Persister

	once     sync.Once
	flushed  atomic.Bool
	snapshot types.Snapshot
	err      error
}

// NewTerminationHandler creates a TerminationHandler
func NewTerminationHandler(canceller Canceller, snapshotter storage.Snapshotter, persister storage.Persister) *TerminationHandler {
	return &TerminationHandler{
		canceller:   canceller,
		snapshotter: snapshotter,
		persister:   persister,
	}
}

// Flush cancels collection, snapshots the series and persists the snapshot.
// Only the first call does the work; later and concurrent calls wait for it and get its result.
func (h *TerminationHandler) Flush() error {
	h.once.Do(func() {
		h.canceller.Cancel()
		h.snapshot = h.snapshotter.Snapshot()
		h.err = h.persister.Save(h.snapshot)
		if h.err != nil {
			loggers.ErrorLogger.Println("failed to persist snapshot:", h.err)
		}
		h.flushed.Store(true)
	})
	return h.err
}

// Flushed reports whether the flush has completed
func (h *TerminationHandler) Flushed() bool {
	return h.flushed.Load()
}

// Snapshot returns the flushed snapshot, empty before Flush has completed
func (h *TerminationHandler) Snapshot() types.Snapshot {
	if !h.Flushed() {
		return types.Snapshot{}
	}
	return h.snapshot
}

// Listen waits for one of sigs and flushes. It reports whether a signal was received;
// a done ctx returns without flushing.
func (h *TerminationHandler) Listen(ctx context.Context, sigs ...os.Signal) (bool, error) {
	cancelSignal := make(chan os.Signal, 1)
	signal.Notify(cancelSignal, sigs...)
	defer signal.Stop(cancelSignal)
	return h.Watch(ctx, cancelSignal)
}

// Watch is Listen on an existing signal channel
func (h *TerminationHandler) Watch(ctx context.Context, sigs <-chan os.Signal) (bool, error) {
	select {
	case sig := <-sigs:
		loggers.InfoLogger.Printf("received %s, flushing collected samples", sig)
		return true, h.Flush()
	case <-ctx.Done():
		return false, nil
	}
}
