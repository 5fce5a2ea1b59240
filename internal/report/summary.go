// Package report summarizes a finished snapshot for the job's step summary
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/c2h5oh/datasize"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/myerrors"
)

// Stats are the mean and max of one series. A zero Count means no data was collected.
type Stats struct {
	Count int
	Mean  float64
	Max   float64
}

// HasData reports whether any sample contributed
func (s Stats) HasData() bool {
	return s.Count > 0
}

// Summarize computes Stats over values
func Summarize(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	stats := Stats{Count: len(values), Max: values[0]}
	var sum float64
	for _, v := range values {
		sum += v
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(len(values))
	return stats
}

// Summary is what the step summary shows
type Summary struct {
	DataPoints  int
	CPU         Stats
	Memory      Stats
	TotalMemory datasize.ByteSize
}

// NewSummary summarizes a snapshot
func NewSummary(snapshot types.Snapshot) Summary {
	cpu := make([]float64, len(snapshot.CPU))
	for i, s := range snapshot.CPU {
		cpu[i] = s.TotalLoad
	}
	memory := make([]float64, len(snapshot.Memory))
	var totalMb uint64
	for i, s := range snapshot.Memory {
		memory[i] = s.UsagePercent
		totalMb = s.TotalMb
	}
	return Summary{
		DataPoints:  len(snapshot.CPU),
		CPU:         Summarize(cpu),
		Memory:      Summarize(memory),
		TotalMemory: datasize.ByteSize(totalMb) * datasize.MB,
	}
}

// Markdown renders the summary
func (s Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("## Workflow Telemetry Report\n\n")
	if !s.CPU.HasData() && !s.Memory.HasData() {
		b.WriteString("No telemetry data collected.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "- **Data Points**: %d\n", s.DataPoints)
	fmt.Fprintf(&b, "- **CPU Average**: %s\n", percent(s.CPU, s.CPU.Mean))
	fmt.Fprintf(&b, "- **CPU Peak**: %s\n", percent(s.CPU, s.CPU.Max))
	fmt.Fprintf(&b, "- **Memory Average**: %s\n", percent(s.Memory, s.Memory.Mean))
	fmt.Fprintf(&b, "- **Memory Peak**: %s\n", percent(s.Memory, s.Memory.Max))
	if s.TotalMemory > 0 {
		fmt.Fprintf(&b, "- **Memory Total**: %s\n", s.TotalMemory.HumanReadable())
	}
	return b.String()
}

func percent(stats Stats, v float64) string {
	if !stats.HasData() {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v)
}

// WriteStepSummary appends the summary to the file at path
func WriteStepSummary(path string, s Summary) error {
	if path == "" {
		return myerrors.ErrNoSummaryPath
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open step summary: %w", err)
	}
	if _, err := fmt.Fprintln(file, s.Markdown()); err != nil {
		file.Close()
		return fmt.Errorf("failed to write step summary: %w", err)
	}
	return file.Close()
}
