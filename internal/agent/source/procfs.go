package source

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/myerrors"
)

// default procfs locations
const (
	DefaultStatPath    = "/proc/stat"
	DefaultMeminfoPath = "/proc/meminfo"
)

// cpuStatFields is the leading "cpu" token plus the eight buckets we use
const cpuStatFields = 9

// Procfs reads counters from the Linux proc filesystem
type Procfs struct {
	StatPath    string
	MeminfoPath string
}

// NewProcfs creates a Procfs reading the default paths
func NewProcfs() *Procfs {
	return &Procfs{
		StatPath:    DefaultStatPath,
		MeminfoPath: DefaultMeminfoPath,
	}
}

// ReadCPU reads the aggregate cpu line of the stat file
func (p *Procfs) ReadCPU() (types.CounterReading, error) {
	content, err := os.ReadFile(p.StatPath)
	if err != nil {
		return types.CounterReading{}, fmt.Errorf("%w: read %s: %v", myerrors.ErrSourceUnavailable, p.StatPath, err)
	}
	return ParseStat(string(content))
}

// ReadMemory reads MemTotal and MemAvailable from the meminfo file
func (p *Procfs) ReadMemory() (types.MemoryReading, error) {
	content, err := os.ReadFile(p.MeminfoPath)
	if err != nil {
		return types.MemoryReading{}, fmt.Errorf("%w: read %s: %v", myerrors.ErrSourceUnavailable, p.MeminfoPath, err)
	}
	return ParseMeminfo(string(content))
}

// ParseStat parses the first line of /proc/stat
func ParseStat(content string) (types.CounterReading, error) {
	line, _, _ := strings.Cut(content, "\n")
	fields := strings.Fields(line)
	if len(fields) < cpuStatFields || fields[0] != "cpu" {
		return types.CounterReading{}, fmt.Errorf("%w: invalid cpu line %q", myerrors.ErrSourceMalformed, line)
	}
	var values [cpuStatFields - 1]uint64
	for i := range values {
		v, err := strconv.ParseUint(fields[i+1], 10, 64)
		if err != nil {
			return types.CounterReading{}, fmt.Errorf("%w: field %d: %v", myerrors.ErrSourceMalformed, i+1, err)
		}
		values[i] = v
	}
	return types.CounterReading{
		User:    values[0],
		Nice:    values[1],
		System:  values[2],
		Idle:    values[3],
		Iowait:  values[4],
		Irq:     values[5],
		Softirq: values[6],
		Steal:   values[7],
	}, nil
}

// ParseMeminfo parses the "KEY: value kB" lines of /proc/meminfo.
// MemTotal and MemAvailable are both required.
func ParseMeminfo(content string) (types.MemoryReading, error) {
	var (
		reading              types.MemoryReading
		haveTotal, haveAvail bool
	)
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		var dst *uint64
		switch key {
		case "MemTotal":
			dst, haveTotal = &reading.TotalKb, true
		case "MemAvailable":
			dst, haveAvail = &reading.AvailableKb, true
		default:
			continue
		}
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return types.MemoryReading{}, fmt.Errorf("%w: empty %s", myerrors.ErrSourceMalformed, key)
		}
		v, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return types.MemoryReading{}, fmt.Errorf("%w: %s: %v", myerrors.ErrSourceMalformed, key, err)
		}
		*dst = v
	}
	if err := scanner.Err(); err != nil {
		return types.MemoryReading{}, fmt.Errorf("%w: %v", myerrors.ErrSourceMalformed, err)
	}
	if !haveTotal || !haveAvail {
		return types.MemoryReading{}, fmt.Errorf("%w: MemTotal and MemAvailable are required", myerrors.ErrSourceMalformed)
	}
	return reading, nil
}
