package config

import (
	"os"
	"strconv"
	"time"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/loggers"
)

// default agent preferences
const (
	DefaultInterval   = 5 * time.Second
	DefaultIterations = 60
	DefaultStoreFile  = "/tmp/telemetry_data.json"
	DefaultSource     = "procfs"
	DefaultLogLevel   = "info"
)

// environment variables read by FromEnv
const (
	EnvInterval    = "TELEMETRY_INTERVAL"
	EnvIterations  = "TELEMETRY_ITERATIONS"
	EnvStoreFile   = "TELEMETRY_DATA_FILE"
	EnvSource      = "TELEMETRY_SOURCE"
	EnvKey         = "TELEMETRY_KEY"
	EnvSummaryFile = "GITHUB_STEP_SUMMARY"
	EnvLogLevel    = "LOG_LEVEL"
)

// Config is the agent configuration
type Config struct {
	Interval    time.Duration
	Iterations  int
	StoreFile   string
	Source      string
	HashKey     string
	SummaryFile string
	LogLevel    string
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Interval:   DefaultInterval,
		Iterations: DefaultIterations,
		StoreFile:  DefaultStoreFile,
		Source:     DefaultSource,
		LogLevel:   DefaultLogLevel,
	}
}

// FromEnv builds the configuration from the environment.
// Absent or invalid values keep their defaults.
func FromEnv() Config {
	cfg := Default()
	if strInterval, exists := os.LookupEnv(EnvInterval); exists {
		if seconds, err := strconv.Atoi(strInterval); err != nil || seconds <= 0 {
			loggers.DebugLogger.Printf("couldn't parse %s=%q, using %s", EnvInterval, strInterval, cfg.Interval)
		} else {
			cfg.Interval = time.Duration(seconds) * time.Second
		}
	}
	if strIterations, exists := os.LookupEnv(EnvIterations); exists {
		if iterations, err := strconv.Atoi(strIterations); err != nil || iterations <= 0 {
			loggers.DebugLogger.Printf("couldn't parse %s=%q, using %d", EnvIterations, strIterations, cfg.Iterations)
		} else {
			cfg.Iterations = iterations
		}
	}
	if storeFile, exists := os.LookupEnv(EnvStoreFile); exists && storeFile != "" {
		cfg.StoreFile = storeFile
	}
	if src, exists := os.LookupEnv(EnvSource); exists && src != "" {
		cfg.Source = src
	}
	if logLevel, exists := os.LookupEnv(EnvLogLevel); exists && logLevel != "" {
		cfg.LogLevel = logLevel
	}
	cfg.HashKey = os.Getenv(EnvKey)
	cfg.SummaryFile = os.Getenv(EnvSummaryFile)
	return cfg
}
