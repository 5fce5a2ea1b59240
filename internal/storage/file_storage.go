package storage

import (
	"crypto/hmac"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/types"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/hash"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/loggers"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/myerrors"
)

// DefaultStoreFile is where the reporting phase looks for the snapshot
const DefaultStoreFile = "/tmp/telemetry_data.json"

// FileStorage saves snapshots to a single JSON file and loads them back
type FileStorage struct {
	StoreFile string
	// Key signs the snapshot when set
	Key string
}

// NewFileStorage creates new FileStorage
func NewFileStorage(storeFile, key string) *FileStorage {
	return &FileStorage{
		StoreFile: storeFile,
		Key:       key,
	}
}

// Save writes the snapshot, replacing the previous file atomically
func (fs *FileStorage) Save(snapshot types.Snapshot) error {
	if fs.Key != "" {
		sum, err := snapshotHash(snapshot, fs.Key)
		if err != nil {
			return err
		}
		snapshot.Hash = sum
	} else {
		snapshot.Hash = ""
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error while marshalling snapshot: %w", err)
	}
	dir := filepath.Dir(fs.StoreFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(fs.StoreFile)+".*")
	if err != nil {
		return fmt.Errorf("error while creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error while writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error while closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.StoreFile); err != nil {
		return fmt.Errorf("error while replacing %s: %w", fs.StoreFile, err)
	}
	loggers.InfoLogger.Printf("stored %d cpu and %d memory samples to %s", len(snapshot.CPU), len(snapshot.Memory), fs.StoreFile)
	return nil
}

// Load reads a snapshot and verifies its hash when a key is set
func (fs *FileStorage) Load() (types.Snapshot, error) {
	var snapshot types.Snapshot
	data, err := os.ReadFile(fs.StoreFile)
	if err != nil {
		return snapshot, fmt.Errorf("error while opening file: %w", err)
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return snapshot, fmt.Errorf("error while unmarshalling json: %w", err)
	}
	if fs.Key != "" {
		sum, err := snapshotHash(snapshot, fs.Key)
		if err != nil {
			return snapshot, err
		}
		if !hmac.Equal([]byte(snapshot.Hash), []byte(sum)) {
			return snapshot, myerrors.ErrHashMismatch
		}
	}
	loggers.InfoLogger.Printf("Restored snapshot from '%s'", fs.StoreFile)
	return snapshot, nil
}

func snapshotHash(snapshot types.Snapshot, key string) (string, error) {
	snapshot.Hash = ""
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("error while marshalling snapshot: %w", err)
	}
	return hash.Hash(string(data), key), nil
}
