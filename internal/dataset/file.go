package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/AlibekovAA/stride/internal/common/logger"
	"github.com/AlibekovAA/stride/internal/observability/metrics"
)

const driverFile = "file"

// FileStore keeps the snapshot in a single JSON document. Saves go through a
// temp file in the same directory followed by a rename, so a reader or a crash
// never sees a half-written document.
type FileStore struct {
	path string
	log  *logger.Logger
}

func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) Snapshot {
	start := time.Now()
	defer func() {
		metrics.DatasetLoadDurationSeconds.WithLabelValues(driverFile).Observe(time.Since(start).Seconds())
	}()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.DatasetLoadFallbacksTotal.WithLabelValues(driverFile, fallbackMissing).Inc()
			s.log.WithFields(ctx, logger.Fields{
				"path":   s.path,
				"action": "dataset_load_missing",
			}).Debug("snapshot file not found, starting empty")
			return Empty()
		}
		s.fallback(ctx, fallbackUnreadable, err)
		return Empty()
	}

	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.fallback(ctx, fallbackCorrupt, err)
		return Empty()
	}

	return fromRecord(rec).normalized()
}

func (s *FileStore) fallback(ctx context.Context, reason string, err error) {
	metrics.DatasetLoadFallbacksTotal.WithLabelValues(driverFile, reason).Inc()
	s.log.WithFields(ctx, logger.Fields{
		"path":   s.path,
		"reason": reason,
		"action": "dataset_load_fallback",
	}).Warnf("snapshot load failed, using empty dataset: %v", err)
}

func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	start := time.Now()
	defer func() {
		metrics.DatasetSaveDurationSeconds.WithLabelValues(driverFile).Observe(time.Since(start).Seconds())
	}()

	if err := s.save(snap); err != nil {
		metrics.DatasetSaveErrorsTotal.WithLabelValues(driverFile).Inc()
		s.log.WithFields(ctx, logger.Fields{
			"path":   s.path,
			"action": "dataset_save_failed",
		}).Errorf("snapshot save failed: %v", err)
		return err
	}

	metrics.DatasetRecords.WithLabelValues("users").Set(float64(len(snap.Users)))
	metrics.DatasetRecords.WithLabelValues("tasks").Set(float64(len(snap.Tasks)))
	return nil
}

func (s *FileStore) save(snap Snapshot) error {
	data, err := json.MarshalIndent(toRecord(snap), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
