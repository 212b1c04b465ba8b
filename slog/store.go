package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/Lechtr/foerder"
)

// Ensure LoggingRecordStore implements foerder.RecordStore.
var _ foerder.RecordStore = (*LoggingRecordStore)(nil)

// LoggingRecordStore wraps a RecordStore with logging of loads and saves.
type LoggingRecordStore struct {
	next   foerder.RecordStore
	path   string
	logger *slog.Logger
}

// NewLoggingRecordStore creates a new LoggingRecordStore. path identifies
// the store in log lines.
func NewLoggingRecordStore(next foerder.RecordStore, path string, logger *slog.Logger) *LoggingRecordStore {
	return &LoggingRecordStore{next: next, path: path, logger: logger}
}

// Exists delegates to the wrapped store.
func (s *LoggingRecordStore) Exists(ctx context.Context) (ok bool, err error) {
	defer func() {
		s.logger.Debug("store exists", "path", s.path, "exists", ok, "err", err)
	}()
	return s.next.Exists(ctx)
}

// Load delegates to the wrapped store and logs the record count.
func (s *LoggingRecordStore) Load(ctx context.Context) (records []*foerder.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Info("store load",
			"path", s.path,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Save delegates to the wrapped store and logs the record count.
func (s *LoggingRecordStore) Save(ctx context.Context, records []*foerder.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("store save",
			"path", s.path,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, records)
}
