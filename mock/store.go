package mock

import (
	"context"

	"github.com/Lechtr/foerder"
)

var _ foerder.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of foerder.RecordStore.
type RecordStore struct {
	ExistsFn func(ctx context.Context) (bool, error)
	LoadFn   func(ctx context.Context) ([]*foerder.Record, error)
	SaveFn   func(ctx context.Context, records []*foerder.Record) error
}

func (s *RecordStore) Exists(ctx context.Context) (bool, error) {
	return s.ExistsFn(ctx)
}

func (s *RecordStore) Load(ctx context.Context) ([]*foerder.Record, error) {
	return s.LoadFn(ctx)
}

func (s *RecordStore) Save(ctx context.Context, records []*foerder.Record) error {
	return s.SaveFn(ctx, records)
}

var _ foerder.RecordExporter = (*RecordExporter)(nil)

// RecordExporter is a mock implementation of foerder.RecordExporter.
type RecordExporter struct {
	ExportFn func(ctx context.Context, records []*foerder.Record) error
}

func (e *RecordExporter) Export(ctx context.Context, records []*foerder.Record) error {
	return e.ExportFn(ctx, records)
}
