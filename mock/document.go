package mock

import (
	"context"

	"github.com/Lechtr/foerder"
)

var _ foerder.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of foerder.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *foerder.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*foerder.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter foerder.DocumentFilter) ([]*foerder.Document, error)
	UpdateDocumentFn   func(ctx context.Context, id string, upd foerder.DocumentUpdate) (*foerder.Document, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
	IndexDocumentFn    func(ctx context.Context, doc *foerder.Document) (foerder.IndexAction, error)
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *foerder.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*foerder.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter foerder.DocumentFilter) ([]*foerder.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) UpdateDocument(ctx context.Context, id string, upd foerder.DocumentUpdate) (*foerder.Document, error) {
	return s.UpdateDocumentFn(ctx, id, upd)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

func (s *DocumentService) IndexDocument(ctx context.Context, doc *foerder.Document) (foerder.IndexAction, error) {
	return s.IndexDocumentFn(ctx, doc)
}

var _ foerder.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of foerder.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *foerder.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *foerder.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}
