package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Lechtr/foerder"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ foerder.DocumentService = (*DocumentService)(nil)

const documentColumns = "id, source_url, title, content, content_hash, fetched_at"

// DocumentService implements foerder.DocumentService using SQLite.
type DocumentService struct {
	db  *DB
	now func() time.Time
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{
		db:  db,
		now: func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// CreateDocument creates a new document. A document with the same source
// URL must not exist yet.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *foerder.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.FetchedAt = s.now()
	doc.ContentHash = HashContent(doc.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SourceURL, doc.Title, doc.Content, doc.ContentHash, doc.FetchedAt.Format(time.RFC3339))
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return foerder.Errorf(foerder.EINVALID, "document for %s already exists", doc.SourceURL)
	}
	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*foerder.Document, error) {
	doc, err := scanDocument(s.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, foerder.Errorf(foerder.ENOTFOUND, "document not found")
	}
	return doc, err
}

// FindDocuments retrieves documents matching the filter, ordered by title.
func (s *DocumentService) FindDocuments(ctx context.Context, filter foerder.DocumentFilter) ([]*foerder.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	for _, term := range filter.Query {
		if term = strings.TrimSpace(term); term == "" {
			continue
		}
		query.WriteString(` AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`)
		p := likePattern(term)
		args = append(args, p, p)
	}

	query.WriteString(" ORDER BY title ASC, source_url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*foerder.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateDocument updates an existing document.
func (s *DocumentService) UpdateDocument(ctx context.Context, id string, upd foerder.DocumentUpdate) (*foerder.Document, error) {
	doc, err := s.FindDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		doc.Title = *upd.Title
	}
	if upd.Content != nil {
		doc.Content = *upd.Content
		doc.ContentHash = HashContent(doc.Content)
		doc.FetchedAt = s.now()
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET title = ?, content = ?, content_hash = ?, fetched_at = ?
		WHERE id = ?
	`, doc.Title, doc.Content, doc.ContentHash, doc.FetchedAt.Format(time.RFC3339), id); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return foerder.Errorf(foerder.ENOTFOUND, "document not found")
	}
	return nil
}

// IndexDocument upserts doc by source URL. On return doc carries the
// stored ID, hash and fetch time.
func (s *DocumentService) IndexDocument(ctx context.Context, doc *foerder.Document) (foerder.IndexAction, error) {
	if err := doc.Validate(); err != nil {
		return foerder.IndexUnchanged, err
	}

	existing, err := scanDocument(s.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE source_url = ?", doc.SourceURL))
	if errors.Is(err, sql.ErrNoRows) {
		if err := s.CreateDocument(ctx, doc); err != nil {
			return foerder.IndexUnchanged, err
		}
		return foerder.IndexCreated, nil
	}
	if err != nil {
		return foerder.IndexUnchanged, err
	}

	if existing.ContentHash == HashContent(doc.Content) && existing.Title == doc.Title {
		*doc = *existing
		return foerder.IndexUnchanged, nil
	}

	updated, err := s.UpdateDocument(ctx, existing.ID, foerder.DocumentUpdate{
		Title:   &doc.Title,
		Content: &doc.Content,
	})
	if err != nil {
		return foerder.IndexUnchanged, err
	}
	*doc = *updated
	return foerder.IndexUpdated, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*foerder.Document, error) {
	var doc foerder.Document
	var fetchedAt string

	if err := row.Scan(&doc.ID, &doc.SourceURL, &doc.Title, &doc.Content, &doc.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
