package foerder

import (
	"context"
	"strings"
	"time"
)

// Document is a funding program record prepared for the assistant's index.
type Document struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	return nil
}

// DocumentFromRecord converts a record into a document, one row per
// document. Content lists every non-empty column as "key: value" lines in
// column order.
func DocumentFromRecord(r *Record) *Document {
	title := r.Value(ColumnTitle)
	if t := r.Value(ColumnDetailTitle); t != "" && t != NoTitle {
		title = t
	}

	var sb strings.Builder
	for _, k := range r.Keys() {
		v := r.Value(k)
		if v == "" {
			continue
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(v)
		sb.WriteString("\n")
	}

	return &Document{
		SourceURL: r.Link(),
		Title:     title,
		Content:   sb.String(),
	}
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// UpdateDocument updates an existing document.
	// Returns ENOTFOUND if document does not exist.
	UpdateDocument(ctx context.Context, id string, upd DocumentUpdate) (*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// IndexDocument creates the document, or updates the one stored under
	// the same source URL when its content changed.
	IndexDocument(ctx context.Context, doc *Document) (IndexAction, error)
}

// IndexAction reports what IndexDocument did.
type IndexAction int

const (
	IndexUnchanged IndexAction = iota
	IndexCreated
	IndexUpdated
)

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	// Query matches documents whose title or content contains every term.
	Query []string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DocumentUpdate represents fields that can be updated on a document.
type DocumentUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// DocumentWriter writes documents to an external destination.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}
