// Package fs provides file-based outputs: program documents as markdown
// files and raw page snapshots.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Lechtr/foerder"
)

// URLToPath converts a program URL to a relative markdown file path.
// Example: https://www.foerderdatenbank.de/FDB/Content/DE/Foerderprogramm/Bund/BMWi/digital-jetzt.html
// → FDB/Content/DE/Foerderprogramm/Bund/BMWi/digital-jetzt.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", foerder.Errorf(foerder.EINVALID, "invalid document URL %q: %v", rawURL, err)
	}

	p := u.Path
	if p == "" || p == "/" {
		return "index.md", nil
	}

	p = strings.TrimPrefix(p, "/")
	if strings.HasSuffix(p, "/") {
		return p + "index.md", nil
	}

	switch path.Ext(p) {
	case ".html", ".htm":
		p = strings.TrimSuffix(p, path.Ext(p))
	}
	return p + ".md", nil
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *foerder.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.SourceURL)
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	b.WriteString("\ncrawled: ")
	b.WriteString(doc.FetchedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Writer implements foerder.DocumentWriter at compile time.
var _ foerder.DocumentWriter = (*Writer)(nil)

// Writer writes documents as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateDocument writes a document to disk as a markdown file.
func (w *Writer) CreateDocument(ctx context.Context, doc *foerder.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.SourceURL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644)
}
