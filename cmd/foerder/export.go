package main

import (
	"fmt"
	"time"

	"github.com/Lechtr/foerder"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	if deps.Exporter == nil && deps.Writer == nil {
		err := foerder.Errorf(foerder.EINVALID, "nothing to export; pass --xlsx or --markdown")
		fmt.Fprintf(deps.Stderr, "error: %s\n", foerder.ErrorMessage(err))
		return err
	}

	records, err := deps.Store.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foerder.ErrorMessage(err))
		return err
	}

	if deps.Exporter != nil {
		if err := deps.Exporter.Export(deps.Ctx, records); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", foerder.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Exported %d programs to %s\n", len(records), c.XLSX)
	}

	if deps.Writer != nil {
		var written int
		now := time.Now()
		for _, r := range records {
			if link := r.Link(); link == "" || link == foerder.NoLink {
				continue
			}
			doc := foerder.DocumentFromRecord(r)
			doc.FetchedAt = now
			if err := deps.Writer.CreateDocument(deps.Ctx, doc); err != nil {
				fmt.Fprintf(deps.Stderr, "error: writing %s: %s\n", doc.SourceURL, foerder.ErrorMessage(err))
				return err
			}
			written++
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d program files to %s\n", written, c.Markdown)
	}
	return nil
}
