package main

import (
	"fmt"

	"github.com/Lechtr/foerder"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	records, err := deps.Store.Load(deps.Ctx)
	if err != nil {
		if foerder.ErrorCode(err) == foerder.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s. Run 'foerder crawl' first.\n", foerder.ErrorMessage(err))
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", foerder.ErrorMessage(err))
		}
		return err
	}

	var created, updated, unchanged, skipped int
	for _, r := range records {
		if link := r.Link(); link == "" || link == foerder.NoLink {
			skipped++
			continue
		}

		action, err := deps.Documents.IndexDocument(deps.Ctx, foerder.DocumentFromRecord(r))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: indexing %s: %s\n", r.Link(), foerder.ErrorMessage(err))
			return err
		}
		switch action {
		case foerder.IndexCreated:
			created++
		case foerder.IndexUpdated:
			updated++
		default:
			unchanged++
		}
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d programs: %d new, %d updated, %d unchanged", len(records)-skipped, created, updated, unchanged)
	if skipped > 0 {
		fmt.Fprintf(deps.Stdout, ", %d without link skipped", skipped)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
