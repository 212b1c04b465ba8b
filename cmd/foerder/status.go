package main

import (
	"fmt"

	"github.com/Lechtr/foerder"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	exists, err := deps.Store.Exists(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foerder.ErrorMessage(err))
		return err
	}
	if !exists {
		fmt.Fprintf(deps.Stdout, "No crawl found at %s. The next crawl starts at page 1.\n", deps.StorePath)
		return nil
	}

	records, err := deps.Store.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foerder.ErrorMessage(err))
		return err
	}

	var failed int
	for _, r := range records {
		if r.Failed() {
			failed++
		}
	}

	fmt.Fprintf(deps.Stdout, "File:      %s\n", deps.StorePath)
	fmt.Fprintf(deps.Stdout, "Programs:  %d\n", len(records))
	fmt.Fprintf(deps.Stdout, "Failed:    %d\n", failed)
	fmt.Fprintf(deps.Stdout, "Next page: %d\n", foerder.StartPage(len(records), c.PageSize))
	return nil
}
