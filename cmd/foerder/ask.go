package main

import (
	"fmt"

	"github.com/Lechtr/foerder"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	question := c.Question
	if question == "" {
		profile := &foerder.CompanyProfile{
			Location:       c.Location,
			Industry:       c.Industry,
			Employees:      c.Employees,
			FundingType:    c.FundingType,
			AdditionalInfo: c.Info,
		}
		if err := profile.Validate(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", foerder.ErrorMessage(err))
			return err
		}
		question = profile.Question()
	}

	answer, err := deps.Asker.Ask(deps.Ctx, question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", foerder.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
