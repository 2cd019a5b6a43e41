package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Results.FindRunByID(deps.Ctx, c.RunID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	results, err := deps.Results.FindResults(deps.Ctx, run.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stderr, "Run %s: %s (%s), %d pages, %d failed\n",
		run.ID, run.SeedURL, run.Strategy, run.Pages, run.Failed)

	return printResults(deps, results)
}
