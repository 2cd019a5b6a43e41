package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Results.FindRuns(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'harvest crawl --save' to store one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d pages  %d failed  %s\n",
			r.ID, r.Strategy, r.SeedURL, r.Pages, r.Failed,
			r.StartedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
