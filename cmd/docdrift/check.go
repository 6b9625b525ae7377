package main

import (
	"fmt"

	"github.com/murogrande/docdrift"
	"github.com/murogrande/docdrift/check"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	report, err := deps.Detector.Check(deps.Ctx, check.Options{
		ExternalLinks: c.External,
		Quality:       c.Quality,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if err := writeJSON(deps.Stdout, report); err != nil {
			return err
		}
	} else {
		writeText(deps.Stdout, report)
	}

	if report.HasIssues() {
		return fmt.Errorf("%d issue(s) found", len(report.Findings))
	}
	return nil
}
