package main

import (
	"fmt"

	"github.com/AnanthHariharan/directory-scraper/goquery"
)

// Run executes the plan command.
func (c *PlanCmd) Run(deps *Dependencies) error {
	doc, err := fetchDocument(deps, c.URL)
	if err != nil {
		return err
	}

	planner := goquery.NewPlanner()
	plan := planner.Detect(doc)

	if !plan.HasPagination {
		fmt.Fprintln(deps.Stdout, "no pagination detected")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "mechanism: %s\n", plan.Mechanism)
	if plan.Param != "" {
		fmt.Fprintf(deps.Stdout, "param: %s\n", plan.Param)
	}
	if plan.TotalPages > 0 {
		fmt.Fprintf(deps.Stdout, "total pages: %d\n", plan.TotalPages)
	}
	if plan.NextURL != "" {
		fmt.Fprintf(deps.Stdout, "next: %s\n", plan.NextURL)
	}

	fmt.Fprintln(deps.Stdout, "sequence:")
	for _, u := range planner.Expand(c.URL, plan, c.MaxPages) {
		fmt.Fprintf(deps.Stdout, "  %s\n", u)
	}
	return nil
}
