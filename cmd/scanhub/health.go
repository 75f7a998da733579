package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/scanhub"
)

// Run executes the health command.
func (c *HealthCmd) Run(deps *Dependencies) error {
	srcs := deps.Sources.Sources()
	if c.Source != "" {
		src, err := deps.Aggregator.SourceByName(c.Source)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scanhub.ErrorMessage(err))
			return err
		}
		srcs = []scanhub.Source{src}
	}

	results := deps.Health.CheckAll(deps.Ctx, srcs)
	if c.JSON {
		return printJSON(deps.Stdout, results)
	}

	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		r := results[id]
		fmt.Fprintf(deps.Stdout, "%s  %s  %dms  %s\n", id, r.Status, r.ResponseTime, r.Message)
	}
	return nil
}
