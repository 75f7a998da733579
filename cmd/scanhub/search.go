package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/aggregate"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if c.Source != "" && !strings.EqualFold(c.Source, aggregate.AllSources) {
		out, err := deps.Aggregator.SearchOne(deps.Ctx, c.Source, c.Query)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scanhub.ErrorMessage(err))
			return err
		}
		if c.JSON {
			return printJSON(deps.Stdout, out)
		}
		printOutcome(deps.Stdout, *out)
		return nil
	}

	if c.Stream {
		summary, err := deps.Aggregator.StreamAll(deps.Ctx, c.Query, func(r aggregate.SourceResults) error {
			if c.JSON {
				return printJSON(deps.Stdout, r)
			}
			printOutcome(deps.Stdout, r)
			return nil
		})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scanhub.ErrorMessage(err))
			return err
		}
		if c.JSON {
			return printJSON(deps.Stdout, summary)
		}
		fmt.Fprintf(deps.Stdout, "%d of %d sources answered, %d failed\n",
			summary.CompletedSources, summary.TotalSources, summary.FailedSources)
		return nil
	}

	outcomes, err := deps.Aggregator.SearchAll(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scanhub.ErrorMessage(err))
		return err
	}
	if c.JSON {
		return printJSON(deps.Stdout, map[string]any{"sources": outcomes})
	}
	for _, r := range outcomes {
		printOutcome(deps.Stdout, r)
	}
	return nil
}

func printOutcome(w io.Writer, r aggregate.SourceResults) {
	if r.Error != "" {
		fmt.Fprintf(w, "%s: error: %s\n", r.Source, r.Error)
		return
	}
	fmt.Fprintf(w, "%s (%d results)\n", r.Source, len(r.Results))
	for _, res := range r.Results {
		line := "  " + res.Title
		if res.LatestChapter > 0 {
			line += "  ch. " + chapterNumber(res.LatestChapter)
		}
		if res.LastUpdated != "" {
			line += "  " + res.LastUpdated
		}
		fmt.Fprintf(w, "%s  %s\n", line, res.URL)
	}
}
