package main

import (
	"fmt"

	"github.com/fwojciec/scanhub"
)

// Run executes the chapters command.
func (c *ChaptersCmd) Run(deps *Dependencies) error {
	src, chapters, err := deps.Aggregator.Chapters(deps.Ctx, c.URL, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scanhub.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return printJSON(deps.Stdout, map[string]any{
			"chapters":      chapters,
			"source":        src.Name(),
			"totalChapters": len(chapters),
		})
	}

	for _, ch := range chapters {
		line := chapterNumber(ch.Number)
		if ch.Title != "" {
			line += "  " + ch.Title
		}
		if ch.Group != nil {
			line += "  [" + ch.Group.Name + "]"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", line, ch.URL)
	}
	fmt.Fprintf(deps.Stdout, "%d chapters from %s\n", len(chapters), src.Name())
	return nil
}

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	src, info, err := deps.Aggregator.MangaInfo(deps.Ctx, c.URL, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scanhub.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Title:  %s\nID:     %s\nSource: %s\n", info.Title, info.ID, src.Name())
	return nil
}
