package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/scanhub"
)

// Run executes the frontpage command. Without a source it lists the
// frontpages and their sections.
func (c *FrontpageCmd) Run(deps *Dependencies) error {
	if c.Source == "" {
		infos := deps.Frontpages.Infos()
		if c.JSON {
			return printJSON(deps.Stdout, infos)
		}
		for _, info := range infos {
			ids := make([]string, 0, len(info.AvailableSections))
			for _, s := range info.AvailableSections {
				ids = append(ids, s.ID)
			}
			fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", info.SourceID, info.SourceName, strings.Join(ids, ", "))
		}
		return nil
	}

	fp := deps.Frontpages.Frontpage(c.Source)
	if fp == nil {
		err := scanhub.Errorf(scanhub.EUNSUPPORTED, "Source %q does not have frontpage support. Available sources: %s",
			c.Source, strings.Join(deps.Frontpages.SourceIDs(), ", "))
		fmt.Fprintf(deps.Stderr, "error: %s\n", scanhub.ErrorMessage(err))
		return err
	}
	if c.Section == "" {
		err := scanhub.Errorf(scanhub.EINVALID, "Section is required")
		fmt.Fprintf(deps.Stderr, "error: %s\n", scanhub.ErrorMessage(err))
		return err
	}

	section, err := fp.FetchSection(deps.Ctx, c.Section, scanhub.FetchOptions{
		Page:  c.Page,
		Limit: c.Limit,
		Days:  c.Days,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scanhub.ErrorMessage(err))
		return err
	}
	if c.JSON {
		return printJSON(deps.Stdout, section)
	}

	fmt.Fprintf(deps.Stdout, "%s (%d items)\n", section.Title, len(section.Items))
	for _, item := range section.Items {
		line := "  " + item.Title
		if item.LatestChapter > 0 {
			line += "  ch. " + chapterNumber(item.LatestChapter)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", line, item.URL)
	}
	return nil
}
