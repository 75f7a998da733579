package main

import (
	"fmt"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	infos := deps.Sources.SourceInfos()
	if c.JSON {
		return printJSON(deps.Stdout, infos)
	}
	for _, info := range infos {
		line := fmt.Sprintf("%s  %s  %s  %s", info.ID, info.Name, info.Type, info.BaseURL)
		if info.ClientOnly {
			line += "  (client-only)"
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	return nil
}
