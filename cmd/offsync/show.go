package main

import (
	"fmt"

	"github.com/fwojciec/offsync"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	content, ok, err := deps.Commands.GetOfflineContentRaw(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offsync.ErrorMessage(err))
		return err
	}
	if !ok {
		err := offsync.Errorf(offsync.ENOTFOUND, "%s is not available offline. Run 'offsync sync %s' first", c.URL, c.URL)
		fmt.Fprintf(deps.Stderr, "error: %s\n", offsync.ErrorMessage(err))
		return err
	}

	if c.Markdown {
		md, err := deps.Converter.Convert(content, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", offsync.ErrorMessage(err))
			return err
		}
		content = md
	}

	fmt.Fprint(deps.Stdout, content)
	if len(content) > 0 && content[len(content)-1] != '\n' {
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
