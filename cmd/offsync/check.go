package main

import (
	"fmt"

	"github.com/fwojciec/offsync"
)

// Run executes the check command. A failed lookup is reported on stderr
// and every URL is shown as unavailable.
func (c *CheckCmd) Run(deps *Dependencies) error {
	available, err := deps.Commands.CheckOfflineAvailability(deps.Ctx, c.URLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", offsync.ErrorMessage(err))
		available = make([]bool, len(c.URLs))
	}

	for i, u := range c.URLs {
		fmt.Fprintf(deps.Stdout, "%-5s%s\n", yesNo(available[i]), u)
	}
	return nil
}

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	deps.Engine.Notifier = offsync.NotifierFuncs{
		ContentReadyFn: func(content string) {
			fmt.Fprintf(deps.Stderr, "%s (%d bytes)\n", offsync.EventContentAvailable, len(content))
		},
	}

	ok, err := deps.Commands.IsOfflineAvailable(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", offsync.ErrorMessage(err))
		return err
	}

	if ok {
		fmt.Fprintf(deps.Stdout, "%s is available offline\n", c.URL)
	} else {
		fmt.Fprintf(deps.Stdout, "%s is not available offline\n", c.URL)
	}
	return nil
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
