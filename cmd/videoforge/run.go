package main

import (
	"context"
	"errors"
	"fmt"

	"videoforge/internal/workflow"
)

// runJob submits one request and renders its event stream. Progress draws an
// in-place percentage on a terminal; status lines always print. Raw tool
// output shows only with --verbose (it still lands in the debug log).
func runJob(ctx *commandContext, req workflow.Request) error {
	manager, cleanup, err := ctx.buildManager()
	if err != nil {
		return err
	}
	defer cleanup()

	events, err := manager.Submit(context.Background(), req)
	if err != nil {
		return err
	}

	tty := stdoutIsTerminal()
	progressPending := false
	flushProgress := func() {
		if progressPending {
			fmt.Println()
			progressPending = false
		}
	}

	var result *workflow.Result
	for ev := range events {
		switch ev.Type {
		case workflow.EventProgress:
			if tty {
				fmt.Printf("\r%5.1f%%", ev.Percent)
				progressPending = true
			}
		case workflow.EventStatus:
			flushProgress()
			fmt.Println(ev.Message)
		case workflow.EventDebug:
			if ctx.verbose() {
				flushProgress()
				fmt.Printf("[%s] %s\n", ev.Tool, ev.Message)
			}
		case workflow.EventDone:
			flushProgress()
			result = ev.Result
		}
	}

	if result == nil {
		return errors.New("job ended without a result")
	}
	if !result.OK {
		return errors.New(result.Message)
	}
	return nil
}
