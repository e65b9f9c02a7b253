package main

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"videoforge/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that the configured external tools are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			fmt.Fprintln(cmd.OutOrStdout(), renderDepsTable(statuses))

			for _, status := range statuses {
				if !status.Available && !status.Optional {
					return errors.New("required external tools are missing")
				}
			}
			return nil
		},
	}
}

func renderDepsTable(statuses []deps.Status) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Tool", "Command", "Status", "Detail"})
	for _, status := range statuses {
		state := "ok"
		if !status.Available {
			state = "missing"
			if status.Optional {
				state = "missing (optional)"
			}
		}
		detail := status.Detail
		if detail == "" {
			detail = status.Description
		}
		tw.AppendRow(table.Row{status.Name, status.Command, state, detail})
	}
	return tw.Render()
}
