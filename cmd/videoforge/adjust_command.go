package main

import (
	"strings"

	"github.com/spf13/cobra"

	"videoforge/internal/workflow"
)

func newAdjustCommand(ctx *commandContext) *cobra.Command {
	var (
		output    string
		trim      float64
		pad       float64
		keepAudio bool
	)

	cmd := &cobra.Command{
		Use:   "adjust INPUT",
		Short: "Trim or pad an existing video, re-encoding to WebM",
		Long: "Adjust re-encodes a local file with the given trim or lead-in pad. " +
			"Without --output the file is replaced in place through a temp sibling.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			dest := strings.TrimSpace(output)
			if dest == "" {
				dest = input
			}
			return runJob(ctx, workflow.Request{
				Mode:       workflow.ModeAdjust,
				Source:     input,
				OutputPath: dest,
				TrimStart:  trim,
				PadStart:   pad,
				KeepAudio:  keepAudio,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: replace the input)")
	cmd.Flags().Float64Var(&trim, "trim", 0, "Seconds to cut from the start")
	cmd.Flags().Float64Var(&pad, "pad", 0, "Seconds of black/silent lead-in to add")
	cmd.Flags().BoolVar(&keepAudio, "keep-audio", false, "Keep the audio track")

	return cmd
}
