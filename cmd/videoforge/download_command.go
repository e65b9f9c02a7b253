package main

import (
	"github.com/spf13/cobra"

	"videoforge/internal/workflow"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var (
		output    string
		format    string
		trim      float64
		pad       float64
		keepAudio bool
	)

	cmd := &cobra.Command{
		Use:   "download URL",
		Short: "Fetch a video and transcode it to WebM or MP4",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := workflow.ParseTarget(format)
			if err != nil {
				return err
			}
			return runJob(ctx, workflow.Request{
				Mode:       workflow.ModeDownload,
				Source:     args[0],
				OutputPath: output,
				TrimStart:  trim,
				PadStart:   pad,
				KeepAudio:  keepAudio,
				Target:     target,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	cmd.Flags().StringVarP(&format, "format", "f", "webm", "Output format: webm or mp4")
	cmd.Flags().Float64Var(&trim, "trim", 0, "Seconds to cut from the start")
	cmd.Flags().Float64Var(&pad, "pad", 0, "Seconds of black/silent lead-in to add")
	cmd.Flags().BoolVar(&keepAudio, "keep-audio", false, "Keep the audio track in WebM output")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
