package encoding

import (
	"context"
	"errors"
	"math"
	"os"

	"videoforge/internal/services"
	"videoforge/internal/services/ffmpeg"
)

// Callbacks carries the notification hooks for one encode. Progress values
// are stage-local (0-100); the caller owns any remapping.
type Callbacks struct {
	Progress func(percent float64)
	Status   func(message string)
	Debug    func(line string)
}

// Runner executes one encode-tool invocation. *ffmpeg.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, args []string, expectedDuration float64, cb ffmpeg.Callbacks) error
}

// Prober queries a media file's duration, returning 0 when unknown.
type Prober interface {
	Duration(ctx context.Context, path string) float64
}

// Encoder drives the encode tool for both output targets.
type Encoder struct {
	prober Prober
	runner Runner
}

// New constructs an encoder. prober may be nil, which disables duration-based
// progress normalization.
func New(prober Prober, runner Runner) (*Encoder, error) {
	if runner == nil {
		return nil, errors.New("encode runner required")
	}
	return &Encoder{prober: prober, runner: runner}, nil
}

// ValidateTrimPad rejects requests that trim and pad at the same time, and
// negative offsets. Orchestration calls this before any process spawns.
func ValidateTrimPad(trimStart, padStart float64) error {
	if trimStart < 0 || padStart < 0 {
		return services.Wrap(services.ErrValidation, "", "", "trim and pad must not be negative", nil)
	}
	if trimStart > 0 && padStart > 0 {
		return services.Wrap(services.ErrValidation, "", "", "cannot use both trim and pad at the same time", nil)
	}
	return nil
}

// EncodeWebM re-encodes input to VP8 WebM at output. keepAudio false yields a
// silent file.
func (e *Encoder) EncodeWebM(ctx context.Context, input, output string, trimStart, padStart float64, keepAudio bool, cb Callbacks) error {
	if err := ValidateTrimPad(trimStart, padStart); err != nil {
		return err
	}
	expected := e.expectedDuration(ctx, input, trimStart, padStart)
	return e.run(ctx, webmArgs(input, output, trimStart, padStart, keepAudio), expected, cb)
}

// EncodeMP4 re-encodes input to H.264 MP4 at output. With no trim and no pad
// the input is renamed into place without probing or spawning anything.
func (e *Encoder) EncodeMP4(ctx context.Context, input, output string, trimStart, padStart float64, cb Callbacks) error {
	if err := ValidateTrimPad(trimStart, padStart); err != nil {
		return err
	}
	if trimStart == 0 && padStart == 0 {
		if err := os.Rename(input, output); err != nil {
			return services.Wrap(services.ErrFilesystem, "encode", "move output into place", "", err)
		}
		if cb.Progress != nil {
			cb.Progress(100)
		}
		if cb.Status != nil {
			cb.Status("Saved to: " + output)
		}
		return nil
	}
	expected := e.expectedDuration(ctx, input, trimStart, padStart)
	return e.run(ctx, mp4Args(input, output, trimStart, padStart), expected, cb)
}

func (e *Encoder) run(ctx context.Context, args []string, expected float64, cb Callbacks) error {
	err := e.runner.Run(ctx, args, expected, ffmpeg.Callbacks{
		Progress: cb.Progress,
		Status:   cb.Status,
		Debug:    cb.Debug,
	})
	if err == nil {
		return nil
	}
	var exitErr *ffmpeg.ExitError
	if errors.As(err, &exitErr) {
		return services.Wrap(services.ErrEncode, "encode", "", "", err)
	}
	return err
}

// expectedDuration estimates the output length from the probed input length.
// 0 means unknown; the runner then relies on the forced terminal 100.
func (e *Encoder) expectedDuration(ctx context.Context, input string, trimStart, padStart float64) float64 {
	if e.prober == nil {
		return 0
	}
	probed := e.prober.Duration(ctx, input)
	if probed <= 0 {
		return 0
	}
	return math.Max(0.1, probed-trimStart) + padStart
}
