package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"videoforge/internal/services"
)

// Callbacks carries the per-line notification hooks for one run. Any field
// may be nil.
type Callbacks struct {
	Progress func(percent float64)
	Status   func(message string)
	Debug    func(line string)
}

// ExitError reports a non-zero exit from the encode tool together with the
// last line of output that was not progress chatter.
type ExitError struct {
	Code       int
	Diagnostic string
}

func (e *ExitError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("ffmpeg failed (code %d): %s", e.Code, e.Diagnostic)
	}
	return fmt.Sprintf("ffmpeg failed (code %d)", e.Code)
}

// Option configures the runner.
type Option func(*Runner)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// Runner drives one encode-tool process at a time.
type Runner struct {
	binary string
	exec   services.Executor
}

// NewRunner constructs a runner for the given binary name.
func NewRunner(binary string, opts ...Option) (*Runner, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	runner := &Runner{binary: binary, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(runner)
	}
	return runner, nil
}

// Run executes the encode tool with machine-progress flags injected into
// args, streaming every output line to cb.Debug and coalesced percentages to
// cb.Progress. expectedDuration of 0 means unknown; progress then stays at 0
// until the forced terminal 100 after exit. A non-zero exit yields *ExitError
// carrying the exit code and the last diagnostic line.
func (r *Runner) Run(ctx context.Context, args []string, expectedDuration float64, cb Callbacks) error {
	args = injectProgressArgs(args)

	if cb.Status != nil {
		cb.Status("Encoding...")
	}

	lastPercent := -1.0
	lastDiagnostic := ""

	onLine := func(raw string) {
		if cb.Debug != nil && raw != "" {
			cb.Debug(raw)
		}
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "out_time_ms="):
			elapsed, err := strconv.ParseInt(line[len("out_time_ms="):], 10, 64)
			if err != nil {
				return
			}
			seconds := float64(elapsed) / 1e6
			percent := 0.0
			if expectedDuration > 0 {
				percent = min(100, seconds/expectedDuration*100)
			}
			if int(percent) != int(lastPercent) {
				lastPercent = percent
				if cb.Progress != nil {
					cb.Progress(percent)
				}
			}
		case strings.HasPrefix(line, "progress="):
			// Internal state marker, not a diagnostic.
		case line != "":
			lastDiagnostic = line
		}
	}

	code, err := r.exec.Run(ctx, r.binary, args, onLine)

	// The duration estimate can undershoot; the stage bar still has to land
	// on 100 once the process is gone.
	if cb.Progress != nil {
		cb.Progress(100)
	}

	if err != nil {
		return fmt.Errorf("run ffmpeg: %w", err)
	}
	if code != 0 {
		return &ExitError{Code: code, Diagnostic: lastDiagnostic}
	}
	return nil
}

// injectProgressArgs splices the machine-progress flags in just before the
// final two tokens so they stay ahead of the trailing "-y <output>" pair.
func injectProgressArgs(args []string) []string {
	insert := len(args) - 2
	if insert < 0 {
		insert = 0
	}
	out := make([]string, 0, len(args)+6)
	out = append(out, args[:insert]...)
	out = append(out, "-progress", "pipe:1", "-nostats", "-hide_banner", "-loglevel", "error")
	out = append(out, args[insert:]...)
	return out
}
