package ffprobe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Prober reports the duration of a media file in seconds, 0 when unknown.
type Prober interface {
	Duration(ctx context.Context, path string) float64
}

// Option configures the CLI prober.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = strings.TrimSpace(binary)
		}
	}
}

// CLI wraps the ffprobe command-line tool.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI prober using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffprobe"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Duration returns the container duration in seconds, or 0 when it cannot be
// determined. It never fails: an unknown duration only degrades progress
// normalization, it does not stop a job.
func (c *CLI) Duration(ctx context.Context, path string) float64 {
	seconds, err := c.query(ctx, path)
	if err != nil {
		return 0
	}
	return seconds
}

func (c *CLI) query(ctx context.Context, path string) (float64, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, errors.New("ffprobe: empty path")
	}

	cmd := commandContext(ctx, c.binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		"--", path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe parse: %w", err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("ffprobe: negative duration %f", seconds)
	}
	return seconds, nil
}

var _ Prober = (*CLI)(nil)
