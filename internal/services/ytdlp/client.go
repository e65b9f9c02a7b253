package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"videoforge/internal/services"
)

// Callbacks carries the per-line notification hooks for one fetch. Any field
// may be nil. Progress percentages are stage-local (0-100); the caller owns
// any remapping into whole-job progress.
type Callbacks struct {
	Progress func(percent float64)
	Status   func(message string)
	Debug    func(line string)
}

// ExitError reports a non-zero exit from the fetch tool.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("yt-dlp failed with exit code %d", e.Code)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithCookiesFile passes a credentials file to every fetch. Empty disables
// the flag.
func WithCookiesFile(path string) Option {
	return func(c *Client) {
		c.cookiesFile = strings.TrimSpace(path)
	}
}

// WithMaxHeight caps the selected video height. Values below 1 keep the
// default.
func WithMaxHeight(height int) Option {
	return func(c *Client) {
		if height > 0 {
			c.maxHeight = height
		}
	}
}

// Client drives one fetch-tool process at a time.
type Client struct {
	binary      string
	cookiesFile string
	maxHeight   int
	exec        services.Executor
}

// NewClient constructs a client for the given binary name.
func NewClient(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{binary: binary, maxHeight: 1080, exec: services.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FormatSelector returns the declarative quality expression for one fetch.
// Container and codec are whatever the tool picks; re-encoding happens later.
func (c *Client) FormatSelector(includeAudio bool) string {
	if includeAudio {
		return fmt.Sprintf("bv*[height<=%d]+ba/b[height<=%d]", c.maxHeight, c.maxHeight)
	}
	return fmt.Sprintf("bv*[height<=%d]/bv*", c.maxHeight)
}

// Fetch downloads source into the destination template, streaming raw lines
// to cb.Debug and coalesced percentages to cb.Progress. Lines carrying an
// error indicator surface through cb.Status without aborting the stream; only
// the exit code decides success. A non-zero exit yields *ExitError.
func (c *Client) Fetch(ctx context.Context, source, destination string, includeAudio bool, cb Callbacks) error {
	source = strings.TrimSpace(source)
	if source == "" {
		return errors.New("fetch source required")
	}
	if strings.TrimSpace(destination) == "" {
		return errors.New("fetch destination required")
	}

	args := []string{
		"--newline",
		"--no-warnings",
		"--extractor-args", "youtube:player_client=default",
		"-f", c.FormatSelector(includeAudio),
		"-o", destination,
	}
	if c.cookiesFile != "" {
		args = append(args, "--cookies", c.cookiesFile)
	}
	args = append(args, source)

	if cb.Status != nil {
		cb.Status("Downloading...")
	}

	lastPercent := -1.0

	onLine := func(raw string) {
		if cb.Debug != nil && raw != "" {
			cb.Debug(raw)
		}
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "[download]") {
			percent, ok := parsePercent(line)
			if ok && int(percent) != int(lastPercent) {
				lastPercent = percent
				if cb.Progress != nil {
					cb.Progress(percent)
				}
			}
			return
		}
		if strings.Contains(line, "ERROR:") || strings.Contains(line, "Error:") {
			if cb.Status != nil {
				cb.Status(line)
			}
		}
	}

	code, err := c.exec.Run(ctx, c.binary, args, onLine)
	if err != nil {
		return fmt.Errorf("run yt-dlp: %w", err)
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// parsePercent extracts the first whitespace token ending in "%" from a
// download-progress line.
func parsePercent(line string) (float64, bool) {
	for _, token := range strings.Fields(line) {
		if !strings.HasSuffix(token, "%") {
			continue
		}
		percent, err := strconv.ParseFloat(strings.TrimSuffix(token, "%"), 64)
		if err != nil {
			return 0, false
		}
		return percent, true
	}
	return 0, false
}
