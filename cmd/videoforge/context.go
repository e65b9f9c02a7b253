package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"videoforge/internal/config"
	"videoforge/internal/encoding"
	"videoforge/internal/history"
	"videoforge/internal/logging"
	"videoforge/internal/media/ffprobe"
	"videoforge/internal/services/ffmpeg"
	"videoforge/internal/services/ytdlp"
	"videoforge/internal/workflow"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{configFlag: configFlag, verboseFlag: verboseFlag}
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		format := cfg.Logging.Format
		if format == "console" && !stderrIsTerminal() {
			format = "json"
		}
		level := cfg.Logging.Level
		if c.verbose() {
			level = "debug"
		}
		outputs := []string{"stderr"}
		if cfg.Paths.LogDir != "" {
			outputs = append(outputs, filepath.Join(cfg.Paths.LogDir, "videoforge.log"))
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:       level,
			Format:      format,
			OutputPaths: outputs,
		})
	})
	return c.logger, c.loggerErr
}

// buildManager wires the full pipeline from config. The returned cleanup
// closes the optional history store.
func (c *commandContext) buildManager() (*workflow.Manager, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	prober := ffprobe.NewCLI(ffprobe.WithBinary(cfg.Tools.ProbeBinary))
	runner, err := ffmpeg.NewRunner(cfg.Tools.EncodeBinary)
	if err != nil {
		return nil, nil, err
	}
	encoder, err := encoding.New(prober, runner)
	if err != nil {
		return nil, nil, err
	}
	fetcher, err := ytdlp.NewClient(cfg.Tools.FetchBinary,
		ytdlp.WithCookiesFile(cfg.Tools.CookiesFile),
		ytdlp.WithMaxHeight(cfg.Download.MaxHeight))
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	opts := []workflow.ManagerOption{workflow.WithLockPath(cfg.LockPath())}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = store.Close() }
		opts = append(opts, workflow.WithRecorder(store))
	}

	manager, err := workflow.NewManager(cfg.Paths.WorkDir, fetcher, encoder, logger, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return manager, cleanup, nil
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
