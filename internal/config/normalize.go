package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeDownload()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// Tool settings left blank in the file can be supplied through the
// environment (typically a .env file) before falling back to defaults.
func (c *Config) normalizeTools() error {
	c.Tools.FetchBinary = fromEnvOrDefault(c.Tools.FetchBinary, "VIDEOFORGE_FETCH_BINARY", defaultFetchBinary)
	c.Tools.EncodeBinary = fromEnvOrDefault(c.Tools.EncodeBinary, "VIDEOFORGE_ENCODE_BINARY", defaultEncodeBinary)
	c.Tools.ProbeBinary = fromEnvOrDefault(c.Tools.ProbeBinary, "VIDEOFORGE_PROBE_BINARY", defaultProbeBinary)
	c.Tools.CookiesFile = fromEnvOrDefault(c.Tools.CookiesFile, "VIDEOFORGE_COOKIES_FILE", "")
	if c.Tools.CookiesFile != "" {
		expanded, err := expandPath(c.Tools.CookiesFile)
		if err != nil {
			return fmt.Errorf("tools.cookies_file: %w", err)
		}
		c.Tools.CookiesFile = expanded
	}
	return nil
}

func fromEnvOrDefault(value, envKey, fallback string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	if env, ok := os.LookupEnv(envKey); ok {
		if env = strings.TrimSpace(env); env != "" {
			return env
		}
	}
	return fallback
}

func (c *Config) normalizeDownload() {
	if c.Download.MaxHeight <= 0 {
		c.Download.MaxHeight = defaultMaxHeight
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
