package config

import (
	"errors"
	"fmt"
	"os"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.FetchBinary == "" {
		return errors.New("tools.fetch_binary must be set")
	}
	if c.Tools.EncodeBinary == "" {
		return errors.New("tools.encode_binary must be set")
	}
	if c.Tools.ProbeBinary == "" {
		return errors.New("tools.probe_binary must be set")
	}
	if c.Tools.CookiesFile != "" {
		info, err := os.Stat(c.Tools.CookiesFile)
		if err != nil {
			return fmt.Errorf("tools.cookies_file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("tools.cookies_file %q is a directory", c.Tools.CookiesFile)
		}
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.MaxHeight <= 0 {
		return errors.New("download.max_height must be positive")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}
