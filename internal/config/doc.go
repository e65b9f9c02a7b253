// Package config loads, normalizes, and validates videoforge configuration.
//
// Configuration lives in a TOML file (default ~/.config/videoforge/config.toml)
// with optional overrides from the environment and a project-local .env file.
// All path fields are expanded and absolute after Load returns.
package config
