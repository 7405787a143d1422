// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package config loads the pkr configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the pkr configuration.
type Config struct {
	Title             string
	NotesDir          string
	Addr              string
	DBPath            string // empty means an in-memory index
	OwnerPasswordHash string // bcrypt; empty disables login
	LogLevel          string
	StripCR           bool
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
}

// file is the on-disk layout. Durations are strings like "15s".
type file struct {
	Title             string `yaml:"title,omitempty"`
	NotesDir          string `yaml:"notes_dir,omitempty"`
	Addr              string `yaml:"addr,omitempty"`
	DBPath            string `yaml:"db_path,omitempty"`
	OwnerPasswordHash string `yaml:"owner_password_hash,omitempty"`
	LogLevel          string `yaml:"log_level,omitempty"`
	StripCR           *bool  `yaml:"strip_cr,omitempty"`
	ReadTimeout       string `yaml:"read_timeout,omitempty"`
	WriteTimeout      string `yaml:"write_timeout,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Title:        "pkr",
		NotesDir:     "notes",
		Addr:         ":8787",
		LogLevel:     "info",
		StripCR:      true,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

// ConfigPath returns the path to the config file.
// Can be overridden for testing.
var ConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, "pkr", "config.yaml")
}

// Load reads the configuration at path, or at ConfigPath() when path is empty.
// A missing file yields the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw file
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if raw.Title != "" {
		cfg.Title = raw.Title
	}
	if raw.NotesDir != "" {
		cfg.NotesDir = raw.NotesDir
	}
	if raw.Addr != "" {
		cfg.Addr = raw.Addr
	}
	cfg.DBPath = raw.DBPath
	cfg.OwnerPasswordHash = raw.OwnerPasswordHash
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.StripCR != nil {
		cfg.StripCR = *raw.StripCR
	}
	if raw.ReadTimeout != "" {
		if cfg.ReadTimeout, err = time.ParseDuration(raw.ReadTimeout); err != nil {
			return nil, fmt.Errorf("%w: read_timeout %q: %v", ErrInvalid, raw.ReadTimeout, err)
		}
	}
	if raw.WriteTimeout != "" {
		if cfg.WriteTimeout, err = time.ParseDuration(raw.WriteTimeout); err != nil {
			return nil, fmt.Errorf("%w: write_timeout %q: %v", ErrInvalid, raw.WriteTimeout, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	stripCR := c.StripCR
	raw := file{
		Title:             c.Title,
		NotesDir:          c.NotesDir,
		Addr:              c.Addr,
		DBPath:            c.DBPath,
		OwnerPasswordHash: c.OwnerPasswordHash,
		LogLevel:          c.LogLevel,
		StripCR:           &stripCR,
		ReadTimeout:       c.ReadTimeout.String(),
		WriteTimeout:      c.WriteTimeout.String(),
	}
	data, err := yaml.Marshal(&raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.NotesDir == "" {
		return fmt.Errorf("%w: notes_dir cannot be empty", ErrInvalid)
	}
	if c.Addr == "" {
		return fmt.Errorf("%w: addr cannot be empty", ErrInvalid)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("%w: read_timeout must be positive", ErrInvalid)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("%w: write_timeout must be positive", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if c.OwnerPasswordHash != "" && !strings.HasPrefix(c.OwnerPasswordHash, "$2") {
		return fmt.Errorf("%w: owner_password_hash is not a bcrypt hash", ErrInvalid)
	}
	return nil
}

// ExpandPaths expands ~ and makes the notes and database paths absolute.
func (c *Config) ExpandPaths() error {
	var err error

	c.NotesDir, err = expandPath(c.NotesDir)
	if err != nil {
		return fmt.Errorf("failed to expand notes_dir: %w", err)
	}

	c.DBPath, err = expandPath(c.DBPath)
	if err != nil {
		return fmt.Errorf("failed to expand db_path: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	return filepath.Abs(path)
}
