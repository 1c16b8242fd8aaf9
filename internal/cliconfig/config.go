// Package cliconfig holds the CLI-facing configuration for pixellink and
// the file/env/flag precedence machinery around it.
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/santikzz/pixellink/internal/domain"
)

// Defaults mirror the original deployment: a 100 ms poll and a ten-row gap
// between the two scan regions.
const (
	DefaultWidth        = 1024
	DefaultRegionRows   = 10
	DefaultPollInterval = 100 * time.Millisecond
)

// Config holds CLI configuration for pixellink.
type Config struct {
	// Role selects endpoint a or b (also accepts 1 or 2).
	Role string

	// SurfacePath is the shared surface file both peers open.
	SurfacePath string

	// Width is the surface's horizontal resolution.
	Width int

	// RegionRows is the vertical gap between the two scan regions.
	RegionRows int

	// PollInterval is the fixed delay between receive attempts.
	PollInterval time.Duration

	// MaxPollAttempts bounds a single wait for the peer; 0 polls forever.
	MaxPollAttempts int

	// Verbose enables debug-level logging.
	Verbose bool
}

// DefaultConfig returns a Config with default values.
// The role has no default: choosing an endpoint is always explicit.
func DefaultConfig() Config {
	return Config{
		SurfacePath:  DefaultSurfacePath(),
		Width:        DefaultWidth,
		RegionRows:   DefaultRegionRows,
		PollInterval: DefaultPollInterval,
	}
}

// DefaultSurfacePath returns the shared surface file both sides fall back
// to when none is configured.
func DefaultSurfacePath() string {
	return filepath.Join(os.TempDir(), "pixellink.surface")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := domain.ParseRole(c.Role); err != nil {
		return err
	}
	if c.SurfacePath == "" {
		return fmt.Errorf("%w: surface path is required", domain.ErrInvalidConfig)
	}
	if c.Width <= 0 {
		return fmt.Errorf("%w: width must be positive", domain.ErrInvalidConfig)
	}
	if c.RegionRows <= 0 {
		return fmt.Errorf("%w: region-rows must be positive", domain.ErrInvalidConfig)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", domain.ErrInvalidConfig)
	}
	if c.MaxPollAttempts < 0 {
		return fmt.Errorf("%w: max poll attempts must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
