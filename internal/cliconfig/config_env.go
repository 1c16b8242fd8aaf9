package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (PIXELLINK_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("role", os.Getenv("PIXELLINK_ROLE"), &cfg.Role)
	s.setString("surface", os.Getenv("PIXELLINK_SURFACE"), &cfg.SurfacePath)

	if err := s.setIntFromString("width", os.Getenv("PIXELLINK_WIDTH"), &cfg.Width); err != nil {
		return err
	}
	if err := s.setIntFromString("region-rows", os.Getenv("PIXELLINK_REGION_ROWS"), &cfg.RegionRows); err != nil {
		return err
	}
	if err := s.setIntFromString("max-poll-attempts", os.Getenv("PIXELLINK_MAX_POLL_ATTEMPTS"), &cfg.MaxPollAttempts); err != nil {
		return err
	}

	if err := s.setDuration("poll", os.Getenv("PIXELLINK_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}

	s.setBoolFromString("verbose", os.Getenv("PIXELLINK_VERBOSE"), &cfg.Verbose)

	return nil
}
