package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validate ensures the configuration is usable. Missing required keys are a
// fatal startup condition.
func (c *Config) Validate() error {
	if err := c.validateLocations(); err != nil {
		return err
	}
	if err := c.validateRetention(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateLocations() error {
	if c.Instance == "" {
		return missingKeyError("instance")
	}
	if c.BackupsLocation == "" {
		return missingKeyError("backups_location")
	}
	if c.DeletionLocation == "" {
		return missingKeyError("deletion_location")
	}
	if c.BackupsLocation == c.DeletionLocation {
		return errors.New("backups_location and deletion_location must differ")
	}
	return nil
}

func (c *Config) validateRetention() error {
	if c.Retention.Days < 1 {
		return errors.New("retention.days must be at least 1")
	}
	if strings.TrimSpace(c.Retention.HoldTag) == "" {
		return errors.New("retention.hold_tag must be set")
	}
	if _, err := time.LoadLocation(c.Retention.Timezone); err != nil {
		return fmt.Errorf("retention.timezone %q is not a valid IANA zone: %w", c.Retention.Timezone, err)
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.Workers < 0 {
		return errors.New("pipeline.workers must not be negative")
	}
	if c.ServiceNow.RequestTimeout < 1 {
		return errors.New("servicenow.request_timeout must be at least 1 second")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func missingKeyError(key string) error {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/ticketsweep/config.toml"
	}
	return fmt.Errorf("%s is required. Edit %s (create with 'ticketsweep config init')", key, defaultPath)
}
