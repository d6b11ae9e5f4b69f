package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config is the full application configuration.
type Config struct {
	// Instance is the remote ticketing host, e.g. "dev12345.service-now.com".
	Instance string `toml:"instance"`
	// BackupsLocation is the directory holding active backup folders.
	BackupsLocation string `toml:"backups_location"`
	// DeletionLocation is the staging directory folders are moved into.
	DeletionLocation string `toml:"deletion_location"`

	Retention     Retention     `toml:"retention"`
	ServiceNow    ServiceNow    `toml:"servicenow"`
	Pipeline      Pipeline      `toml:"pipeline"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// Retention contains the deletion policy knobs.
type Retention struct {
	// Days a ticket must have been closed before its backup is deletable.
	Days int `toml:"days"`
	// Timezone is the IANA zone used for closure display and age math.
	Timezone string `toml:"timezone"`
	// HoldTag is the remote label sys_id that exempts a ticket from deletion.
	HoldTag string `toml:"hold_tag"`
}

// ServiceNow contains remote API client settings.
type ServiceNow struct {
	RequestTimeout int `toml:"request_timeout"`
}

// Pipeline contains evaluation fan-out settings.
type Pipeline struct {
	// Workers bounds concurrent per-ticket evaluations. 0 means one
	// goroutine per discovered ticket.
	Workers int `toml:"workers"`
}

// Logging contains log output settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
}

// Notifications contains ntfy push notification settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// DefaultConfigPath returns the expanded default configuration location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ticketsweep/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The bool reports
// whether a file existed at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s not found", expanded)
			}
			return "", false, fmt.Errorf("inspect config %s: %w", expanded, err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("inspect config %s: %w", defaultPath, err)
	}
	return defaultPath, true, nil
}

func (c *Config) normalize() error {
	c.Instance = strings.TrimSpace(c.Instance)
	c.Instance = strings.TrimPrefix(c.Instance, "https://")
	c.Instance = strings.TrimRight(c.Instance, "/")

	var err error
	if c.BackupsLocation, err = expandNonEmpty(c.BackupsLocation); err != nil {
		return err
	}
	if c.DeletionLocation, err = expandNonEmpty(c.DeletionLocation); err != nil {
		return err
	}
	if c.Logging.Dir, err = expandNonEmpty(c.Logging.Dir); err != nil {
		return err
	}
	return nil
}

func expandNonEmpty(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	return expandPath(trimmed)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file %s already exists", expanded)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
