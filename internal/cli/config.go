package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the on-disk configuration. All fields are optional; flags
// override file values, and file values override the built-in defaults.
type Config struct {
	// Database is the path to the SQLite blob store.
	Database string `yaml:"db"`

	// HTTPTimeout bounds the subscribe fetch, as a Go duration string
	// ("10s", "1m"). Defaults to 10s.
	HTTPTimeout string `yaml:"http_timeout"`

	// SubscribeURL is used by `daybook subscribe` when no URL argument is
	// given.
	SubscribeURL string `yaml:"subscribe_url"`
}

// DefaultConfigPath returns ~/.config/daybook/config.yaml, or "" when the
// home directory cannot be determined.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "daybook", "config.yaml")
}

// defaultDatabasePath returns ~/.local/share/daybook/daybook.db, falling
// back to a file in the working directory when home is unknown.
func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "daybook.db"
	}
	return filepath.Join(home, ".local", "share", "daybook", "daybook.db")
}

// LoadConfig reads the YAML config at path. A missing file is not an
// error - it yields a zero Config so the defaults apply. A file that
// exists but does not parse is an error; silently ignoring a broken config
// would hide typos from the user.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// fetchTimeout resolves the configured HTTP timeout, defaulting to 10s.
func (c Config) fetchTimeout() (time.Duration, error) {
	if c.HTTPTimeout == "" {
		return 10 * time.Second, nil
	}
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid http_timeout %q: %w", c.HTTPTimeout, err)
	}
	return d, nil
}
