// ABOUTME: Intervals configuration management with backend selection.
// ABOUTME: Handles settings, the storage backend factory and logger construction.

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/intervals/internal/charm"
	"github.com/harperreed/intervals/internal/storage"
)

// Backends lists the accepted storage backends.
var Backends = []string{"sqlite", "badger", "file", "charm"}

// SoundModes lists the accepted sound settings.
var SoundModes = []string{"auto", "bell", "off"}

// LogLevels lists the accepted log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config stores intervals tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger",
	// "file" or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/intervals.
	DataDir string `json:"data_dir,omitempty"`

	// Sound selects the transition cue: "auto" (default), "bell" or "off".
	Sound string `json:"sound,omitempty"`

	// LogLevel is one of debug, info, warn (default) or error.
	LogLevel string `json:"log_level,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetSound returns the configured sound mode, defaulting to "auto".
func (c *Config) GetSound() string {
	if c.Sound == "" {
		return "auto"
	}
	return c.Sound
}

// GetLogLevel returns the configured log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// SoundDir is where cue assets are looked up and synthesized.
func (c *Config) SoundDir() string {
	return filepath.Join(c.GetDataDir(), "sounds")
}

// Set updates a single setting by its JSON key after validating the value.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		if !contains(Backends, value) {
			return fmt.Errorf("invalid backend %q (want one of %s)", value, strings.Join(Backends, ", "))
		}
		c.Backend = value
	case "data_dir":
		c.DataDir = value
	case "sound":
		if !contains(SoundModes, value) {
			return fmt.Errorf("invalid sound %q (want one of %s)", value, strings.Join(SoundModes, ", "))
		}
		c.Sound = value
	case "log_level":
		if _, err := ParseLevel(value); err != nil {
			return err
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown config key %q (want one of %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// Keys returns the settable config keys in sorted order.
func Keys() []string {
	keys := []string{"backend", "data_dir", "sound", "log_level"}
	sort.Strings(keys)
	return keys
}

// Values returns every setting with defaults applied, keyed like Set.
func (c *Config) Values() map[string]string {
	return map[string]string{
		"backend":   c.GetBackend(),
		"data_dir":  c.GetDataDir(),
		"sound":     c.GetSound(),
		"log_level": c.GetLogLevel(),
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenBlob opens the durable blob for the configured backend.
func (c *Config) OpenBlob(logger *log.Logger) (storage.Blob, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir(), logger)
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(backend, dataDir string, logger *log.Logger) (storage.Blob, error) {
	switch backend {
	case "sqlite":
		db, err := storage.Open(filepath.Join(dataDir, "intervals.db"))
		if err != nil {
			return nil, err
		}
		return db, nil
	case "badger":
		b, err := storage.OpenBadger(filepath.Join(dataDir, "badger"), logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "file":
		return storage.OpenFile(filepath.Join(dataDir, "intervals.json")), nil
	case "charm":
		c, err := charm.InitClient()
		if err != nil {
			return nil, fmt.Errorf("init charm: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// ParseLevel maps a level name to a log level.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "", "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.WarnLevel, fmt.Errorf("invalid log level %q (want one of %s)", s, strings.Join(LogLevels, ", "))
	}
}

// NewLogger returns a logger writing to w at the configured level.
// An override, when non-empty, wins over the configured level.
func (c *Config) NewLogger(w io.Writer, override string) (*log.Logger, error) {
	name := c.GetLogLevel()
	if override != "" {
		name = override
	}
	level, err := ParseLevel(name)
	if err != nil {
		return nil, err
	}

	logger := log.New(w)
	logger.SetPrefix("intervals")
	logger.SetLevel(level)
	return logger, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "intervals", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
