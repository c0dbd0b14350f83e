package core

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the entire crcsim engine configuration. The catalog
// snapshot itself lives in a separate JSON document (see snapshot.go);
// this file configures the process around it.
type Config struct {
	Snapshot   SnapshotConfig   `yaml:"snapshot"`
	Emit       EmitConfig       `yaml:"emit"`
	Bus        BusConfig        `yaml:"bus"`
	Automation AutomationConfig `yaml:"automation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SnapshotConfig locates the catalog snapshot file.
type SnapshotConfig struct {
	Path string `yaml:"path"`
}

// EmitConfig controls the built-in console emitter.
type EmitConfig struct {
	Console bool `yaml:"console"`
	Pretty  bool `yaml:"pretty"`
}

// BusConfig holds NATS emitter settings. Disabled by default: the
// simulator prints events unless an operator opts into bus delivery.
type BusConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`
	Embedded bool   `yaml:"embedded"`
	DataDir  string `yaml:"data_dir"`
	Port     int    `yaml:"port"`
}

// AutomationConfig holds defaults for the automation scheduler.
type AutomationConfig struct {
	Interval time.Duration `yaml:"interval"`
	Sources  []string      `yaml:"sources"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sane defaults so the simulator
// works with no config file at all.
func DefaultConfig() *Config {
	return &Config{
		Snapshot: SnapshotConfig{
			Path: "config.json",
		},
		Emit: EmitConfig{
			Console: true,
			Pretty:  true,
		},
		Bus: BusConfig{
			Enabled:  false,
			URL:      "nats://127.0.0.1:4222",
			Embedded: true,
			DataDir:  "./data/nats",
			Port:     4222,
		},
		Automation: AutomationConfig{
			Interval: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from a YAML file, falling back to
// defaults when the file is absent.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if env := os.Getenv("CRCSIM_SNAPSHOT"); env != "" {
		cfg.Snapshot.Path = env
	}

	return cfg, nil
}

// SaveConfig writes the configuration to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LogLevel returns the normalized log level string.
func (c *Config) LogLevel() string {
	return strings.ToLower(c.Logging.Level)
}

// Validate reports configuration issues an operator should fix.
func (c *Config) Validate() []string {
	var issues []string
	if c.Bus.Enabled {
		if c.Bus.Port < 1 || c.Bus.Port > 65535 {
			issues = append(issues, fmt.Sprintf("bus.port %d is out of range (1-65535)", c.Bus.Port))
		}
		if !c.Bus.Embedded && c.Bus.URL == "" {
			issues = append(issues, "bus.url must be set when bus.embedded is false")
		}
	}
	if c.Automation.Interval <= 0 {
		issues = append(issues, "automation.interval must be positive")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel()] {
		issues = append(issues, fmt.Sprintf("logging.level %q is not valid (debug, info, warn, error)", c.Logging.Level))
	}
	return issues
}
