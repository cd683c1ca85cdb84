// Package config loads cubectl settings from cubectl.yaml, CUBECTL_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = "cubectl"
	configFileType = "yaml"
	envPrefix      = "CUBECTL"
)

// Config keys.
const (
	KeySize        = "size"
	KeyWorkers     = "workers"
	KeyOps         = "ops"
	KeyShowEvery   = "show_every"
	KeyCancelRatio = "cancel_ratio"
	KeyDB          = "db"
	KeyMetricsAddr = "metrics_addr"
)

// flagNames maps config keys to the flags that override them.
var flagNames = map[string]string{
	KeySize:        "size",
	KeyWorkers:     "workers",
	KeyOps:         "ops",
	KeyShowEvery:   "show-every",
	KeyCancelRatio: "cancel-ratio",
	KeyDB:          "db",
	KeyMetricsAddr: "metrics-addr",
}

const defaultConfigYAML = `# cubectl configuration

# Cube size used by apply, stress and watch
size: 3

# Stress workload
workers: 8
ops: 1000
show_every: 10
cancel_ratio: 0.05

# Stress run database (defaults to ~/.concurrentcube/runs.db)
# db:

# Serve Prometheus metrics during stress runs, e.g. ":9090"
# metrics_addr:
`

// Config holds resolved cubectl settings.
type Config struct {
	Size        int
	Workers     int
	Ops         int
	ShowEvery   int
	CancelRatio float64
	DBPath      string
	MetricsAddr string
}

// DefaultDir returns the default configuration directory.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "cubectl"), nil
}

// Load reads cubectl.yaml from configDir, creating a commented default file
// on first use. A missing file is not an error. Flags in flags that were set
// on the command line take precedence over the file and the environment.
// flags may be nil.
func Load(configDir string, flags *pflag.FlagSet) (*Config, error) {
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeySize, 3)
	v.SetDefault(KeyWorkers, 8)
	v.SetDefault(KeyOps, 1000)
	v.SetDefault(KeyShowEvery, 10)
	v.SetDefault(KeyCancelRatio, 0.05)
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyMetricsAddr, "")

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagNames {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Size:        v.GetInt(KeySize),
		Workers:     v.GetInt(KeyWorkers),
		Ops:         v.GetInt(KeyOps),
		ShowEvery:   v.GetInt(KeyShowEvery),
		CancelRatio: v.GetFloat64(KeyCancelRatio),
		DBPath:      v.GetString(KeyDB),
		MetricsAddr: v.GetString(KeyMetricsAddr),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings describe a runnable workload.
func (c *Config) Validate() error {
	switch {
	case c.Size < 1:
		return fmt.Errorf("config: size must be at least 1, got %d", c.Size)
	case c.Workers < 1:
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	case c.Ops < 0:
		return fmt.Errorf("config: ops must not be negative, got %d", c.Ops)
	case c.ShowEvery < 0:
		return fmt.Errorf("config: show_every must not be negative, got %d", c.ShowEvery)
	case c.CancelRatio < 0 || c.CancelRatio > 1:
		return fmt.Errorf("config: cancel_ratio must be within [0, 1], got %g", c.CancelRatio)
	}
	return nil
}

// ensureDefaultConfigFile writes the default cubectl.yaml if configDir has
// none.
func ensureDefaultConfigFile(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(configDir, configFileName+"."+configFileType)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
