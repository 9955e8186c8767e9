// Package config loads the agent's timing and path configuration from a YAML
// file, with environment overrides for the backend endpoint so deployments
// can repoint an installed agent without editing the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config mirrors configs/agent.yaml. All intervals are whole seconds.
type Config struct {
	Collectors CollectorConfig `yaml:"collectors"`
	Context    ContextConfig   `yaml:"context"`
	Sender     SenderConfig    `yaml:"sender"`
	Backend    BackendConfig   `yaml:"backend"`
	Paths      PathConfig      `yaml:"paths"`
}

type CollectorConfig struct {
	ProcessPollInterval     int `yaml:"process_poll_interval"`
	NetworkPollInterval     int `yaml:"network_poll_interval"`
	FilesystemPollInterval  int `yaml:"filesystem_poll_interval"`
	MemoryPollInterval      int `yaml:"memory_poll_interval"`
	AccessPollInterval      int `yaml:"access_poll_interval"`
	PersistencePollInterval int `yaml:"persistence_poll_interval"`
}

type ContextConfig struct {
	ContextTimeout int `yaml:"context_timeout"`
}

type SenderConfig struct {
	SendInterval int `yaml:"send_interval"`
	MaxBatchSize int `yaml:"max_batch_size"`
}

type BackendConfig struct {
	APIURL         string `yaml:"api_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type PathConfig struct {
	DataDir        string   `yaml:"data_dir"`
	WatchPaths     []string `yaml:"watch_paths"`
	ProtectedPaths []string `yaml:"protected_paths"`
	StartupPaths   []string `yaml:"startup_paths"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Collectors: CollectorConfig{
			ProcessPollInterval:     1,
			NetworkPollInterval:     2,
			FilesystemPollInterval:  3,
			MemoryPollInterval:      3,
			AccessPollInterval:      5,
			PersistencePollInterval: 5,
		},
		Context: ContextConfig{ContextTimeout: 30},
		Sender:  SenderConfig{SendInterval: 10, MaxBatchSize: 10},
		Backend: BackendConfig{
			APIURL:         "http://127.0.0.1:5000/api/logs",
			TimeoutSeconds: 5,
		},
		Paths: PathConfig{
			DataDir:        "data",
			WatchPaths:     []string{home, os.TempDir()},
			ProtectedPaths: []string{"/etc"},
			StartupPaths:   []string{filepath.Join(home, ".config", "autostart")},
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults untouched. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if url := os.Getenv("SENTINEL_BACKEND_URL"); url != "" {
		cfg.Backend.APIURL = url
	}
	if t := os.Getenv("SENTINEL_BACKEND_TIMEOUT"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			cfg.Backend.TimeoutSeconds = secs
		}
	}
	return cfg, nil
}

// ContextTimeout returns the context expiry window as a duration.
func (c Config) ContextTimeout() time.Duration {
	return time.Duration(c.Context.ContextTimeout) * time.Second
}

// SendInterval returns the sender loop period as a duration.
func (c Config) SendInterval() time.Duration {
	return time.Duration(c.Sender.SendInterval) * time.Second
}

// BackendTimeout returns the per-request HTTP timeout as a duration.
func (c Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// Interval converts a whole-second poll setting to a duration, clamping
// non-positive values to one second.
func Interval(seconds int) time.Duration {
	if seconds <= 0 {
		seconds = 1
	}
	return time.Duration(seconds) * time.Second
}
