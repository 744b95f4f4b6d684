package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML tags. Pointer fields distinguish
// "absent" from zero values.
type FileConfig struct {
	RemoteHost string `toml:"remote_host"`
	Port       int    `toml:"port"`
	Topic      string `toml:"topic"`
	Partition  *int32 `toml:"partition"`
	Version    string `toml:"version"`
	Brokers    string `toml:"brokers"` // comma-joined
	DryRun     *bool  `toml:"dry_run"`
	StateDir   string `toml:"state_dir"`
	Verbose    *bool  `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.kafkalog/config.toml if the user home
// directory is accessible, or "" otherwise.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".kafkalog", "config.toml")
	}
	return ""
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// ApplyFileConfig applies configuration from a file to the Config.
// Values from flags that were explicitly set take precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", fc.RemoteHost, &cfg.RemoteHost)
	s.setInt("port", fc.Port, &cfg.Port)
	s.setString("topic", fc.Topic, &cfg.Topic)
	s.setInt32("partition", fc.Partition, &cfg.Partition)
	s.setString("broker-version", fc.Version, &cfg.Version)
	s.setBrokers("brokers", fc.Brokers, &cfg.Brokers)
	s.setBool("dry-run", fc.DryRun, &cfg.DryRun)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}
