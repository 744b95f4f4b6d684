// Package cliconfig loads and merges CLI configuration from defaults,
// TOML config file, KAFKALOG_* environment variables and command-line
// flags, in that precedence order (flags win).
package cliconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dastra/kafkalog/pkg/appender"
)

// Config holds the CLI configuration: the appender settings plus
// process-level knobs.
type Config struct {
	RemoteHost string
	Port       int
	Topic      string
	Partition  int32
	Version    string
	Brokers    []string
	DryRun     bool

	// StateDir, when set, is where the appender snapshot is persisted
	// across runs.
	StateDir string

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultConfig returns a Config with the standard defaults.
func DefaultConfig() Config {
	base := appender.DefaultConfig()
	return Config{
		RemoteHost: base.RemoteHost,
		Port:       base.Port,
		Topic:      base.Topic,
		Partition:  base.Partition,
		Version:    base.Version,
	}
}

// AppenderConfig converts to the appender's configuration.
func (c Config) AppenderConfig() appender.Config {
	return appender.Config{
		RemoteHost: c.RemoteHost,
		Port:       c.Port,
		Topic:      c.Topic,
		Partition:  c.Partition,
		Version:    c.Version,
		Brokers:    c.Brokers,
		DryRun:     c.DryRun,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	return c.AppenderConfig().Validate()
}

// configSetter helps apply configuration values while respecting flag
// precedence: a value is only applied if its flag was not explicitly set.
type configSetter struct {
	changed map[string]bool
}

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

// setInt sets an int value if non-zero and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt32 sets an int32 value from a pointer if not nil and flag not changed.
func (s *configSetter) setInt32(flag string, value *int32, dst *int32) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBrokers splits and sets a comma-joined broker list.
func (s *configSetter) setBrokers(flag, value string, dst *[]string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = splitBrokers(value)
}

// setIntFromString parses a string to int and sets the destination.
// Used for environment variables, which arrive as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setInt32FromString parses a string to int32 and sets the destination.
func (s *configSetter) setInt32FromString(flag, value string, dst *int32) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = int32(i)
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}

// splitBrokers splits a comma-joined broker list, trimming whitespace
// and dropping empty entries.
func splitBrokers(value string) []string {
	var brokers []string
	for _, b := range strings.Split(value, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
