package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfigFile(t, `
remote_host = "broker.internal"
port = 9093
topic = "events"
partition = 2
version = "0.8.2.2"
brokers = "b1:9092,b2:9092"
dry_run = true
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	if fc.RemoteHost != "broker.internal" || fc.Port != 9093 || fc.Topic != "events" {
		t.Errorf("parsed = %+v, want broker.internal:9093/events", fc)
	}
	if fc.Partition == nil || *fc.Partition != 2 {
		t.Errorf("Partition = %v, want 2", fc.Partition)
	}
	if fc.DryRun == nil || !*fc.DryRun {
		t.Errorf("DryRun = %v, want true", fc.DryRun)
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	path := writeConfigFile(t, "topic = [not toml")

	if _, err := LoadFileConfig(path); err == nil {
		t.Fatal("LoadFileConfig accepted malformed TOML")
	}
}

func TestLoadFileConfig_Missing(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("LoadFileConfig succeeded on a missing file")
	}
}

func TestApplyFileConfig(t *testing.T) {
	partition := int32(4)
	fc := FileConfig{
		RemoteHost: "broker.internal",
		Port:       9093,
		Topic:      "events",
		Partition:  &partition,
		Brokers:    "b1:9092",
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, nil); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.RemoteHost != "broker.internal" || cfg.Port != 9093 || cfg.Topic != "events" {
		t.Errorf("applied = %+v", cfg)
	}
	if cfg.Partition != 4 {
		t.Errorf("Partition = %d, want 4", cfg.Partition)
	}
	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != "b1:9092" {
		t.Errorf("Brokers = %v, want [b1:9092]", cfg.Brokers)
	}
	// Untouched fields keep their defaults.
	if cfg.Version != "0.8.2.2" {
		t.Errorf("Version = %q, want default", cfg.Version)
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	fc := FileConfig{Topic: "from-file", Port: 9093}

	cfg := DefaultConfig()
	cfg.Topic = "from-flag"
	changed := map[string]bool{"topic": true}

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig: %v", err)
	}

	if cfg.Topic != "from-flag" {
		t.Errorf("Topic = %q, explicit flag must win over file", cfg.Topic)
	}
	if cfg.Port != 9093 {
		t.Errorf("Port = %d, file value must apply for unchanged flags", cfg.Port)
	}
}
