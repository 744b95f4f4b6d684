package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dastra/kafkalog/internal/cliconfig"
	"github.com/dastra/kafkalog/pkg/log"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	write(t, path, "topic = \"events\"\nport = 9093\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Topic != "events" || cfg.Port != 9093 {
		t.Errorf("Load = %+v, want topic=events port=9093", cfg)
	}
	// Untouched values keep defaults.
	if cfg.RemoteHost != "localhost" {
		t.Errorf("RemoteHost = %q, want localhost", cfg.RemoteHost)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	write(t, path, "port = 99999\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted an out-of-range port")
	}
}

func TestWatcher_ReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	write(t, path, "topic = \"before\"\n")

	reloaded := make(chan cliconfig.Config, 1)
	w := New(
		Config{Path: path, DebounceDelay: 10 * time.Millisecond},
		func(cfg cliconfig.Config) { reloaded <- cfg },
		log.NewNoopLogger(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	write(t, path, "topic = \"after\"\n")

	select {
	case cfg := <-reloaded:
		if cfg.Topic != "after" {
			t.Errorf("reloaded topic = %q, want after", cfg.Topic)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	write(t, path, "topic = \"stay\"\n")

	reloaded := make(chan cliconfig.Config, 1)
	w := New(
		Config{Path: path, DebounceDelay: 10 * time.Millisecond},
		func(cfg cliconfig.Config) { reloaded <- cfg },
		log.NewNoopLogger(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	write(t, filepath.Join(dir, "unrelated.txt"), "noise")

	select {
	case <-reloaded:
		t.Fatal("reload triggered by an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
