package appender

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/dastra/kafkalog/internal/protocol"
)

func TestAppender_SnapshotRestore(t *testing.T) {
	cfg := dryRunConfig()
	cfg.Topic = "logs"
	cfg.Partition = 3

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := a.Activate(ctx); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	snap := a.Snapshot()

	// Serializing implicitly closes the live connection.
	if a.State() != Inactive {
		t.Errorf("source state after Snapshot = %v, want Inactive", a.State())
	}

	restored, err := Restore(ctx, snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.State() != Active {
		t.Fatalf("restored state = %v, want Active", restored.State())
	}

	if err := restored.Append(ctx, []byte("after restore")); err != nil {
		t.Fatalf("Append on restored appender: %v", err)
	}

	want, err := protocol.Encode([]byte("after restore"), "logs", 3)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	frames := restored.DryRunFrames()
	if len(frames) != 1 || !bytes.Equal(frames[0], want) {
		t.Errorf("restored appender produced % x, want % x", frames, want)
	}

	// The restored instance owns a fresh transport: the source recorded
	// nothing.
	if len(a.DryRunFrames()) != 0 {
		t.Errorf("source appender recorded %d frames after restore, want 0", len(a.DryRunFrames()))
	}
}

func TestSnapshot_ConfigRoundTrip(t *testing.T) {
	cfg := Config{
		RemoteHost: "broker.internal",
		Port:       9093,
		Topic:      "logs",
		Partition:  3,
		Version:    "0.8.2.2",
		Brokers:    []string{"b1:9092", "b2:9092"},
	}

	a, err := New(cfg, WithTransport(failingTransport{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	snap := a.Snapshot()
	if snap.Brokers != "b1:9092,b2:9092" {
		t.Errorf("snapshot brokers = %q, want comma-joined list", snap.Brokers)
	}

	got := snap.Config()
	if got.RemoteHost != cfg.RemoteHost || got.Port != cfg.Port ||
		got.Topic != cfg.Topic || got.Partition != cfg.Partition ||
		got.Version != cfg.Version {
		t.Errorf("Config() = %+v, want %+v", got, cfg)
	}
	if len(got.Brokers) != 2 || got.Brokers[0] != "b1:9092" || got.Brokers[1] != "b2:9092" {
		t.Errorf("Brokers = %v, want [b1:9092 b2:9092]", got.Brokers)
	}
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	snap := Snapshot{
		RemoteHost: "localhost",
		Port:       9092,
		Topic:      "logs",
		Partition:  3,
		Version:    "0.8.2.2",
		Brokers:    "b1:9092",
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != snap {
		t.Errorf("round trip = %+v, want %+v", got, snap)
	}
}

func TestFileRepository(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepository(dir)

	// Load before any save yields an empty snapshot, not an error.
	snap, err := repo.Load()
	if err != nil {
		t.Fatalf("Load on empty dir: %v", err)
	}
	if !snap.IsEmpty() {
		t.Fatalf("snapshot from empty dir = %+v, want empty", snap)
	}

	saved := Snapshot{
		RemoteHost: "localhost",
		Port:       9092,
		Topic:      "logs",
		Partition:  3,
		Version:    "0.8.2.2",
	}
	if err := repo.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != saved {
		t.Errorf("Load = %+v, want %+v", loaded, saved)
	}
	if loaded.IsEmpty() {
		t.Error("loaded snapshot reports empty")
	}
}
