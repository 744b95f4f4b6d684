package appender

import (
	"context"
	"strings"
)

// Snapshot is the persisted form of an appender: the minimal
// configuration needed to rebuild an equivalent appender in another
// process or after a restart. The live transport resource is never part
// of it.
type Snapshot struct {
	RemoteHost string `json:"remote_host"`
	Port       int    `json:"port"`
	Topic      string `json:"topic"`
	Partition  int32  `json:"partition"`
	Version    string `json:"version"`
	Brokers    string `json:"brokers"` // comma-joined
	DryRun     bool   `json:"dry_run,omitempty"`
}

// IsEmpty reports whether the snapshot has never been populated.
func (s Snapshot) IsEmpty() bool {
	return s.Topic == ""
}

// Config rebuilds the appender configuration captured in the snapshot.
func (s Snapshot) Config() Config {
	var brokers []string
	if s.Brokers != "" {
		brokers = strings.Split(s.Brokers, ",")
	}
	return Config{
		RemoteHost: s.RemoteHost,
		Port:       s.Port,
		Topic:      s.Topic,
		Partition:  s.Partition,
		Version:    s.Version,
		Brokers:    brokers,
		DryRun:     s.DryRun,
	}
}

// Snapshot captures the persisted configuration and implicitly closes
// the live connection, so no two serialized copies can ever share one
// transport resource. The appender itself drops back to Inactive and can
// be re-activated.
func (a *Appender) Snapshot() Snapshot {
	if a.state == Active {
		if err := a.Reset(); err != nil {
			a.logger.Warn("snapshot: reset failed")
		}
	}
	return Snapshot{
		RemoteHost: a.cfg.RemoteHost,
		Port:       a.cfg.Port,
		Topic:      a.cfg.Topic,
		Partition:  a.cfg.Partition,
		Version:    a.cfg.Version,
		Brokers:    a.cfg.BrokerList(),
		DryRun:     a.cfg.DryRun,
	}
}

// Restore rebuilds an appender from a snapshot on a fresh connection
// manager and activates it immediately: the restored instance comes back
// Active, bound to a newly opened transport.
func Restore(ctx context.Context, snap Snapshot, opts ...Option) (*Appender, error) {
	a, err := New(snap.Config(), opts...)
	if err != nil {
		return nil, err
	}
	if err := a.Activate(ctx); err != nil {
		return nil, err
	}
	return a, nil
}
