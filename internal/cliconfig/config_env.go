package cliconfig

import "os"

// ApplyEnvConfig applies configuration from KAFKALOG_* environment
// variables. Env overrides the config file but loses to explicit flags
// (tracked in the changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", os.Getenv("KAFKALOG_HOST"), &cfg.RemoteHost)
	s.setString("topic", os.Getenv("KAFKALOG_TOPIC"), &cfg.Topic)
	s.setString("broker-version", os.Getenv("KAFKALOG_BROKER_VERSION"), &cfg.Version)
	s.setBrokers("brokers", os.Getenv("KAFKALOG_BROKERS"), &cfg.Brokers)
	s.setString("state-dir", os.Getenv("KAFKALOG_STATE_DIR"), &cfg.StateDir)

	if err := s.setIntFromString("port", os.Getenv("KAFKALOG_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setInt32FromString("partition", os.Getenv("KAFKALOG_PARTITION"), &cfg.Partition); err != nil {
		return err
	}

	s.setBoolFromString("dry-run", os.Getenv("KAFKALOG_DRY_RUN"), &cfg.DryRun)
	s.setBoolFromString("verbose", os.Getenv("KAFKALOG_VERBOSE"), &cfg.Verbose)

	return nil
}
