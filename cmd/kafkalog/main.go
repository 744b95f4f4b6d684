// Command kafkalog reads log lines from stdin and ships each one to a
// Kafka broker as a checksummed, length-prefixed wire frame.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/dastra/kafkalog/internal/cliconfig"
	"github.com/dastra/kafkalog/pkg/appender"
	"github.com/dastra/kafkalog/pkg/log"
	"github.com/dastra/kafkalog/plugins/configwatcher"
)

const longHelp = `
Ship log records to a Kafka broker, one frame per line.

Each line read from stdin is encoded into a length-prefixed, CRC-32
checksummed wire frame and transmitted fire-and-forget to the configured
topic and partition. Configuration merges defaults, the TOML config
file, KAFKALOG_* environment variables and flags, in that order.
`

var exampleUsage = strings.TrimSpace(`
  tail -f app.log | kafkalog --topic logs --partition 3
  kafkalog --brokers b1:9092,b2:9092 --topic logs
  kafkalog --dry-run --topic logs < fixture.log
  kafkalog --topic logs "one-off record"
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var (
		cfgPath     string
		brokers     string
		watchConfig bool
		resume      bool
	)

	root := &cobra.Command{
		Use:     "kafkalog [records...]",
		Short:   "Ship log records to a Kafka broker, one frame per line",
		Long:    strings.TrimSpace(longHelp),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags explicitly set win over file and env values.
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if changed["brokers"] {
				cfg.Brokers = nil
				for _, b := range strings.Split(brokers, ",") {
					if b = strings.TrimSpace(b); b != "" {
						cfg.Brokers = append(cfg.Brokers, b)
					}
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg, cfgFile, args, watchConfig, resume)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfg.RemoteHost, "host", cfg.RemoteHost, "broker host for the socket transport")
	flags.IntVar(&cfg.Port, "port", cfg.Port, "broker port (1-65534)")
	flags.StringVar(&cfg.Topic, "topic", cfg.Topic, "destination topic")
	flags.Int32Var(&cfg.Partition, "partition", cfg.Partition, "destination partition (-1 lets the broker decide)")
	flags.StringVar(&cfg.Version, "broker-version", cfg.Version, "broker protocol version")
	flags.StringVar(&brokers, "brokers", "", "comma-separated bootstrap brokers (enables the broker-client transport)")
	flags.StringVar(&cfgPath, "config", "", "config file path (default $HOME/.kafkalog/config.toml)")
	flags.StringVar(&cfg.StateDir, "state-dir", "", "directory for the appender snapshot")
	flags.BoolVar(&cfg.DryRun, "dry-run", false, "build frames without any network I/O")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	flags.BoolVar(&watchConfig, "watch-config", false, "reload the config file on change")
	flags.BoolVar(&resume, "resume", false, "restore the appender from the snapshot in --state-dir")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliconfig.Config, cfgFile string, records []string, watchConfig, resume bool) error {
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	base := log.NewZerologAdapter()
	logger := log.NewZerologAdapterWithLogger(base.Logger().Level(level))

	var repo *appender.FileRepository
	if cfg.StateDir != "" {
		repo = appender.NewFileRepository(cfg.StateDir)
	}

	app, err := buildAppender(ctx, cfg, logger, repo, resume)
	if err != nil {
		return err
	}

	holder := &appenderHolder{app: app}
	defer func() {
		if repo != nil {
			if err := repo.Save(holder.get().Snapshot()); err != nil {
				logger.Error("snapshot save failed", log.Err(err))
			}
		}
		if err := holder.get().Close(); err != nil {
			logger.Error("close failed", log.Err(err))
		}
	}()

	if watchConfig && cfgFile != "" {
		watcher := configwatcher.New(
			configwatcher.Config{Path: cfgFile},
			func(next cliconfig.Config) { holder.swap(ctx, next, logger) },
			logger,
		)
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
		defer watcher.Stop()
	}

	logger.Info("shipping records",
		log.String("topic", cfg.Topic),
		log.Int32("partition", cfg.Partition),
		log.Bool("dry_run", cfg.DryRun),
	)

	var shipped, dropped int
	ship := func(record []byte) {
		if err := holder.get().Append(ctx, record); err != nil {
			dropped++
			logger.Error("record dropped", log.Err(err))
			return
		}
		shipped++
	}

	// Positional arguments are shipped as records; otherwise read stdin
	// line by line.
	if len(records) > 0 {
		for _, r := range records {
			if ctx.Err() != nil {
				break
			}
			ship([]byte(r))
		}
		logger.Info("done", log.Int("shipped", shipped), log.Int("dropped", dropped))
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		ship(scanner.Bytes())
	}

	logger.Info("done", log.Int("shipped", shipped), log.Int("dropped", dropped))
	return scanner.Err()
}

// buildAppender constructs the appender from configuration, or from the
// persisted snapshot when resuming.
func buildAppender(ctx context.Context, cfg cliconfig.Config, logger log.Logger, repo *appender.FileRepository, resume bool) (*appender.Appender, error) {
	if resume && repo != nil {
		snap, err := repo.Load()
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		if !snap.IsEmpty() {
			logger.Info("resuming from snapshot",
				log.String("topic", snap.Topic),
				log.Int32("partition", snap.Partition),
			)
			return appender.Restore(ctx, snap, appender.WithLogger(logger))
		}
	}

	app, err := appender.New(cfg.AppenderConfig(), appender.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := app.Activate(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// appenderHolder swaps the live appender under a lock when the config
// watcher delivers a new configuration.
type appenderHolder struct {
	mu  sync.Mutex
	app *appender.Appender
}

func (h *appenderHolder) get() *appender.Appender {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.app
}

func (h *appenderHolder) swap(ctx context.Context, cfg cliconfig.Config, logger log.Logger) {
	next, err := appender.New(cfg.AppenderConfig(), appender.WithLogger(logger))
	if err != nil {
		logger.Error("reconfigure rejected", log.Err(err))
		return
	}
	if err := next.Activate(ctx); err != nil {
		logger.Error("reconfigure failed", log.Err(err))
		return
	}

	h.mu.Lock()
	prev := h.app
	h.app = next
	h.mu.Unlock()

	if err := prev.Close(); err != nil {
		logger.Warn("closing replaced appender", log.Err(err))
	}
	logger.Info("appender reconfigured",
		log.String("topic", cfg.Topic),
		log.Int32("partition", cfg.Partition),
	)
}
