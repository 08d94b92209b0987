package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/pendant"
	"github.com/aretw0/pendant/internal/logging"
	"github.com/aretw0/pendant/pkg/adapters/memory"
	"github.com/aretw0/pendant/pkg/adapters/redis"
	"github.com/aretw0/pendant/pkg/config"
	"github.com/aretw0/pendant/pkg/ports"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pendant",
		Short:         "Pendant drives the alarm behaviours of a BLE coprocessor",
		Long:          `Pendant runs the alert, broadcast and characteristic behaviours against a simulated coprocessor, prints their frames and sequence graphs, and serves them over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringP("config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringArray("set", nil, "Override a config key, e.g. --set timing.ack_timeout=2s")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(), newFrameCmd(), newGraphCmd(), newServeCmd(), newVersionCmd())
	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig applies --config, then every --set, then --log-level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	sets, _ := cmd.Flags().GetStringArray("set")
	if len(sets) > 0 {
		values, err := config.ParseSet(sets)
		if err != nil {
			return nil, err
		}
		if err := cfg.Overrides(values); err != nil {
			return nil, err
		}
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level), nil
}

// openStore returns the redis store and lock when redis.addr is set, else an in-memory store
// and no lock.
func openStore(cfg *config.Config) (ports.ReportStore, ports.DistributedLocker, func() error) {
	if cfg.Redis.Addr == "" {
		return memory.NewStore(), nil, func() error { return nil }
	}
	store := redis.New(cfg.Redis.Addr, "", 0,
		redis.WithPrefix(cfg.Redis.Prefix),
		redis.WithTTL(cfg.Redis.TTL),
	)
	return store, redis.NewLocker(store.Client(), cfg.Redis.Prefix), store.Close
}

// deviceOptions collects the options shared by every command that builds a Device.
func deviceOptions(cfg *config.Config, logger *slog.Logger, clock ports.Clock, store ports.ReportStore, locker ports.DistributedLocker) []pendant.Option {
	opts := []pendant.Option{
		pendant.WithConfig(cfg),
		pendant.WithLogger(logger),
		pendant.WithClock(clock),
		pendant.WithStore(store),
	}
	if locker != nil {
		opts = append(opts, pendant.WithLocker(locker))
	}
	return opts
}
