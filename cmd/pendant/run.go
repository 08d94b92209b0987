package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/pendant"
	"github.com/aretw0/pendant/internal/presentation/tui"
	"github.com/aretw0/pendant/pkg/adapters/memory"
	"github.com/aretw0/pendant/pkg/adapters/sim"
	"github.com/aretw0/pendant/pkg/ports"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <behaviour>",
		Short: "Run one behaviour against the simulated coprocessor",
		Long: `Runs a behaviour until it finishes or halts in a critical error, then prints its report.
Time is simulated unless --realtime is set, so timeouts elapse instantly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			simOpts, err := simOptions(cmd, logger)
			if err != nil {
				return err
			}

			var clock ports.Clock = memory.NewManualClock(time.Now())
			if realtime, _ := cmd.Flags().GetBool("realtime"); realtime {
				clock = ports.SystemClock{}
			}

			store, locker, closeStore := openStore(cfg)
			defer closeStore()

			dev, err := pendant.New(sim.New(simOpts...), deviceOptions(cfg, logger, clock, store, locker)...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := dev.Run(ctx, args[0])
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				tui.NewPrinter(cmd.OutOrStdout()).PrintReport(report)
			}

			if !report.Succeeded() {
				return fmt.Errorf("behaviour %s ended in %s", report.Behaviour, report.Result)
			}
			return nil
		},
	}

	addSimFlags(cmd)
	cmd.Flags().Bool("realtime", false, "Use the wall clock instead of simulated time")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}
