package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/pendant/pkg/adapters/sim"
	"github.com/aretw0/pendant/pkg/protocol"
	"github.com/spf13/cobra"
)

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("nak", nil, "Reject a command N times, e.g. --nak alert=2")
	cmd.Flags().Bool("silent", false, "Simulated coprocessor never answers")
	cmd.Flags().Int("boot-loop", 0, "Answer the first N wakes with ready_after_boot")
	cmd.Flags().Int("peer-reads", 0, "Peer reads reported after start_broadcast")
	cmd.Flags().Bool("no-broadcast-end", false, "Never report broadcast_ended")
}

func simOptions(cmd *cobra.Command, logger *slog.Logger) ([]sim.Option, error) {
	opts := []sim.Option{sim.WithLogger(logger)}

	naks, _ := cmd.Flags().GetStringArray("nak")
	for _, entry := range naks {
		cmdByte, n, err := parseNak(entry)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sim.WithNaks(cmdByte, n))
	}
	if silent, _ := cmd.Flags().GetBool("silent"); silent {
		opts = append(opts, sim.WithSilence())
	}
	if n, _ := cmd.Flags().GetInt("boot-loop"); n > 0 {
		opts = append(opts, sim.WithBootLoop(n))
	}
	if n, _ := cmd.Flags().GetInt("peer-reads"); n > 0 {
		opts = append(opts, sim.WithPeerReads(n))
	}
	if noEnd, _ := cmd.Flags().GetBool("no-broadcast-end"); noEnd {
		opts = append(opts, sim.WithBroadcastEnd(false))
	}
	return opts, nil
}

// parseNak reads "command=count"; the count defaults to 1.
func parseNak(entry string) (byte, int, error) {
	name, count, hasCount := strings.Cut(entry, "=")
	cmdByte, ok := protocol.CommandByName(strings.TrimSpace(name))
	if !ok {
		return 0, 0, fmt.Errorf("unknown command %q in --nak", name)
	}
	if !hasCount {
		return cmdByte, 1, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("invalid count %q in --nak %s", count, entry)
	}
	return cmdByte, n, nil
}
