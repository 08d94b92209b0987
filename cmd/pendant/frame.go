package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/pendant/internal/presentation/tui"
	"github.com/aretw0/pendant/pkg/protocol"
	"github.com/spf13/cobra"
)

func newFrameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frame <command> [hex payload]",
		Short: "Encode or decode a UART frame",
		Long: `Encodes a command frame from its name (alert, sleep, ...) or byte (0x10) and an optional
hex payload. With --decode the single argument is a complete frame in hex.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := tui.NewPrinter(cmd.OutOrStdout())

			if decode, _ := cmd.Flags().GetBool("decode"); decode {
				raw, err := parseHex(strings.Join(args, ""))
				if err != nil {
					return err
				}
				printer.PrintFrame(raw)
				return nil
			}

			cmdByte, err := parseCommand(args[0])
			if err != nil {
				return err
			}
			var payload []byte
			if len(args) == 2 {
				if payload, err = parseHex(args[1]); err != nil {
					return err
				}
			}

			magic := protocol.MagicCommand
			if event, _ := cmd.Flags().GetBool("event"); event {
				magic = protocol.MagicAwaiting
			}
			raw, err := protocol.Encode(magic, cmdByte, payload)
			if err != nil {
				return err
			}
			printer.PrintFrame(raw)
			return nil
		},
	}

	cmd.Flags().Bool("event", false, "Encode as a coprocessor event instead of a host command")
	cmd.Flags().Bool("decode", false, "Decode a hex frame instead of encoding one")
	return cmd
}

func parseCommand(s string) (byte, error) {
	if b, ok := protocol.CommandByName(s); ok {
		return b, nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown command %q", s)
	}
	return byte(n), nil
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.ReplaceAll(s, " ", ""), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return raw, nil
}
