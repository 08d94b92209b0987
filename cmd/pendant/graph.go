package main

import (
	"fmt"

	"github.com/aretw0/pendant"
	"github.com/aretw0/pendant/internal/presentation/graph"
	"github.com/aretw0/pendant/pkg/adapters/memory"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <behaviour>",
		Short: "Print the sequence table of a behaviour as a Mermaid graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			dev, err := pendant.New(memory.NewLink(), pendant.WithConfig(cfg))
			if err != nil {
				return err
			}
			table, err := dev.Table(args[0])
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(table, nil))
			return nil
		},
	}
}
