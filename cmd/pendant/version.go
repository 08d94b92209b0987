package main

import (
	"fmt"

	"github.com/aretw0/pendant"
	"github.com/aretw0/pendant/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of pendant",
		Run: func(cmd *cobra.Command, args []string) {
			if banner, _ := cmd.Flags().GetBool("banner"); banner {
				tui.NewPrinter(cmd.OutOrStdout()).PrintBanner()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pendant version %s\n", pendant.Version)
		},
	}
	cmd.Flags().Bool("banner", false, "Print the banner before the version")
	return cmd
}
