// Package main provides the entry point for the webscanner CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for webscanner.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webscanner",
		Short: "Discover web hosts and report their page titles",
		Long: `webscanner scans a target range for open HTTP ports, fetches each
responding host's front page, and reports the page titles.

Targets can be a single IP, a CIDR block, an IP range, a pre-built
list file, or an ASN prefix table in JSON form. Port discovery uses
masscan and response grabbing uses zgrab2; both must be installed on
PATH or placed in the workspace bin/ directory.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
