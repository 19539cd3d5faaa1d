// Package main provides the entry point for the subscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for subscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscan",
		Short: "Subscription URL and proxy node latency tester",
		Long: `Subscan scans text for subscription URLs, checks which ones still work,
parses the proxy configurations they serve (Clash YAML, V2Ray JSON,
vmess/vless/trojan/ss/ssr links, and plain host:port lists), and measures
the HTTP latency of every node found.

Results are written as two markdown reports: working subscription URLs
sorted by latency, and per-node latencies sorted by host and port.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
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
