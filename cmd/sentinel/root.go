package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for Sentinel.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentinel",
		Short: "On-device fraud detection agent simulator",
		Long: `Sentinel simulates a phone whose security agent scans what the user sees
(call transcripts, payment requests, messages, web pages and QR codes) and
warns about fraud, phishing and social engineering.

Verdicts come from Gemini when GEMINI_API_KEY (or API_KEY) is set.
Without a key, or with --offline, recorded verdicts are replayed for the
built-in scenarios and any other text gets the offline fallback verdict.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .sentinel in current, XDG config or home directory)")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewPhoneCmd())
	cmd.AddCommand(NewScenariosCmd())
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
