package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for phishscore.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phishscore",
		Short: "Phishing confidence scoring for URLs",
		Long: `phishscore assigns a confidence score to a URL: 100 means the URL looks
legitimate, 0 means it shows many phishing traits. The score comes from
lexical heuristics (keywords, IP hosts, homoglyph domains, entropy and
credential-bearing query parameters), optionally blended with a local
classifier exported to model.json.

Scans are appended to a local SQLite database so that history and user
reports can be reviewed later. The same engine can be served over HTTP.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .phishscore in current or home directory)")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewServeCmd())
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
