package main

import (
	"os"

	"github.com/jsvensson/chromakit/internal/lsp"
	"github.com/spf13/cobra"
)

var (
	flagVerbosity int
	flagLogFile   string
	version       = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:           "chromakit-lsp",
	Short:         "Language server for chromakit palette files",
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var logPath *string
		if flagLogFile != "" {
			logPath = &flagLogFile
		}
		return lsp.NewServer(version).Run(flagVerbosity, logPath)
	},
}

func init() {
	rootCmd.Flags().IntVar(&flagVerbosity, "verbosity", 1, "log verbosity (0 is quiet)")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "write logs to this file instead of stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
