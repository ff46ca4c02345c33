// Package cli provides the command-line interface for xmlens.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/xmlens/internal/cli/commands"
	"github.com/leapstack-labs/xmlens/internal/cli/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xmlens",
		Short: "xmlens - Storage Engine Trace Analyzer",
		Long: `xmlens reconstructs the logical schema a workload touches from the xmSQL
statement text a tabular storage engine emits in its trace events.

Feed it captured statement text and it reports which tables were scanned
or joined, which columns were selected, filtered, joined on, or
aggregated, and which relationships the engine traversed, each with hit
counts accumulated across the whole capture.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			ctx := context.WithValue(cmd.Context(), config.LoggerKey(), logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: xmlens.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", config.DefaultOutput, "Output format (table|json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Float64("min-parse-ratio", config.DefaultMinParseRatio,
		"Warn when parsed/total statement ratio falls below this value")

	rootCmd.AddCommand(
		commands.NewAnalyzeCommand(),
		commands.NewWatchCommand(),
		commands.NewExtractCommand(),
		commands.NewVersionCommand(Version),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
