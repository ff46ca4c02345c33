package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/xmlens/internal/cli/config"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <capture-file>...",
		Short: "Analyze captured xmSQL statements",
		Long: `Parse the xmSQL statements in one or more capture files and report the
tables, columns, and relationships the workload touched.

A capture file contains statement texts separated by blank lines, the
shape a trace export produces.`,
		Example: `  # Analyze one capture
  xmlens analyze timings.txt

  # Combine several captures into one report
  xmlens analyze monday.txt tuesday.txt

  # Machine-readable output
  xmlens analyze timings.txt --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args)
		},
	}
}

func runAnalyze(cmd *cobra.Command, paths []string) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	analysis, err := analyzeFiles(paths)
	if err != nil {
		return err
	}

	logger.Debug("capture analyzed",
		"files", len(paths),
		"statements", analysis.TotalStatements,
		"parsed", analysis.ParsedStatements,
		"tables", len(analysis.Tables),
		"relationships", len(analysis.Relationships))

	if analysis.TotalStatements > 0 && analysis.ParseRatio() < cfg.MinParseRatio {
		logger.Warn("low parse ratio; the capture may contain statement shapes this tool does not classify",
			"parsed", analysis.ParsedStatements,
			"total", analysis.TotalStatements,
			"threshold", cfg.MinParseRatio)
	}

	return renderAnalysis(cmd.OutOrStdout(), analysis, cfg.Output)
}
