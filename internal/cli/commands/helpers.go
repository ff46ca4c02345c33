package commands

import (
	"os"
	"strconv"

	"github.com/leapstack-labs/xmlens/internal/cli/config"
	"github.com/leapstack-labs/xmlens/internal/trace"
	"github.com/leapstack-labs/xmlens/pkg/xmsql"
)

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	output := getEnvOrDefault("XMLENS_OUTPUT", config.DefaultOutput)
	verbose := os.Getenv("XMLENS_VERBOSE") == "true"
	ratio := config.DefaultMinParseRatio
	if v, err := strconv.ParseFloat(os.Getenv("XMLENS_MIN_PARSE_RATIO"), 64); err == nil {
		ratio = v
	}

	return &config.Config{
		Output:        output,
		Verbose:       verbose,
		MinParseRatio: ratio,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// analyzeFiles loads every capture file and folds all statements into one
// aggregate.
func analyzeFiles(paths []string) (*xmsql.Analysis, error) {
	analysis := xmsql.NewAnalysis()
	for _, path := range paths {
		statements, err := trace.ReadFile(path)
		if err != nil {
			return nil, err
		}
		analysis.Merge(xmsql.ParseStatements(statements))
	}
	return analysis, nil
}
