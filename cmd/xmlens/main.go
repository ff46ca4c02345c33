// Package main provides the CLI for xmlens, a storage engine trace analyzer.
package main

import (
	"os"

	"github.com/leapstack-labs/xmlens/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
