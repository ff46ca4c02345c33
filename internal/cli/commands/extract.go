package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/xmlens/pkg/xmsql"
)

// ExtractOptions holds options for the extract command.
type ExtractOptions struct {
	TableOnly  bool
	ColumnOnly bool
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <reference>",
		Short: "Split a qualified reference into table and column",
		Long: `Split a bracketed reference of the form 'Table Name'[Column Name] into
its table and column parts.`,
		Example: `  xmlens extract "'Sales Territory'[Territory Name]"
  xmlens extract --table "'Sales'[Amount]"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.TableOnly, "table", false, "Print only the table part")
	cmd.Flags().BoolVar(&opts.ColumnOnly, "column", false, "Print only the column part")

	return cmd
}

func runExtract(cmd *cobra.Command, ref string, opts *ExtractOptions) error {
	tableName := xmsql.ExtractTableName(ref)
	columnName := xmsql.ExtractColumnName(ref)
	if tableName == "" || columnName == "" {
		return fmt.Errorf("malformed reference %q (expected 'Table'[Column])", ref)
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.TableOnly && opts.ColumnOnly:
		return fmt.Errorf("--table and --column are mutually exclusive")
	case opts.TableOnly:
		fmt.Fprintln(out, tableName)
	case opts.ColumnOnly:
		fmt.Fprintln(out, columnName)
	default:
		fmt.Fprintf(out, "table:  %s\ncolumn: %s\n", tableName, columnName)
	}
	return nil
}
