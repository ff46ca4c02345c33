package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/xmlens/pkg/xmsql"
)

var sectionStyle = lipgloss.NewStyle().Bold(true)

// renderAnalysis writes the aggregate in the requested format.
func renderAnalysis(w io.Writer, analysis *xmsql.Analysis, format string) error {
	if format == "json" {
		return renderJSON(w, analysis)
	}
	renderText(w, analysis)
	return nil
}

// renderText writes the summary, table, column, and relationship sections.
func renderText(w io.Writer, analysis *xmsql.Analysis) {
	fmt.Fprintf(w, "%s %d/%d statements parsed (%.0f%%)\n\n",
		sectionStyle.Render("Summary:"),
		analysis.ParsedStatements, analysis.TotalStatements, analysis.ParseRatio()*100)

	renderTables(w, analysis)
	fmt.Fprintln(w)
	renderColumns(w, analysis)
	fmt.Fprintln(w)
	renderRelationships(w, analysis)
}

func renderTables(w io.Writer, analysis *xmsql.Analysis) {
	fmt.Fprintln(w, sectionStyle.Render("Tables"))
	if len(analysis.Tables) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"TABLE", "ROLES", "COLUMNS", "HITS"})

	for _, name := range analysis.TableNames() {
		ti := analysis.Tables[name]
		t.AppendRow(table.Row{ti.Name, tableRoles(ti), len(ti.Columns), ti.HitCount})
	}
	t.Render()
}

func renderColumns(w io.Writer, analysis *xmsql.Analysis) {
	fmt.Fprintln(w, sectionStyle.Render("Columns"))
	if len(analysis.Tables) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"TABLE", "COLUMN", "USAGE", "AGGREGATIONS", "HITS"})

	for _, name := range analysis.TableNames() {
		ti := analysis.Tables[name]
		for _, colName := range ti.ColumnNames() {
			c := ti.Columns[colName]
			t.AppendRow(table.Row{
				ti.Name, c.Name, c.UsageKinds.String(),
				strings.Join(c.AggregationNames(), ", "), c.HitCount,
			})
		}
	}
	t.Render()
}

func renderRelationships(w io.Writer, analysis *xmsql.Analysis) {
	fmt.Fprintln(w, sectionStyle.Render("Relationships"))
	if len(analysis.Relationships) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"FROM", "TO", "JOIN", "HITS"})

	for _, rel := range analysis.Relationships {
		t.AppendRow(table.Row{
			qualifiedName(rel.FromTable, rel.FromColumn),
			qualifiedName(rel.ToTable, rel.ToColumn),
			joinLabel(rel.JoinType),
			rel.HitCount,
		})
	}
	t.Render()
}

// tableRoles describes the roles a table played in the workload.
func tableRoles(ti *xmsql.TableInfo) string {
	switch {
	case ti.IsFromSource && ti.IsJoinedSource:
		return "from, joined"
	case ti.IsFromSource:
		return "from"
	case ti.IsJoinedSource:
		return "joined"
	default:
		return "referenced"
	}
}

func qualifiedName(tableName, columnName string) string {
	return fmt.Sprintf("'%s'[%s]", tableName, columnName)
}

func joinLabel(jt xmsql.JoinType) string {
	if jt == xmsql.JoinUnspecified {
		return "JOIN"
	}
	return string(jt)
}

// JSON report shapes. Maps become sorted slices so output is stable.
type analysisReport struct {
	Summary       summaryReport        `json:"summary"`
	Tables        []tableReport        `json:"tables"`
	Relationships []relationshipReport `json:"relationships"`
}

type summaryReport struct {
	TotalStatements  int     `json:"total_statements"`
	ParsedStatements int     `json:"parsed_statements"`
	ParseRatio       float64 `json:"parse_ratio"`
}

type tableReport struct {
	Name           string         `json:"name"`
	IsFromSource   bool           `json:"is_from_source"`
	IsJoinedSource bool           `json:"is_joined_source"`
	HitCount       int            `json:"hit_count"`
	Columns        []columnReport `json:"columns"`
}

type columnReport struct {
	Name                 string   `json:"name"`
	UsageKinds           string   `json:"usage_kinds"`
	AggregationFunctions []string `json:"aggregation_functions,omitempty"`
	HitCount             int      `json:"hit_count"`
}

type relationshipReport struct {
	FromTable  string `json:"from_table"`
	FromColumn string `json:"from_column"`
	ToTable    string `json:"to_table"`
	ToColumn   string `json:"to_column"`
	JoinType   string `json:"join_type"`
	HitCount   int    `json:"hit_count"`
}

func renderJSON(w io.Writer, analysis *xmsql.Analysis) error {
	report := analysisReport{
		Summary: summaryReport{
			TotalStatements:  analysis.TotalStatements,
			ParsedStatements: analysis.ParsedStatements,
			ParseRatio:       analysis.ParseRatio(),
		},
		Tables:        []tableReport{},
		Relationships: []relationshipReport{},
	}

	for _, name := range analysis.TableNames() {
		ti := analysis.Tables[name]
		tr := tableReport{
			Name:           ti.Name,
			IsFromSource:   ti.IsFromSource,
			IsJoinedSource: ti.IsJoinedSource,
			HitCount:       ti.HitCount,
			Columns:        []columnReport{},
		}
		for _, colName := range ti.ColumnNames() {
			c := ti.Columns[colName]
			tr.Columns = append(tr.Columns, columnReport{
				Name:                 c.Name,
				UsageKinds:           c.UsageKinds.String(),
				AggregationFunctions: c.AggregationNames(),
				HitCount:             c.HitCount,
			})
		}
		report.Tables = append(report.Tables, tr)
	}

	for _, rel := range analysis.Relationships {
		report.Relationships = append(report.Relationships, relationshipReport{
			FromTable:  rel.FromTable,
			FromColumn: rel.FromColumn,
			ToTable:    rel.ToTable,
			ToColumn:   rel.ToColumn,
			JoinType:   joinLabel(rel.JoinType),
			HitCount:   rel.HitCount,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
