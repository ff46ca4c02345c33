package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/xmlens/pkg/xmsql"
)

func TestRenderTextEmptyAnalysis(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderAnalysis(buf, xmsql.NewAnalysis(), "table"))

	out := buf.String()
	assert.Contains(t, out, "0/0 statements parsed")
	assert.Contains(t, out, "(none)")
}

func TestRenderTextSections(t *testing.T) {
	analysis := xmsql.ParseStatements([]string{
		"SELECT 'Sales'[Amount], SUM ( 'Sales'[Quantity] ) FROM 'Sales' " +
			"LEFT OUTER JOIN 'Date' ON 'Sales'[DateKey]='Date'[DateKey] " +
			"WHERE 'Date'[Year] = 2024;",
	})

	buf := new(bytes.Buffer)
	require.NoError(t, renderAnalysis(buf, analysis, "table"))

	out := buf.String()
	assert.Contains(t, out, "Tables")
	assert.Contains(t, out, "Columns")
	assert.Contains(t, out, "Relationships")
	assert.Contains(t, out, "from, joined")
	assert.Contains(t, out, "joined")
	assert.Contains(t, out, "SUM")
	assert.Contains(t, out, "'Sales'[DateKey]")
	assert.Contains(t, out, "'Date'[DateKey]")
	assert.Contains(t, out, "LEFT OUTER")
}

func TestRenderJSONStable(t *testing.T) {
	analysis := xmsql.ParseStatements([]string{
		"SELECT 'B'[y], 'A'[x] FROM 'A' JOIN 'B'[y];",
	})

	buf := new(bytes.Buffer)
	require.NoError(t, renderAnalysis(buf, analysis, "json"))

	var report analysisReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	require.Len(t, report.Tables, 2)
	assert.Equal(t, "A", report.Tables[0].Name)
	assert.Equal(t, "B", report.Tables[1].Name)
	assert.Equal(t, 1, report.Summary.TotalStatements)
	assert.InDelta(t, 1.0, report.Summary.ParseRatio, 1e-9)
}

func TestRenderJSONEmptyAnalysis(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, renderAnalysis(buf, xmsql.NewAnalysis(), "json"))

	var report analysisReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.NotNil(t, report.Tables)
	assert.NotNil(t, report.Relationships)
}

func TestTableRoles(t *testing.T) {
	tests := []struct {
		name string
		info *xmsql.TableInfo
		want string
	}{
		{"from only", &xmsql.TableInfo{IsFromSource: true}, "from"},
		{"joined only", &xmsql.TableInfo{IsJoinedSource: true}, "joined"},
		{"both", &xmsql.TableInfo{IsFromSource: true, IsJoinedSource: true}, "from, joined"},
		{"neither", &xmsql.TableInfo{}, "referenced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tableRoles(tt.info))
		})
	}
}

func TestJoinLabel(t *testing.T) {
	assert.Equal(t, "JOIN", joinLabel(xmsql.JoinUnspecified))
	assert.Equal(t, "INNER", joinLabel(xmsql.JoinInner))
	assert.Equal(t, "LEFT OUTER", joinLabel(xmsql.JoinLeftOuter))
}
