package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runExtractCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewExtractCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestExtractCommand(t *testing.T) {
	out, err := runExtractCommand(t, "'Sales Territory'[Territory Name]")
	require.NoError(t, err)
	assert.Contains(t, out, "table:  Sales Territory")
	assert.Contains(t, out, "column: Territory Name")
}

func TestExtractCommandTableOnly(t *testing.T) {
	out, err := runExtractCommand(t, "--table", "'Sales'[Amount]")
	require.NoError(t, err)
	assert.Equal(t, "Sales\n", out)
}

func TestExtractCommandColumnOnly(t *testing.T) {
	out, err := runExtractCommand(t, "--column", "'Sales'[Amount]")
	require.NoError(t, err)
	assert.Equal(t, "Amount\n", out)
}

func TestExtractCommandEscapedQuotes(t *testing.T) {
	out, err := runExtractCommand(t, "--table", "'O''Brien Sales'[Amount]")
	require.NoError(t, err)
	assert.Equal(t, "O'Brien Sales\n", out)
}

func TestExtractCommandMalformedReference(t *testing.T) {
	_, err := runExtractCommand(t, "not a reference")
	assert.Error(t, err)
}

func TestExtractCommandMutuallyExclusiveFlags(t *testing.T) {
	_, err := runExtractCommand(t, "--table", "--column", "'Sales'[Amount]")
	assert.Error(t, err)
}
