package trace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_SplitsOnBlankLines(t *testing.T) {
	input := `SET DC_KIND="AUTO";

SELECT 'Product'[Color]
FROM 'Product';


SELECT 'Sales'[Amount]
FROM 'Sales';
`

	statements, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, statements, 3)

	assert.Equal(t, `SET DC_KIND="AUTO";`, statements[0])
	assert.Equal(t, "SELECT 'Product'[Color]\nFROM 'Product';", statements[1])
	assert.Equal(t, "SELECT 'Sales'[Amount]\nFROM 'Sales';", statements[2])
}

func TestRead_CRLFAndWhitespaceBlocks(t *testing.T) {
	input := "SELECT 'T'[C]\r\nFROM 'T';\r\n\r\n   \r\n\r\nSELECT 'U'[D] FROM 'U';\r\n"

	statements, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, statements, 2)
	assert.Equal(t, "SELECT 'T'[C]\nFROM 'T';", statements[0])
}

func TestRead_Empty(t *testing.T) {
	statements, err := Read(strings.NewReader("\n\n  \n"))
	require.NoError(t, err)
	assert.Empty(t, statements)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.txt")
	require.NoError(t, os.WriteFile(path, []byte("SELECT 'T'[C] FROM 'T';\n"), 0o644))

	statements, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, "SELECT 'T'[C] FROM 'T';", statements[0])
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
