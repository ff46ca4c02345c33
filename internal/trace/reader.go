// Package trace loads captured statement text from disk. Capture itself
// (event subscription, buffering) happens outside this tool; a capture
// file is simply the extracted statement texts separated by blank lines.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read splits a capture stream into statement texts. Statements are
// separated by one or more blank lines; line endings may be LF or CRLF.
// Blocks that are entirely whitespace are dropped.
func Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	// Statements can run long; the default 64K line limit is too tight
	// for wide projection lists.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var statements []string
	var block []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(block, "\n"))
		if text != "" {
			statements = append(statements, text)
		}
		block = block[:0]
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading capture: %w", err)
	}
	flush()

	return statements, nil
}

// ReadFile loads statement texts from a capture file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening capture file: %w", err)
	}
	defer f.Close()

	statements, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return statements, nil
}
