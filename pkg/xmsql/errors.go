package xmsql

import "fmt"

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrEmptyStatement  = "empty statement"
	ErrNoSelect        = "no SELECT clause found"
	ErrNoFromSource    = "no FROM source found"
	ErrUnexpectedToken = "unexpected token %s, expected %s"
)
