package xmsql

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS for SQL token conventions
const (
	// TokenEOF represents end of input.
	TOKEN_EOF TokenType = iota
	// TokenIllegal represents an illegal/unrecognized token.
	TOKEN_ILLEGAL

	// TokenIdent represents a bare identifier (function names, SET options,
	// unquoted internal table names such as $TTable1).
	TOKEN_IDENT
	// TokenNumber represents a numeric literal.
	TOKEN_NUMBER // 123, 45.67, -8
	// TokenString represents a double-quoted string value.
	TOKEN_STRING // "AUTO"
	// TokenTable represents a single-quoted table name.
	TOKEN_TABLE // 'Sales Territory'
	// TokenColumn represents a bracketed column name.
	TOKEN_COLUMN // [Territory Name]

	TOKEN_EQ        // =
	TOKEN_NE        // <>
	TOKEN_LT        // <
	TOKEN_GT        // >
	TOKEN_LE        // <=
	TOKEN_GE        // >=
	TOKEN_ASSIGN    // :=
	TOKEN_COMMA     // ,
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_SEMICOLON // ;
	TOKEN_DOT       // .

	// Keywords (alphabetical). xmSQL keywords are emitted uppercase and
	// matched case-sensitively; lowercase spellings lex as identifiers.
	TOKEN_AND
	TOKEN_DEFINE
	TOKEN_FROM
	TOKEN_IN
	TOKEN_INNER
	TOKEN_JOIN
	TOKEN_LEFT
	TOKEN_NIN
	TOKEN_ON
	TOKEN_OR
	TOKEN_OUTER
	TOKEN_SELECT
	TOKEN_SET
	TOKEN_TABLEKW
	TOKEN_VAND
	TOKEN_WHERE
)

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position represents a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	TOKEN_EOF:     "EOF",
	TOKEN_ILLEGAL: "ILLEGAL",

	TOKEN_IDENT:  "IDENT",
	TOKEN_NUMBER: "NUMBER",
	TOKEN_STRING: "STRING",
	TOKEN_TABLE:  "TABLE-NAME",
	TOKEN_COLUMN: "COLUMN-NAME",

	TOKEN_EQ:        "=",
	TOKEN_NE:        "<>",
	TOKEN_LT:        "<",
	TOKEN_GT:        ">",
	TOKEN_LE:        "<=",
	TOKEN_GE:        ">=",
	TOKEN_ASSIGN:    ":=",
	TOKEN_COMMA:     ",",
	TOKEN_LPAREN:    "(",
	TOKEN_RPAREN:    ")",
	TOKEN_SEMICOLON: ";",
	TOKEN_DOT:       ".",

	TOKEN_AND:     "AND",
	TOKEN_DEFINE:  "DEFINE",
	TOKEN_FROM:    "FROM",
	TOKEN_IN:      "IN",
	TOKEN_INNER:   "INNER",
	TOKEN_JOIN:    "JOIN",
	TOKEN_LEFT:    "LEFT",
	TOKEN_NIN:     "NIN",
	TOKEN_ON:      "ON",
	TOKEN_OR:      "OR",
	TOKEN_OUTER:   "OUTER",
	TOKEN_SELECT:  "SELECT",
	TOKEN_SET:     "SET",
	TOKEN_TABLEKW: "TABLE",
	TOKEN_VAND:    "VAND",
	TOKEN_WHERE:   "WHERE",
}

// keywords maps keyword spellings to their token types. Matching is
// case-sensitive: the trace emits keywords uppercase, and a lowercase
// "select" is a legal identifier, not a keyword.
var keywords = map[string]TokenType{
	"AND":    TOKEN_AND,
	"DEFINE": TOKEN_DEFINE,
	"FROM":   TOKEN_FROM,
	"IN":     TOKEN_IN,
	"INNER":  TOKEN_INNER,
	"JOIN":   TOKEN_JOIN,
	"LEFT":   TOKEN_LEFT,
	"NIN":    TOKEN_NIN,
	"ON":     TOKEN_ON,
	"OR":     TOKEN_OR,
	"OUTER":  TOKEN_OUTER,
	"SELECT": TOKEN_SELECT,
	"SET":    TOKEN_SET,
	"TABLE":  TOKEN_TABLEKW,
	"VAND":   TOKEN_VAND,
	"WHERE":  TOKEN_WHERE,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword, the keyword token type is returned.
// Otherwise, TOKEN_IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENT
}
