// Package xmsql parses the textual query representation a tabular storage
// engine emits in its trace events, and accumulates the tables, columns,
// and relationships a workload touches into an Analysis.
//
// # Parser Architecture
//
//   - token.go: token types and the case-sensitive keyword table
//   - lexer.go: byte-at-a-time lexer ('tables', [columns], "values")
//   - ident.go: stateless reference-splitting utilities
//   - parser.go (this file): clause parser producing StatementFacts
//   - facts.go: per-statement facts and usage-kind bitset
//   - analysis.go: cross-statement accumulator and batch driver
//
// # Usage
//
//	analysis := xmsql.ParseStatements(statements)
//	for _, name := range analysis.TableNames() {
//	    t := analysis.Tables[name]
//	    fmt.Printf("%s: %d hits\n", t.Name, t.HitCount)
//	}
//
// # Grammar Overview
//
// The parser recognizes the subset of the dialect needed to classify usage:
//
//	statement  → {SET option=value;} {DEFINE TABLE 'name' :=} scan
//	scan       → SELECT proj-list FROM table {join} [WHERE predicates] [;]
//	proj-list  → item {, item}
//	item       → 'Table'[Column] | FUNC ( 'Table'[Column] )
//	join       → [INNER | LEFT OUTER] JOIN table ( [Column] | ON ref=ref )
//	predicates → ref op value {(AND|VAND|OR) ref op value}
//
// Anything the grammar does not cover is skipped tolerantly; a statement is
// rejected only when no SELECT...FROM shape can be located at all.
package xmsql

import (
	"fmt"
	"strings"
)

// Parser parses one xmSQL statement into StatementFacts.
type Parser struct {
	lexer *Lexer
	token Token // current token
	peek  Token // lookahead token
}

// NewParser creates a new parser for the given statement text.
func NewParser(text string) *Parser {
	p := &Parser{
		lexer: NewLexer(text),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// ParseFacts parses one statement's text into its per-statement facts.
// Parsing is all-or-nothing: on error no partial facts are returned.
func ParseFacts(text string) (*StatementFacts, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Message: ErrEmptyStatement}
	}
	p := NewParser(text)
	return p.parseStatement()
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// errorf builds a ParseError at the current token.
func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// isTableToken returns true if the current token can name a table.
// Quoted names are the normal case; bare identifiers cover the internal
// aliases the engine emits unquoted ($TTable1).
func (p *Parser) isTableToken() bool {
	return p.check(TOKEN_TABLE) || p.check(TOKEN_IDENT)
}

// ---------- Statement ----------

// parseStatement parses one full statement.
func (p *Parser) parseStatement() (*StatementFacts, error) {
	p.skipPreamble()

	if !p.match(TOKEN_SELECT) {
		return nil, p.errorf(ErrNoSelect)
	}

	facts := newStatementFacts()
	p.parseProjection(facts)

	if !p.match(TOKEN_FROM) {
		return nil, p.errorf(ErrNoFromSource)
	}
	if !p.isTableToken() {
		return nil, p.errorf(ErrUnexpectedToken, p.token.Type, TOKEN_TABLE)
	}
	facts.markFromSource(p.token.Literal)
	p.nextToken()

	for {
		switch {
		case p.check(TOKEN_INNER), p.check(TOKEN_LEFT), p.check(TOKEN_JOIN):
			p.parseJoin(facts)
		case p.check(TOKEN_WHERE):
			p.nextToken()
			p.parseWhere(facts)
		case p.check(TOKEN_SEMICOLON), p.check(TOKEN_EOF):
			return facts, nil
		default:
			// Unrecognized trailing construct; skip it.
			p.nextToken()
		}
	}
}

// skipPreamble discards SET option=value; control statements and
// DEFINE TABLE 'name' := headers. The body following a DEFINE header is
// still parsed for facts; only the generated alias is dropped.
func (p *Parser) skipPreamble() {
	for {
		switch {
		case p.check(TOKEN_SET):
			for !p.check(TOKEN_SEMICOLON) && !p.check(TOKEN_EOF) {
				p.nextToken()
			}
			p.match(TOKEN_SEMICOLON)
		case p.check(TOKEN_DEFINE):
			p.nextToken()
			p.match(TOKEN_TABLEKW)
			if p.isTableToken() {
				p.nextToken()
			}
			p.match(TOKEN_ASSIGN)
		default:
			return
		}
	}
}

// ---------- Projection ----------

// parseProjection parses the SELECT list up to FROM. Items are either bare
// qualified references or an aggregation function wrapping one reference.
func (p *Parser) parseProjection(facts *StatementFacts) {
	for !p.check(TOKEN_FROM) && !p.check(TOKEN_EOF) {
		switch {
		case p.isTableToken() && p.checkPeek(TOKEN_COLUMN):
			table, column := p.token.Literal, p.peek.Literal
			p.nextToken()
			p.nextToken()
			facts.touchColumn(table, column, UsageSelect)
		case p.check(TOKEN_IDENT) && p.checkPeek(TOKEN_LPAREN):
			p.parseAggregation(facts)
		default:
			// Comma separators and anything the grammar does not cover.
			p.nextToken()
		}
	}
}

// parseAggregation parses FUNC ( 'Table'[Column] ), tagging the wrapped
// reference Select|Aggregate and recording the function name.
func (p *Parser) parseAggregation(facts *StatementFacts) {
	fn := p.token.Literal
	p.nextToken() // function name
	p.nextToken() // '('

	depth := 1
	for depth > 0 && !p.check(TOKEN_EOF) {
		switch {
		case p.check(TOKEN_LPAREN):
			depth++
			p.nextToken()
		case p.check(TOKEN_RPAREN):
			depth--
			p.nextToken()
		case p.isTableToken() && p.checkPeek(TOKEN_COLUMN):
			table, column := p.token.Literal, p.peek.Literal
			p.nextToken()
			p.nextToken()
			facts.touchColumn(table, column, UsageSelect|UsageAggregate)
			facts.recordAggregation(table, column, fn)
		default:
			p.nextToken()
		}
	}
}

// ---------- Joins ----------

// parseJoin parses one JOIN clause in either of the two accepted forms:
//
//	bracket form:   LEFT OUTER JOIN 'Table'[Column]
//	predicate form: LEFT OUTER JOIN 'Table' ON 'A'[x]='B'[y]
//
// The bracket form announces a join target without a predicate, so it
// yields no relationship.
func (p *Parser) parseJoin(facts *StatementFacts) {
	joinType := JoinUnspecified
	switch {
	case p.match(TOKEN_INNER):
		joinType = JoinInner
	case p.match(TOKEN_LEFT):
		p.match(TOKEN_OUTER)
		joinType = JoinLeftOuter
	}

	if !p.match(TOKEN_JOIN) {
		// A stray INNER/LEFT with no JOIN; leave the aggregate untouched.
		return
	}
	if !p.isTableToken() {
		return
	}
	target := p.token.Literal
	p.nextToken()

	facts.markJoinedSource(target)

	if p.check(TOKEN_COLUMN) {
		// Bracket form: the named column is the join column.
		facts.touchColumn(target, p.token.Literal, UsageJoin)
		p.nextToken()
		return
	}

	if !p.match(TOKEN_ON) {
		return
	}

	fromTable, fromColumn, ok := p.parseQualifiedRef()
	if !ok {
		return
	}
	if !p.match(TOKEN_EQ) {
		return
	}
	toTable, toColumn, ok := p.parseQualifiedRef()
	if !ok {
		return
	}

	facts.touchColumn(fromTable, fromColumn, UsageJoin)
	facts.touchColumn(toTable, toColumn, UsageJoin)
	facts.addRelationship(RelationshipFact{
		FromTable:  fromTable,
		FromColumn: fromColumn,
		ToTable:    toTable,
		ToColumn:   toColumn,
		Type:       joinType,
	})
}

// parseQualifiedRef consumes a 'Table'[Column] pair.
func (p *Parser) parseQualifiedRef() (table, column string, ok bool) {
	if !p.isTableToken() || !p.checkPeek(TOKEN_COLUMN) {
		return "", "", false
	}
	table, column = p.token.Literal, p.peek.Literal
	p.nextToken()
	p.nextToken()
	return table, column, true
}

// ---------- WHERE ----------

// parseWhere parses the predicate list. Every qualified reference in the
// predicates gets usage Filter; operators and value lists only need to be
// skipped.
func (p *Parser) parseWhere(facts *StatementFacts) {
	for !p.check(TOKEN_EOF) && !p.check(TOKEN_SEMICOLON) {
		if p.isTableToken() && p.checkPeek(TOKEN_COLUMN) {
			table, column := p.token.Literal, p.peek.Literal
			p.nextToken()
			p.nextToken()
			facts.touchColumn(table, column, UsageFilter)
			continue
		}
		// Operators, values, parenthesized value lists, connectives.
		p.nextToken()
	}
}
