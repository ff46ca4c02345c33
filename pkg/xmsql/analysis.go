package xmsql

import "sort"

// TableInfo is the accumulated usage of one table across all statements.
type TableInfo struct {
	Name           string
	IsFromSource   bool // ever the FROM target of a statement
	IsJoinedSource bool // ever the target of a JOIN clause
	HitCount       int  // distinct statements referencing this table
	Columns        map[string]*ColumnInfo
}

// ColumnInfo is the accumulated usage of one column within its table.
type ColumnInfo struct {
	Name                 string
	UsageKinds           UsageKind
	AggregationFunctions map[string]struct{}
	HitCount             int // textual references across all statements
}

// HasAggregation reports whether fn was ever applied to this column.
func (c *ColumnInfo) HasAggregation(fn string) bool {
	_, ok := c.AggregationFunctions[fn]
	return ok
}

// AggregationNames returns the aggregation functions sorted for stable output.
func (c *ColumnInfo) AggregationNames() []string {
	names := make([]string, 0, len(c.AggregationFunctions))
	for fn := range c.AggregationFunctions {
		names = append(names, fn)
	}
	sort.Strings(names)
	return names
}

// RelationshipInfo is one accumulated join edge. Identity is the exact
// five-tuple as written in the source text; A=B and B=A are distinct edges.
type RelationshipInfo struct {
	FromTable  string
	FromColumn string
	ToTable    string
	ToColumn   string
	JoinType   JoinType
	HitCount   int // statements that produced this exact edge
}

// Analysis is the schema-usage aggregate for one analysis session. It is a
// plain mutable structure owned by its creator; it is not safe for
// concurrent mutation. Parallel callers should parse into separate
// aggregates and fold them with Merge.
type Analysis struct {
	Tables        map[string]*TableInfo
	Relationships []*RelationshipInfo // first-seen order

	// TotalStatements counts parse attempts, successful or not.
	TotalStatements int
	// ParsedStatements counts attempts that yielded a valid FROM source.
	ParsedStatements int
}

// NewAnalysis creates an empty aggregate.
func NewAnalysis() *Analysis {
	return &Analysis{
		Tables: make(map[string]*TableInfo),
	}
}

// TableNames returns table names sorted for stable iteration.
func (a *Analysis) TableNames() []string {
	names := make([]string, 0, len(a.Tables))
	for name := range a.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ColumnNames returns the table's column names sorted for stable iteration.
func (t *TableInfo) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for name := range t.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseRatio returns ParsedStatements / TotalStatements, or 1 when nothing
// was analyzed yet.
func (a *Analysis) ParseRatio() float64 {
	if a.TotalStatements == 0 {
		return 1
	}
	return float64(a.ParsedStatements) / float64(a.TotalStatements)
}

// table looks up or creates a TableInfo.
func (a *Analysis) table(name string) *TableInfo {
	t, ok := a.Tables[name]
	if !ok {
		t = &TableInfo{
			Name:    name,
			Columns: make(map[string]*ColumnInfo),
		}
		a.Tables[name] = t
	}
	return t
}

// column looks up or creates a ColumnInfo under its table.
func (a *Analysis) column(table, name string) *ColumnInfo {
	t := a.table(table)
	c, ok := t.Columns[name]
	if !ok {
		c = &ColumnInfo{Name: name}
		t.Columns[name] = c
	}
	return c
}

// relationship looks up or creates the edge with the exact identity tuple.
func (a *Analysis) relationship(fromTable, fromColumn, toTable, toColumn string, joinType JoinType) *RelationshipInfo {
	for _, r := range a.Relationships {
		if r.FromTable == fromTable && r.FromColumn == fromColumn &&
			r.ToTable == toTable && r.ToColumn == toColumn && r.JoinType == joinType {
			return r
		}
	}
	r := &RelationshipInfo{
		FromTable:  fromTable,
		FromColumn: fromColumn,
		ToTable:    toTable,
		ToColumn:   toColumn,
		JoinType:   joinType,
	}
	a.Relationships = append(a.Relationships, r)
	return r
}

// accumulate merges one statement's facts into the aggregate. Role flags
// OR in, usage kinds and aggregation functions union, and hit counters only
// ever grow, so folding is associative and commutative.
func (a *Analysis) accumulate(facts *StatementFacts) {
	for _, name := range facts.tableSeq {
		fact := facts.tables[name]
		t := a.table(name)
		t.IsFromSource = t.IsFromSource || fact.fromSource
		t.IsJoinedSource = t.IsJoinedSource || fact.joinedSource
		t.HitCount++ // once per statement, however many clauses touched it
	}

	for _, key := range facts.colSeq {
		fact := facts.columns[key]
		c := a.column(key.Table, key.Column)
		c.UsageKinds |= fact.kinds
		c.HitCount += fact.hits
		for fn := range fact.funcs {
			if c.AggregationFunctions == nil {
				c.AggregationFunctions = make(map[string]struct{})
			}
			c.AggregationFunctions[fn] = struct{}{}
		}
	}

	for _, rel := range facts.rels {
		a.relationship(rel.FromTable, rel.FromColumn, rel.ToTable, rel.ToColumn, rel.Type).HitCount++
	}
}

// Merge folds another aggregate into this one using the same union/sum
// rules as statement accumulation, for callers that parsed statement
// shards into separate aggregates in parallel.
func (a *Analysis) Merge(other *Analysis) {
	if other == nil {
		return
	}

	for _, name := range other.TableNames() {
		ot := other.Tables[name]
		t := a.table(name)
		t.IsFromSource = t.IsFromSource || ot.IsFromSource
		t.IsJoinedSource = t.IsJoinedSource || ot.IsJoinedSource
		t.HitCount += ot.HitCount

		for _, colName := range ot.ColumnNames() {
			oc := ot.Columns[colName]
			c := a.column(name, colName)
			c.UsageKinds |= oc.UsageKinds
			c.HitCount += oc.HitCount
			for fn := range oc.AggregationFunctions {
				if c.AggregationFunctions == nil {
					c.AggregationFunctions = make(map[string]struct{})
				}
				c.AggregationFunctions[fn] = struct{}{}
			}
		}
	}

	for _, or := range other.Relationships {
		a.relationship(or.FromTable, or.FromColumn, or.ToTable, or.ToColumn, or.JoinType).HitCount += or.HitCount
	}

	a.TotalStatements += other.TotalStatements
	a.ParsedStatements += other.ParsedStatements
}

// ParseStatement parses one statement and merges its facts into the given
// aggregate, returning whether parsing succeeded. Empty input returns
// false with the aggregate fully untouched; a non-empty statement with no
// SELECT...FROM shape counts as an attempt but contributes no facts.
func ParseStatement(text string, a *Analysis) bool {
	if text == "" {
		return false
	}

	facts, err := ParseFacts(text)
	if err != nil {
		if perr, ok := err.(*ParseError); ok && perr.Message == ErrEmptyStatement {
			return false
		}
		a.TotalStatements++
		return false
	}

	a.TotalStatements++
	a.ParsedStatements++
	a.accumulate(facts)
	return true
}

// ParseStatements parses a batch of statements into a fresh aggregate.
// Individual statement failures only affect the counters.
func ParseStatements(texts []string) *Analysis {
	a := NewAnalysis()
	for _, text := range texts {
		ParseStatement(text, a)
	}
	return a
}
