package xmsql

import "strings"

// UsageKind is a bitset classifying why a column was referenced.
type UsageKind uint8

const (
	// UsageSelect marks a column appearing in a SELECT projection list.
	UsageSelect UsageKind = 1 << iota
	// UsageFilter marks a column used as the left operand of a WHERE predicate.
	UsageFilter
	// UsageJoin marks a column used in a JOIN clause.
	UsageJoin
	// UsageAggregate marks a column wrapped by an aggregation function.
	UsageAggregate
)

// Has reports whether all bits of kind are set.
func (k UsageKind) Has(kind UsageKind) bool {
	return k&kind == kind
}

// String returns a pipe-separated list of the set kinds.
func (k UsageKind) String() string {
	var parts []string
	if k.Has(UsageSelect) {
		parts = append(parts, "Select")
	}
	if k.Has(UsageFilter) {
		parts = append(parts, "Filter")
	}
	if k.Has(UsageJoin) {
		parts = append(parts, "Join")
	}
	if k.Has(UsageAggregate) {
		parts = append(parts, "Aggregate")
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// JoinType is the join keyword as written in the statement.
type JoinType string

const (
	// JoinInner is an INNER JOIN.
	JoinInner JoinType = "INNER"
	// JoinLeftOuter is a LEFT OUTER JOIN.
	JoinLeftOuter JoinType = "LEFT OUTER"
	// JoinUnspecified is a bare JOIN with no preceding type keyword.
	JoinUnspecified JoinType = ""
)

// RelationshipFact is one join edge produced by a predicate-form JOIN.
// Left and right sides are kept exactly as written; no canonicalization.
type RelationshipFact struct {
	FromTable  string
	FromColumn string
	ToTable    string
	ToColumn   string
	Type       JoinType
}

// columnKey identifies a (table, column) pair within one statement.
type columnKey struct {
	Table  string
	Column string
}

// tableFact records the roles a table played in one statement.
type tableFact struct {
	fromSource   bool
	joinedSource bool
}

// columnFact records how a column was used in one statement.
type columnFact struct {
	kinds UsageKind
	funcs map[string]struct{}
	hits  int // textual occurrences within this statement
}

// StatementFacts holds everything the clause parser learned from one
// statement. Facts are merged into an Analysis only after the whole
// statement parsed, so a failed parse leaves no partial state behind.
type StatementFacts struct {
	tables   map[string]*tableFact
	tableSeq []string // first-seen order
	columns  map[columnKey]*columnFact
	colSeq   []columnKey // first-seen order
	rels     []RelationshipFact
}

func newStatementFacts() *StatementFacts {
	return &StatementFacts{
		tables:  make(map[string]*tableFact),
		columns: make(map[columnKey]*columnFact),
	}
}

// isInternalName reports whether name is an engine-generated alias from a
// DEFINE TABLE preamble. Those never surface in the aggregate.
func isInternalName(name string) bool {
	return strings.HasPrefix(name, "$")
}

// touchTable registers a table, returning its fact. Internal aliases are
// dropped: the returned nil means "parsed but not recorded".
func (f *StatementFacts) touchTable(name string) *tableFact {
	if name == "" || isInternalName(name) {
		return nil
	}
	t, ok := f.tables[name]
	if !ok {
		t = &tableFact{}
		f.tables[name] = t
		f.tableSeq = append(f.tableSeq, name)
	}
	return t
}

// markFromSource records table as the FROM target of this statement.
func (f *StatementFacts) markFromSource(name string) {
	if t := f.touchTable(name); t != nil {
		t.fromSource = true
	}
}

// markJoinedSource records table as the target of a JOIN clause.
func (f *StatementFacts) markJoinedSource(name string) {
	if t := f.touchTable(name); t != nil {
		t.joinedSource = true
	}
}

// touchColumn records one textual occurrence of a column with the given
// usage kinds. The owning table is registered as a side effect.
func (f *StatementFacts) touchColumn(table, column string, kinds UsageKind) {
	if table == "" || column == "" || isInternalName(table) {
		return
	}
	f.touchTable(table)

	key := columnKey{Table: table, Column: column}
	c, ok := f.columns[key]
	if !ok {
		c = &columnFact{}
		f.columns[key] = c
		f.colSeq = append(f.colSeq, key)
	}
	c.kinds |= kinds
	c.hits++
}

// recordAggregation attaches an aggregation function name to a column.
func (f *StatementFacts) recordAggregation(table, column, fn string) {
	if table == "" || column == "" || fn == "" || isInternalName(table) {
		return
	}
	key := columnKey{Table: table, Column: column}
	c, ok := f.columns[key]
	if !ok {
		return
	}
	if c.funcs == nil {
		c.funcs = make(map[string]struct{})
	}
	c.funcs[fn] = struct{}{}
}

// addRelationship records a join edge. Edges are deduplicated within the
// statement so that one statement contributes at most one hit per edge.
// Edges touching internal aliases are dropped.
func (f *StatementFacts) addRelationship(rel RelationshipFact) {
	if isInternalName(rel.FromTable) || isInternalName(rel.ToTable) {
		return
	}
	for _, existing := range f.rels {
		if existing == rel {
			return
		}
	}
	f.rels = append(f.rels, rel)
}
