package xmsql

import "testing"

// Helper to fetch a column fact by table and column name.
func factColumn(t *testing.T, f *StatementFacts, table, column string) *columnFact {
	t.Helper()
	c, ok := f.columns[columnKey{Table: table, Column: column}]
	if !ok {
		t.Fatalf("missing column fact for %s[%s]", table, column)
	}
	return c
}

func TestParseFacts_SimpleScan(t *testing.T) {
	facts, err := ParseFacts(`SELECT 'Product'[Color] FROM 'Product';`)
	if err != nil {
		t.Fatalf("ParseFacts failed: %v", err)
	}

	tf, ok := facts.tables["Product"]
	if !ok {
		t.Fatal("missing table fact for Product")
	}
	if !tf.fromSource {
		t.Error("Product should be marked as FROM source")
	}
	if tf.joinedSource {
		t.Error("Product should not be marked as joined source")
	}

	c := factColumn(t, facts, "Product", "Color")
	if !c.kinds.Has(UsageSelect) {
		t.Errorf("Color kinds = %s, want Select", c.kinds)
	}
	if c.hits != 1 {
		t.Errorf("Color hits = %d, want 1", c.hits)
	}
}

func TestParseFacts_Aggregation(t *testing.T) {
	facts, err := ParseFacts(`SELECT 'Product'[Color], SUM ( 'Sales'[Amount] ) FROM 'Sales';`)
	if err != nil {
		t.Fatalf("ParseFacts failed: %v", err)
	}

	c := factColumn(t, facts, "Sales", "Amount")
	if !c.kinds.Has(UsageSelect | UsageAggregate) {
		t.Errorf("Amount kinds = %s, want Select|Aggregate", c.kinds)
	}
	if _, ok := c.funcs["SUM"]; !ok {
		t.Errorf("Amount funcs = %v, want SUM recorded", c.funcs)
	}

	bare := factColumn(t, facts, "Product", "Color")
	if bare.kinds != UsageSelect {
		t.Errorf("Color kinds = %s, want Select only", bare.kinds)
	}
}

func TestParseFacts_PredicateJoin(t *testing.T) {
	facts, err := ParseFacts(
		`SELECT 'Sales'[Amount] FROM 'Sales' LEFT OUTER JOIN 'Product' ON 'Sales'[ProductKey]='Product'[ProductKey];`)
	if err != nil {
		t.Fatalf("ParseFacts failed: %v", err)
	}

	if tf := facts.tables["Product"]; tf == nil || !tf.joinedSource {
		t.Error("Product should be marked as joined source")
	}

	if len(facts.rels) != 1 {
		t.Fatalf("got %d relationships, want 1", len(facts.rels))
	}
	rel := facts.rels[0]
	want := RelationshipFact{
		FromTable:  "Sales",
		FromColumn: "ProductKey",
		ToTable:    "Product",
		ToColumn:   "ProductKey",
		Type:       JoinLeftOuter,
	}
	if rel != want {
		t.Errorf("relationship = %+v, want %+v", rel, want)
	}

	for _, side := range []string{"Sales", "Product"} {
		c := factColumn(t, facts, side, "ProductKey")
		if !c.kinds.Has(UsageJoin) {
			t.Errorf("%s[ProductKey] kinds = %s, want Join", side, c.kinds)
		}
	}
}

func TestParseFacts_BracketJoin(t *testing.T) {
	facts, err := ParseFacts(`SELECT 'Sales'[Amount] FROM 'Sales' INNER JOIN 'Date'[DateKey];`)
	if err != nil {
		t.Fatalf("ParseFacts failed: %v", err)
	}

	if tf := facts.tables["Date"]; tf == nil || !tf.joinedSource {
		t.Error("Date should be marked as joined source")
	}
	c := factColumn(t, facts, "Date", "DateKey")
	if !c.kinds.Has(UsageJoin) {
		t.Errorf("DateKey kinds = %s, want Join", c.kinds)
	}
	// Bracket form announces no predicate, so no relationship is formed.
	if len(facts.rels) != 0 {
		t.Errorf("got %d relationships, want 0", len(facts.rels))
	}
}

func TestParseFacts_ChainedJoins(t *testing.T) {
	facts, err := ParseFacts(`SELECT 'Sales'[Amount] FROM 'Sales' ` +
		`LEFT OUTER JOIN 'Product' ON 'Sales'[ProductKey]='Product'[ProductKey] ` +
		`INNER JOIN 'Date' ON 'Sales'[DateKey]='Date'[DateKey];`)
	if err != nil {
		t.Fatalf("ParseFacts failed: %v", err)
	}

	if len(facts.rels) != 2 {
		t.Fatalf("got %d relationships, want 2", len(facts.rels))
	}
	if facts.rels[0].Type != JoinLeftOuter {
		t.Errorf("first join type = %q, want %q", facts.rels[0].Type, JoinLeftOuter)
	}
	if facts.rels[1].Type != JoinInner {
		t.Errorf("second join type = %q, want %q", facts.rels[1].Type, JoinInner)
	}
}

func TestParseFacts_WherePredicates(t *testing.T) {
	facts, err := ParseFacts(`SELECT 'Sales'[Amount] FROM 'Sales' ` +
		`WHERE 'Product'[Color] = "Red" VAND 'Sales'[Quantity] IN ( 1, 2, 3 ) AND 'Date'[Year] NIN ( 2020 );`)
	if err != nil {
		t.Fatalf("ParseFacts failed: %v", err)
	}

	for _, ref := range []columnKey{
		{"Product", "Color"},
		{"Sales", "Quantity"},
		{"Date", "Year"},
	} {
		c := factColumn(t, facts, ref.Table, ref.Column)
		if !c.kinds.Has(UsageFilter) {
			t.Errorf("%s[%s] kinds = %s, want Filter", ref.Table, ref.Column, c.kinds)
		}
	}

	// WHERE-only tables are still registered, with no role flags.
	tf := facts.tables["Product"]
	if tf == nil {
		t.Fatal("Product should be registered from WHERE reference")
	}
	if tf.fromSource || tf.joinedSource {
		t.Errorf("Product flags = %+v, want neither role", tf)
	}
}

func TestParseFacts_SelectAndWhereCountSeparately(t *testing.T) {
	facts, err := ParseFacts(`SELECT 'Sales'[Amount] FROM 'Sales' WHERE 'Sales'[Amount] > 0;`)
	if err != nil {
		t.Fatalf("ParseFacts failed: %v", err)
	}

	c := factColumn(t, facts, "Sales", "Amount")
	if c.hits != 2 {
		t.Errorf("Amount hits = %d, want 2 (SELECT + WHERE)", c.hits)
	}
	if !c.kinds.Has(UsageSelect | UsageFilter) {
		t.Errorf("Amount kinds = %s, want Select|Filter", c.kinds)
	}
}

func TestParseFacts_SetPreambleSkipped(t *testing.T) {
	facts, err := ParseFacts("SET DC_KIND=\"AUTO\";\nSELECT 'Product'[Color] FROM 'Product';")
	if err != nil {
		t.Fatalf("ParseFacts failed: %v", err)
	}
	if _, ok := facts.tables["Product"]; !ok {
		t.Error("Product should be registered after SET preamble")
	}
}

func TestParseFacts_DefineTableAliasDropped(t *testing.T) {
	facts, err := ParseFacts("DEFINE TABLE '$TTable1' :=\n" +
		`SELECT 'Product'[Color], SUM ( 'Sales'[Amount] ) FROM 'Sales' ` +
		`LEFT OUTER JOIN 'Product' ON 'Sales'[ProductKey]='Product'[ProductKey];`)
	if err != nil {
		t.Fatalf("ParseFacts failed: %v", err)
	}

	if _, ok := facts.tables["$TTable1"]; ok {
		t.Error("internal alias $TTable1 must not surface in facts")
	}
	for _, name := range []string{"Product", "Sales"} {
		if _, ok := facts.tables[name]; !ok {
			t.Errorf("body table %s should still be registered", name)
		}
	}
	if len(facts.rels) != 1 {
		t.Errorf("got %d relationships, want 1", len(facts.rels))
	}
}

func TestParseFacts_InternalAliasReferencesDropped(t *testing.T) {
	facts, err := ParseFacts(`SELECT '$TTable2'[Key], 'Sales'[Amount] FROM '$TTable2' ` +
		`INNER JOIN 'Sales' ON '$TTable2'[Key]='Sales'[Key];`)
	if err != nil {
		t.Fatalf("ParseFacts failed: %v", err)
	}

	if _, ok := facts.tables["$TTable2"]; ok {
		t.Error("internal alias must not be registered")
	}
	// A relationship with an internal side carries no usable edge.
	if len(facts.rels) != 0 {
		t.Errorf("got %d relationships, want 0", len(facts.rels))
	}
	// The visible side keeps its join usage.
	c := factColumn(t, facts, "Sales", "Key")
	if !c.kinds.Has(UsageJoin) {
		t.Errorf("Sales[Key] kinds = %s, want Join", c.kinds)
	}
}

func TestParseFacts_Failures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t"},
		{"set only", `SET DC_KIND="AUTO";`},
		{"no from", "SELECT 'Product'[Color]"},
		{"no select", "'Product'[Color] FROM 'Product'"},
		{"from without table", "SELECT 'Product'[Color] FROM ;"},
	}

	for _, tt := range tests {
		if facts, err := ParseFacts(tt.text); err == nil {
			t.Errorf("%s: ParseFacts(%q) succeeded with %+v, want error", tt.name, tt.text, facts)
		}
	}
}

// Malformed trailing garbage must not panic or reject the statement.
func TestParseFacts_TolerantOfGarbage(t *testing.T) {
	texts := []string{
		`SELECT 'T'[C], ??? FROM 'T' JOIN @@@;`,
		`SELECT 'T'[C] FROM 'T' WHERE %%% = 1;`,
		`SELECT COUNT ( ) , 'T'[C] FROM 'T';`,
		`SELECT 'T'[C] FROM 'T' LEFT JOIN 'U' ON broken;`,
	}
	for _, text := range texts {
		facts, err := ParseFacts(text)
		if err != nil {
			t.Errorf("ParseFacts(%q) failed: %v", text, err)
			continue
		}
		if _, ok := facts.tables["T"]; !ok {
			t.Errorf("ParseFacts(%q): table T missing", text)
		}
	}
}
