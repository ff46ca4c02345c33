package xmsql

import "strings"

// ExtractTableName returns the table part of a qualified reference of the
// form 'Table Name'[Column Name], without the surrounding quotes.
// Returns "" if the reference does not have that shape.
func ExtractTableName(ref string) string {
	table, _, ok := splitReference(ref)
	if !ok {
		return ""
	}
	return table
}

// ExtractColumnName returns the column part of a qualified reference of the
// form 'Table Name'[Column Name], without the surrounding brackets.
// Returns "" if the reference does not have that shape.
func ExtractColumnName(ref string) string {
	_, column, ok := splitReference(ref)
	if !ok {
		return ""
	}
	return column
}

// IsScanStatement reports whether text is a data-scan statement: a
// case-sensitive SELECT token followed later by FROM. Control statements
// such as SET DC_KIND="AUTO"; carry no FROM source and return false.
func IsScanStatement(text string) bool {
	sel := strings.Index(text, "SELECT")
	if sel < 0 {
		return false
	}
	return strings.Contains(text[sel+len("SELECT"):], "FROM")
}

// splitReference splits 'Table'[Column] into its two parts. Doubled quotes
// and doubled closing brackets are unescaped, matching the lexer.
func splitReference(ref string) (table, column string, ok bool) {
	s := strings.TrimSpace(ref)
	if len(s) < 5 || s[0] != '\'' {
		return "", "", false
	}

	var tb strings.Builder
	i := 1
	for {
		if i >= len(s) {
			// Unterminated table name
			return "", "", false
		}
		if s[i] == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				tb.WriteByte('\'')
				i += 2
				continue
			}
			i++
			break
		}
		tb.WriteByte(s[i])
		i++
	}

	if i >= len(s) || s[i] != '[' {
		return "", "", false
	}

	var cb strings.Builder
	i++
	for {
		if i >= len(s) {
			// Unterminated column name
			return "", "", false
		}
		if s[i] == ']' {
			if i+1 < len(s) && s[i+1] == ']' {
				cb.WriteByte(']')
				i += 2
				continue
			}
			break
		}
		cb.WriteByte(s[i])
		i++
	}

	if tb.Len() == 0 || cb.Len() == 0 {
		return "", "", false
	}
	return tb.String(), cb.String(), true
}
