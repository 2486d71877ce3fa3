package loader

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// Keys returns the distinct field keys across records, compared
// case-insensitively, in first-seen order with first-seen casing.
func Keys(records []sheetload.ImportRecord) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, rec := range records {
		for _, v := range rec.Values {
			folded := strings.ToLower(v.FieldKey)
			if _, ok := seen[folded]; ok {
				continue
			}
			seen[folded] = struct{}{}
			keys = append(keys, v.FieldKey)
		}
	}
	return keys
}

// Table is the shape of one destination table.
type Table struct {
	Schema   string
	Name     string
	IDColumn string

	// Columns are the text columns in creation order.
	Columns []string

	columnFor map[string]string
}

// NewTable maps field keys onto PostgreSQL column names. Keys longer than
// the identifier limit are shortened, and names that would collide with
// the identity column or each other get an ordinal suffix. A warning is
// returned for every key whose column name differs from the key.
func NewTable(schema, name string, keys []string) (Table, []string) {
	t := Table{
		Schema:    schema,
		Name:      name,
		IDColumn:  fitIdentifier(name+"Id", ""),
		columnFor: make(map[string]string, len(keys)),
	}

	taken := map[string]struct{}{strings.ToLower(t.IDColumn): {}}
	var warnings []string
	for _, key := range keys {
		column := fitIdentifier(key, "")
		for n := 2; ; n++ {
			if _, clash := taken[strings.ToLower(column)]; !clash {
				break
			}
			column = fitIdentifier(key, "_"+strconv.Itoa(n))
		}
		taken[strings.ToLower(column)] = struct{}{}

		if column != key {
			warnings = append(warnings, fmt.Sprintf("Table %s: field %q is stored in column %q", t.QualifiedName(), key, column))
		}
		t.Columns = append(t.Columns, column)
		t.columnFor[strings.ToLower(key)] = column
	}
	return t, warnings
}

// fitIdentifier shortens s so that s+suffix fits PostgreSQL's identifier
// length, cutting on a character boundary.
func fitIdentifier(s, suffix string) string {
	limit := sheetload.MaxIdentifierBytes - len(suffix)
	for len(s) > limit {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s + suffix
}

// QualifiedName returns the quoted schema-qualified table name.
func (t Table) QualifiedName() string {
	return pgx.Identifier{t.Schema, t.Name}.Sanitize()
}

// DisplayName returns schema.name without quoting, for prompts.
func (t Table) DisplayName() string {
	return t.Schema + "." + t.Name
}

// Column returns the column storing key.
func (t Table) Column(key string) (string, bool) {
	c, ok := t.columnFor[strings.ToLower(key)]
	return c, ok
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// CreateSchemaSQL creates the table's schema when missing.
func (t Table) CreateSchemaSQL() string {
	return "CREATE SCHEMA IF NOT EXISTS " + quote(t.Schema)
}

// DropSQL drops the table when it exists.
func (t Table) DropSQL() string {
	return "DROP TABLE IF EXISTS " + t.QualifiedName()
}

// CreateSQL creates the table with a generated uuid key and one
// unbounded nullable text column per field key.
func (t Table) CreateSQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (%s uuid NOT NULL DEFAULT gen_random_uuid() PRIMARY KEY",
		t.QualifiedName(), quote(t.IDColumn))
	for _, c := range t.Columns {
		b.WriteString(", ")
		b.WriteString(quote(c))
		b.WriteString(" text")
	}
	b.WriteString(")")
	return b.String()
}

// InsertSQL builds a parameterized INSERT naming only the columns populated
// on rec, in table column order. A key repeated on the record keeps its
// first value. A record with nothing populated inserts default values.
func (t Table) InsertSQL(rec sheetload.ImportRecord) (string, []any) {
	values := make(map[string]string, len(rec.Values))
	for _, v := range rec.Values {
		if !v.IsPopulated() {
			continue
		}
		column, ok := t.Column(v.FieldKey)
		if !ok {
			continue
		}
		if _, dup := values[column]; !dup {
			values[column] = *v.Value
		}
	}

	if len(values) == 0 {
		return "INSERT INTO " + t.QualifiedName() + " DEFAULT VALUES", nil
	}

	columns := make([]string, 0, len(values))
	params := make([]string, 0, len(values))
	args := make([]any, 0, len(values))
	for _, c := range t.Columns {
		v, ok := values[c]
		if !ok {
			continue
		}
		args = append(args, v)
		columns = append(columns, quote(c))
		params = append(params, "$"+strconv.Itoa(len(args)))
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.QualifiedName(), strings.Join(columns, ", "), strings.Join(params, ", ")), args
}
