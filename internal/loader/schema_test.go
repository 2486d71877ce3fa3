package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

func TestKeys_DistinctCaseInsensitiveFirstSeen(t *testing.T) {
	records := []sheetload.ImportRecord{
		record("S", 1, "Name", "a", "Qty", "1"),
		record("S", 2, "NAME", "b", "Price", nil),
		record("S", 3, "qty", "2", "Note", ""),
	}

	assert.Equal(t, []string{"Name", "Qty", "Price", "Note"}, Keys(records))
}

func TestKeys_RecordOrderDoesNotChangeTheSet(t *testing.T) {
	a := record("S", 1, "A", "1", "B", "2")
	b := record("S", 2, "C", "3", "a", "4")

	fold := func(keys []string) []string {
		out := make([]string, len(keys))
		for i, k := range keys {
			out[i] = strings.ToLower(k)
		}
		return out
	}

	assert.ElementsMatch(t,
		fold(Keys([]sheetload.ImportRecord{a, b})),
		fold(Keys([]sheetload.ImportRecord{b, a})))
}

func TestKeys_Empty(t *testing.T) {
	assert.Empty(t, Keys(nil))
}

func TestTable_CreateSQL(t *testing.T) {
	table, warnings := NewTable("dbo", "Orders", []string{"Id", "Customer"})
	require.Empty(t, warnings)

	assert.Equal(t, `CREATE TABLE "dbo"."Orders" ("OrdersId" uuid NOT NULL DEFAULT gen_random_uuid() PRIMARY KEY, "Id" text, "Customer" text)`,
		table.CreateSQL())
	assert.Equal(t, `DROP TABLE IF EXISTS "dbo"."Orders"`, table.DropSQL())
	assert.Equal(t, `CREATE SCHEMA IF NOT EXISTS "dbo"`, table.CreateSchemaSQL())
}

func TestTable_QuotesIdentifiers(t *testing.T) {
	table, _ := NewTable(`my"schema`, `Bad"Name`, []string{`we"ird`})

	assert.Equal(t, `"my""schema"."Bad""Name"`, table.QualifiedName())
	assert.Equal(t, `my"schema.Bad"Name`, table.DisplayName())
	assert.Contains(t, table.CreateSQL(), `"we""ird" text`)
}

func TestInsertSQL_SparseInsertNamesOnlyPopulatedColumns(t *testing.T) {
	rec := record("S", 1, "A", "1", "B", "", "C", nil)
	table, _ := NewTable("dbo", "T", Keys([]sheetload.ImportRecord{rec}))

	sql, args := table.InsertSQL(rec)

	assert.Equal(t, `INSERT INTO "dbo"."T" ("A") VALUES ($1)`, sql)
	assert.Equal(t, []any{"1"}, args)
}

func TestInsertSQL_UsesTableCasingAndOrder(t *testing.T) {
	first := record("S", 1, "Name", "a", "Qty", "1")
	second := record("S", 2, "QTY", "5", "NAME", "b")
	table, _ := NewTable("dbo", "T", Keys([]sheetload.ImportRecord{first, second}))

	sql, args := table.InsertSQL(second)

	assert.Equal(t, `INSERT INTO "dbo"."T" ("Name", "Qty") VALUES ($1, $2)`, sql)
	assert.Equal(t, []any{"b", "5"}, args)
}

func TestInsertSQL_RepeatedKeyKeepsFirstValue(t *testing.T) {
	rec := record("Jan", 1, sheetload.WorksheetNameKey, "Jan", "worksheetname", "from sheet")
	table, _ := NewTable("dbo", "T", Keys([]sheetload.ImportRecord{rec}))

	sql, args := table.InsertSQL(rec)

	assert.Equal(t, `INSERT INTO "dbo"."T" ("WorksheetName") VALUES ($1)`, sql)
	assert.Equal(t, []any{"Jan"}, args)
}

func TestInsertSQL_NothingPopulated(t *testing.T) {
	rec := record("S", 1, "A", "", "B", nil)
	table, _ := NewTable("dbo", "T", Keys([]sheetload.ImportRecord{rec}))

	sql, args := table.InsertSQL(rec)

	assert.Equal(t, `INSERT INTO "dbo"."T" DEFAULT VALUES`, sql)
	assert.Empty(t, args)
}

func TestInsertSQL_ValuesAreNeverInterpolated(t *testing.T) {
	rec := record("S", 1, "A", "'); DROP TABLE x; --")
	table, _ := NewTable("dbo", "T", Keys([]sheetload.ImportRecord{rec}))

	sql, args := table.InsertSQL(rec)

	assert.NotContains(t, sql, "DROP")
	assert.Equal(t, []any{"'); DROP TABLE x; --"}, args)
}

func TestNewTable_ShortensLongKeys(t *testing.T) {
	long := strings.Repeat("a", 70)
	longTwin := strings.Repeat("a", 65) + "bbbbb"

	table, warnings := NewTable("dbo", "T", []string{long, longTwin})

	require.Len(t, table.Columns, 2)
	assert.Equal(t, strings.Repeat("a", sheetload.MaxIdentifierBytes), table.Columns[0])
	assert.Equal(t, strings.Repeat("a", sheetload.MaxIdentifierBytes-2)+"_2", table.Columns[1])
	assert.Len(t, warnings, 2)

	col, ok := table.Column(longTwin)
	require.True(t, ok)
	assert.Equal(t, table.Columns[1], col)
}

func TestNewTable_ShortensOnCharacterBoundary(t *testing.T) {
	key := strings.Repeat("é", 40)

	table, _ := NewTable("dbo", "T", []string{key})

	require.Len(t, table.Columns, 1)
	assert.Equal(t, strings.Repeat("é", 31), table.Columns[0])
}

func TestNewTable_AvoidsIdentityColumn(t *testing.T) {
	table, warnings := NewTable("dbo", "Orders", []string{"ordersid", "Total"})

	assert.Equal(t, "OrdersId", table.IDColumn)
	assert.Equal(t, []string{"ordersid_2", "Total"}, table.Columns)
	assert.Len(t, warnings, 1)
}
