package sheetload_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

func validLoadConfig() sheetload.LoadConfig {
	sql := sheetload.DefaultSQLSettings()
	sql.ConnectionString = "postgresql://localhost:5432/postgres"
	sql.TableName = "Import"
	return sheetload.LoadConfig{
		Source:  "book.xlsx",
		Parse:   sheetload.DefaultParseSettings(),
		SQL:     sql,
		Timeout: time.Minute,
	}
}

func TestLoadConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *sheetload.LoadConfig)
		wantErr bool
	}{
		{"valid config", func(c *sheetload.LoadConfig) {}, false},
		{"missing source", func(c *sheetload.LoadConfig) { c.Source = "" }, true},
		{"missing connection string", func(c *sheetload.LoadConfig) { c.SQL.ConnectionString = "" }, true},
		{"dry run needs no connection", func(c *sheetload.LoadConfig) {
			c.DryRun = true
			c.SQL.ConnectionString = ""
			c.SQL.TableName = ""
		}, false},
		{"blank table name", func(c *sheetload.LoadConfig) { c.SQL.TableName = "  " }, true},
		{"force without drop", func(c *sheetload.LoadConfig) { c.SQL.Force = true }, true},
		{"force with drop", func(c *sheetload.LoadConfig) { c.SQL.Force = true; c.SQL.DropTable = true }, false},
		{"negative timeout", func(c *sheetload.LoadConfig) { c.Timeout = -time.Second }, true},
		{"zero start row", func(c *sheetload.LoadConfig) { c.Parse.StartAtRow = 0 }, true},
		{"zero character limit", func(c *sheetload.LoadConfig) { c.Parse.FieldNameCharacterLimit = 0 }, true},
		{"empty replacement match", func(c *sheetload.LoadConfig) {
			c.Parse.FieldNameReplacements = []sheetload.FieldNameReplacement{{Match: "", Replacement: "x"}}
		}, true},
		{"unknown auth method", func(c *sheetload.LoadConfig) { c.SQL.AuthMethod = "kerberos" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validLoadConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, sheetload.ErrInvalidConfig) || errors.Is(err, sheetload.ErrUnsupportedAuthMethod))
		})
	}
}

func TestLoadConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := sheetload.LoadConfig{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Source is required")
	assert.Contains(t, err.Error(), "ConnectionString is required")
	assert.Contains(t, err.Error(), "TableName is required")
	assert.Contains(t, err.Error(), "StartAtRow")
}

func TestDefaultParseSettings(t *testing.T) {
	s := sheetload.DefaultParseSettings()
	assert.Equal(t, 1, s.StartAtRow)
	assert.True(t, s.FirstRowIsHeader)
	assert.True(t, s.SkipHiddenWorksheets)
	assert.True(t, s.AllWorksheets)
	assert.True(t, s.StripFieldNameToAlphaAndNumeric)
	assert.Equal(t, 128, s.FieldNameCharacterLimit)
	assert.True(t, s.FieldNameOverLimitSplitFiftyFifty)
	assert.True(t, s.TrimWhiteSpaceFromValues)
	assert.False(t, s.SkipBlankRows)
	assert.False(t, s.SkipBlankColumns)
	assert.NoError(t, s.Validate())
}

func TestSQLSettings_PerWorksheet(t *testing.T) {
	tests := []struct {
		table string
		want  bool
	}{
		{"Import_{WorksheetName}", true},
		{"import_{worksheetname}", true},
		{"{WORKSHEETNAME}", true},
		{"Import", false},
		{"Import_{Worksheet}", false},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			assert.Equal(t, tt.want, sheetload.SQLSettings{TableName: tt.table}.PerWorksheet())
		})
	}
}

func TestParseAuthMethod(t *testing.T) {
	tests := []struct {
		in   string
		want sheetload.AuthMethod
	}{
		{"", sheetload.AuthMethodStandard},
		{"Standard", sheetload.AuthMethodStandard},
		{"aws", sheetload.AuthMethodAWSIAM},
		{"GOOGLE", sheetload.AuthMethodGoogleIAM},
		{"azure", sheetload.AuthMethodAzureEntraID},
	}
	for _, tt := range tests {
		got, err := sheetload.ParseAuthMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := sheetload.ParseAuthMethod("ldap")
	assert.ErrorIs(t, err, sheetload.ErrUnsupportedAuthMethod)
}

func TestAuthMethod_String(t *testing.T) {
	assert.Equal(t, "Standard", sheetload.AuthMethodStandard.String())
	assert.Equal(t, "AWS IAM", sheetload.AuthMethodAWSIAM.String())
	assert.Equal(t, "Google IAM", sheetload.AuthMethodGoogleIAM.String())
	assert.Equal(t, "Azure Entra ID", sheetload.AuthMethodAzureEntraID.String())
	assert.Equal(t, "Unknown(42)", sheetload.AuthMethod(42).String())
}

func strPtr(s string) *string { return &s }

func TestImportRecord_Get(t *testing.T) {
	rec := sheetload.ImportRecord{Values: []sheetload.RecordValue{
		{FieldKey: "Name", Value: strPtr("Ada")},
		{FieldKey: "Note", Value: nil},
	}}

	v, ok := rec.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Ada", *v)

	v, ok = rec.Get("NOTE")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}

func TestRecordValue_IsPopulated(t *testing.T) {
	assert.True(t, sheetload.RecordValue{Value: strPtr("1")}.IsPopulated())
	assert.False(t, sheetload.RecordValue{Value: strPtr("")}.IsPopulated())
	assert.False(t, sheetload.RecordValue{}.IsPopulated())
}

func TestParseResult_MergeDoesNotAliasInputs(t *testing.T) {
	a := sheetload.ParseResult{
		Records:  make([]sheetload.ImportRecord, 1, 8),
		Warnings: make([]string, 1, 8),
	}
	b := sheetload.ParseResult{
		Records:  []sheetload.ImportRecord{{RowPosition: 2}},
		Warnings: []string{"w2"},
		Errors:   []string{"e2"},
	}

	merged := a.Merge(b)
	c := a.Merge(sheetload.ParseResult{Records: []sheetload.ImportRecord{{RowPosition: 3}}})

	assert.Len(t, merged.Records, 2)
	assert.Equal(t, 2, merged.Records[1].RowPosition, "second merge must not overwrite the first")
	assert.Equal(t, 3, c.Records[1].RowPosition)
	assert.Equal(t, []string{"e2"}, merged.Errors)
	assert.Len(t, a.Records, 1)
}

func TestParseResult_WithMessagePrefix(t *testing.T) {
	r := sheetload.ParseResult{Warnings: []string{"w"}, Errors: []string{"e"}}
	p := r.WithMessagePrefix("Worksheet 'Jan': ")
	assert.Equal(t, []string{"Worksheet 'Jan': w"}, p.Warnings)
	assert.Equal(t, []string{"Worksheet 'Jan': e"}, p.Errors)
	assert.Equal(t, []string{"w"}, r.Warnings)
}

func TestWriteResult_Counts(t *testing.T) {
	w := sheetload.WriteResult{Tables: []sheetload.TableResult{
		{Table: "Import_Jan", Inserted: 3, Failed: 1},
		{Table: "Import_Feb", Inserted: 2},
	}}
	assert.Equal(t, 5, w.Inserted())
	assert.Equal(t, 1, w.Failed())
}
