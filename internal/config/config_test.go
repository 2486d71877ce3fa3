package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/sheetload/pkg/sheetload"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), sheetload.DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AllSections(t *testing.T) {
	path := writeConfig(t, `ParserSettings:
  SkipBlankRows: true
  StartAtRow: 3
  FirstRowIsHeader: false
  FieldNameCharacterLimit: 30
  LimitToOnlySheets: [Jan, Feb]
  ExcludeSheets: [Notes]
  FieldNameReplacements:
    - Match: "#"
      Replacement: "No"
SqlSettings:
  ConnectionString: Host=pg.local;Database=excel
  SchemaName: staging
  TableName: Import_{WorksheetName}
  DropTable: true
  ConnectRetries: 3
StayOpen: true
Timeout: 5m
Logging:
  Level: debug
  Format: json
  File: sheetload.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	p := cfg.ParserSettings
	assert.True(t, p.SkipBlankRows)
	assert.Equal(t, 3, p.StartAtRow)
	assert.False(t, p.FirstRowIsHeader)
	assert.Equal(t, 30, p.FieldNameCharacterLimit)
	assert.Equal(t, []string{"Jan", "Feb"}, p.LimitToOnlySheets)
	assert.Equal(t, []string{"Notes"}, p.ExcludeSheets)
	assert.Equal(t, []sheetload.FieldNameReplacement{{Match: "#", Replacement: "No"}}, p.FieldNameReplacements)

	s := cfg.SqlSettings
	assert.Equal(t, "Host=pg.local;Database=excel", s.ConnectionString)
	assert.Equal(t, "staging", s.SchemaName)
	assert.Equal(t, "Import_{WorksheetName}", s.TableName)
	assert.True(t, s.DropTable)
	assert.Equal(t, 3, s.ConnectRetries)

	assert.True(t, cfg.StayOpen)
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json", File: "sheetload.log"}, cfg.Logging)

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, timeout)
}

func TestLoad_AbsentKeysKeepDefaults(t *testing.T) {
	path := writeConfig(t, `ParserSettings:
  SkipBlankRows: true
SqlSettings:
  TableName: Sales
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	want := sheetload.DefaultParseSettings()
	want.SkipBlankRows = true
	assert.Equal(t, want, cfg.ParserSettings)

	assert.Equal(t, "Sales", cfg.SqlSettings.TableName)
	assert.Equal(t, sheetload.DefaultSchemaName, cfg.SqlSettings.SchemaName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.StayOpen)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoadOrDefault_FileNotFound(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "{{invalid"},
		{"wrong type", "ParserSettings:\n  StartAtRow: many\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadOrDefault(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, sheetload.ErrInvalidConfig)
			assert.Nil(t, cfg)
		})
	}
}

func TestTimeoutDuration(t *testing.T) {
	cfg := &FileConfig{}
	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, sheetload.DefaultTimeout, d)

	cfg.Timeout = "soon"
	_, err = cfg.TimeoutDuration()
	assert.ErrorIs(t, err, sheetload.ErrInvalidConfig)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHEETLOAD_DOTENV_NEW=from-file\nSHEETLOAD_DOTENV_SET=from-file\n"), 0644))

	t.Setenv("SHEETLOAD_DOTENV_SET", "from-env")
	t.Setenv("SHEETLOAD_DOTENV_NEW", "")
	require.NoError(t, os.Unsetenv("SHEETLOAD_DOTENV_NEW"))

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "from-file", os.Getenv("SHEETLOAD_DOTENV_NEW"))
	assert.Equal(t, "from-env", os.Getenv("SHEETLOAD_DOTENV_SET"))
}

func TestLoadDotEnv_Missing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
