package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newTestCmd builds a command carrying the load flags, resets the flag
// values to their defaults and parses args.
func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "sheetload", RunE: runLoad}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	registerCommonFlags(cmd)
	registerLoadFlags(cmd)

	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

// inTempDir switches to an empty working directory so no sheetload.yaml
// or .env is picked up, and clears the connection environment.
func inTempDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	for _, name := range []string{"SHEETLOAD_CONNECTION_STRING", "DATABASE_URL"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// writePeopleWorkbook saves a one-sheet workbook with two records.
func writePeopleWorkbook(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "People"))
	rows := [][]any{
		{"Name", "Age"},
		{"Ann", 31},
		{"Bob", 42},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("People", cell, &row))
	}

	path := filepath.Join(dir, "people.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
