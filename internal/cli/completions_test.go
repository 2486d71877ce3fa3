package cli

import (
	"slices"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteValues(t *testing.T) {
	cmd := &cobra.Command{}
	complete := completeValues(logLevels)

	t.Run("returns all values for empty input", func(t *testing.T) {
		completions, directive := complete(cmd, nil, "")
		if len(completions) != len(logLevels) {
			t.Errorf("expected %d completions, got %d", len(logLevels), len(completions))
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})

	t.Run("filters by prefix", func(t *testing.T) {
		completions, _ := complete(cmd, nil, "w")
		if len(completions) != 1 || completions[0] != "warn" {
			t.Errorf("expected [warn], got %v", completions)
		}
	})

	t.Run("returns empty for non-matching prefix", func(t *testing.T) {
		completions, _ := complete(cmd, nil, "xyz")
		if len(completions) != 0 {
			t.Errorf("expected 0 completions, got %d", len(completions))
		}
	})
}

func TestCompleteWorkbooks(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("filters by workbook extension", func(t *testing.T) {
		exts, directive := completeWorkbooks(cmd, nil, "")
		if directive != cobra.ShellCompDirectiveFilterFileExt {
			t.Errorf("expected ShellCompDirectiveFilterFileExt, got %v", directive)
		}
		if !slices.Contains(exts, "xlsx") {
			t.Errorf("expected xlsx among %v", exts)
		}
		for _, ext := range exts {
			if ext[0] == '.' {
				t.Errorf("extension %q should not start with a dot", ext)
			}
		}
	})

	t.Run("no completion after the workbook", func(t *testing.T) {
		exts, directive := completeWorkbooks(cmd, []string{"a.xlsx"}, "")
		if len(exts) != 0 {
			t.Errorf("expected no completions, got %v", exts)
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})
}
