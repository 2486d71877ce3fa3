package tui

import "testing"

func TestDetectMode_NonInteractive(t *testing.T) {
	tests := []struct {
		name           string
		nonInteractive string
		ci             string
		noColor        string
	}{
		{"explicit opt out", "1", "", ""},
		{"ci", "", "true", ""},
		{"no color", "", "", "1"},
		{"opt out needs exactly 1", "yes", "", ""},
		{"no terminal under go test", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHEETLOAD_NON_INTERACTIVE", tt.nonInteractive)
			t.Setenv("CI", tt.ci)
			t.Setenv("NO_COLOR", tt.noColor)

			if got := DetectMode(); got != ModeNonInteractive {
				t.Errorf("DetectMode() = %d, want ModeNonInteractive", got)
			}
			if IsInteractive() {
				t.Error("IsInteractive() = true, want false")
			}
		})
	}
}
