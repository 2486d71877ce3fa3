package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode of a run.
type Mode int

const (
	// ModeNonInteractive is used for pipelines, scripts and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode decides whether prompts may use the full-screen TUI.
//
// Returns ModeNonInteractive if:
//   - SHEETLOAD_NON_INTERACTIVE=1 is set
//   - CI is set
//   - NO_COLOR is set
//   - stdin or stderr is not a terminal
func DetectMode() Mode {
	if os.Getenv("SHEETLOAD_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ModeNonInteractive
	}
	// prompts render on stderr so stdout stays clean for redirection
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive reports whether DetectMode returns ModeInteractive.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
