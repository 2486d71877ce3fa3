package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vvka-141/sheetload/internal/source"
	"github.com/vvka-141/sheetload/internal/tui/components"
)

// ErrPromptCancelled is returned when the user leaves the prompt without a path.
var ErrPromptCancelled = errors.New("workbook prompt cancelled")

// WorkbookExtensions are offered by tab completion.
var WorkbookExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

const promptLabel = "Enter the path of the workbook to load"

// PathPrompt is a bubbletea model asking for a workbook path with tab
// completion. Enter runs validate on the cleaned path and only finishes
// when it passes.
type PathPrompt struct {
	field     components.TextField
	completer *components.PathCompleter
	keys      KeyMap
	validate  func(string) error

	value     string
	cancelled bool
}

// NewPathPrompt creates the prompt. A nil validate accepts any non-empty path.
func NewPathPrompt(validate func(string) error) PathPrompt {
	return PathPrompt{
		field:     components.NewTextField(promptLabel, "orders.xlsx or s3://bucket/key.xlsx"),
		completer: components.NewPathCompleter(WorkbookExtensions...),
		keys:      DefaultKeyMap(),
		validate:  validate,
	}
}

func (m PathPrompt) Init() tea.Cmd {
	return nil
}

func (m PathPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.field, cmd = m.field.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Complete):
		m.field.SetValue(m.completer.Next(m.field.Value()))
		m.field.SetError(nil)
		return m, nil

	case key.Matches(keyMsg, m.keys.Submit):
		m.completer.Reset()
		path := source.Clean(m.field.Value())
		if path == "" {
			m.field.SetError(errors.New("a workbook path is required"))
			return m, nil
		}
		if m.validate != nil {
			if err := m.validate(path); err != nil {
				m.field.SetError(err)
				return m, nil
			}
		}
		m.value = path
		return m, tea.Quit
	}

	m.completer.Reset()
	m.field.SetError(nil)
	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

func (m PathPrompt) View() string {
	if m.value != "" || m.cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render("sheetload"))
	b.WriteString("\n")
	b.WriteString(m.field.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.keys.HelpText()))
	b.WriteString("\n")
	return b.String()
}

// Value returns the accepted path, empty until Enter succeeded.
func (m PathPrompt) Value() string { return m.value }

// Cancelled reports whether the user quit the prompt.
func (m PathPrompt) Cancelled() bool { return m.cancelled }

// PromptWorkbookPath asks for a workbook path. In interactive mode it runs
// the TUI prompt on stderr; otherwise it reads one line from in, for
// example when a path is piped in.
func PromptWorkbookPath(ctx context.Context, in io.Reader, out io.Writer, validate func(string) error) (string, error) {
	if IsInteractive() && in == os.Stdin {
		p := tea.NewProgram(NewPathPrompt(validate),
			tea.WithContext(ctx),
			tea.WithInput(in),
			tea.WithOutput(out),
		)
		final, err := p.Run()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			return "", fmt.Errorf("workbook prompt failed: %w", err)
		}
		m := final.(PathPrompt)
		if m.Cancelled() {
			return "", ErrPromptCancelled
		}
		return m.Value(), nil
	}

	return readPathLine(in, out, validate)
}

func readPathLine(in io.Reader, out io.Writer, validate func(string) error) (string, error) {
	fmt.Fprintf(out, "%s: ", promptLabel)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrPromptCancelled
		}
		return "", fmt.Errorf("failed to read workbook path: %w", err)
	}

	path := source.Clean(line)
	if path == "" {
		return "", ErrPromptCancelled
	}
	if validate != nil {
		if err := validate(path); err != nil {
			return "", err
		}
	}
	return path, nil
}
