package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextField is a labeled single-line input with an optional validation error.
type TextField struct {
	label  string
	input  textinput.Model
	err    error
	styles textFieldStyles
}

type textFieldStyles struct {
	Label lipgloss.Style
	Input lipgloss.Style
	Error lipgloss.Style
}

func defaultTextFieldStyles() textFieldStyles {
	return textFieldStyles{
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Input: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// NewTextField creates a focused text field.
func NewTextField(label, placeholder string) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 1024
	ti.Width = 72
	ti.Focus()

	return TextField{label: label, input: ti, styles: defaultTextFieldStyles()}
}

// Update forwards msg to the input.
func (t TextField) Update(msg tea.Msg) (TextField, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t TextField) View() string {
	var b strings.Builder
	b.WriteString(t.styles.Label.Render(t.label))
	b.WriteString("\n")
	b.WriteString(t.styles.Input.Render(t.input.View()))
	if t.err != nil {
		b.WriteString("\n")
		b.WriteString(t.styles.Error.Render(t.err.Error()))
	}
	return b.String()
}

// Value returns the current text.
func (t TextField) Value() string {
	return t.input.Value()
}

// SetValue replaces the text and moves the cursor to its end.
func (t *TextField) SetValue(v string) {
	t.input.SetValue(v)
	t.input.CursorEnd()
}

// SetError shows err under the input; nil clears it.
func (t *TextField) SetError(err error) {
	t.err = err
}

// Error returns the error currently shown.
func (t TextField) Error() error {
	return t.err
}
