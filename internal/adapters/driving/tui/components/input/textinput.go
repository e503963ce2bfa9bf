// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/styles"
)

// Field is a labelled single-line input bound to a canonical field key.
type Field struct {
	key       string
	label     string
	textinput textinput.Model
	styles    *styles.Styles
}

// NewField creates an unfocused input for key. An empty label shows the key.
func NewField(s *styles.Styles, key, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if label == "" {
		label = key
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &Field{
		key:       key,
		label:     label,
		textinput: ti,
		styles:    s,
	}
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input on one line.
func (f *Field) View() string {
	label := f.styles.Label.Render(f.label)
	if f.textinput.Focused() {
		label = f.styles.FocusedLabel.Render(f.label)
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, f.styles.InputField.Render(f.textinput.View()))
}

// Key returns the canonical field key.
func (f *Field) Key() string {
	return f.key
}

// Label returns the display label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (f *Field) SetWidth(width int) {
	inputWidth := width - 30
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}
