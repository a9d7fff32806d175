// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/wordbook/internal/adapters/driving/tui/styles"
)

// CharLimit caps the length of a typed word.
const CharLimit = 256

// WordInput wraps a bubbles textinput for entering new words.
type WordInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewWordInput creates a new, focused word input.
func NewWordInput(s *styles.Styles) *WordInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "New word..."
	ti.Focus()
	ti.CharLimit = CharLimit
	ti.Width = 40

	return &WordInput{
		textinput: ti,
		styles:    s,
		width:     40,
	}
}

// Init initialises the input.
func (w *WordInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (w *WordInput) Update(msg tea.Msg) (*WordInput, tea.Cmd) {
	var cmd tea.Cmd
	w.textinput, cmd = w.textinput.Update(msg)
	return w, cmd
}

// View renders the input.
func (w *WordInput) View() string {
	label := w.styles.Title.Render("Add: ")
	field := w.styles.InputField
	if w.textinput.Focused() {
		field = w.styles.FocusedInputField
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field.Render(w.textinput.View()))
}

// Value returns the current input value.
func (w *WordInput) Value() string {
	return w.textinput.Value()
}

// SetValue sets the input value.
func (w *WordInput) SetValue(value string) {
	w.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (w *WordInput) Focus() tea.Cmd {
	return w.textinput.Focus()
}

// Blur removes focus from the input.
func (w *WordInput) Blur() {
	w.textinput.Blur()
}

// Focused returns whether the input is focused.
func (w *WordInput) Focused() bool {
	return w.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (w *WordInput) SetWidth(width int) {
	w.width = width
	w.textinput.Width = max(width-10, 20)
}

// Width returns the current width.
func (w *WordInput) Width() int {
	return w.width
}

// Reset clears the input.
func (w *WordInput) Reset() {
	w.textinput.Reset()
}
