// Package components holds the input widgets the launcher form is built from.
package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultWidth is the visible width of a text field.
const DefaultWidth = 40

// TextField is a single-line text buffer with label and two-phase editing
type TextField struct {
	Label       string
	Placeholder string
	input       textinput.Model
	focused     bool
	editing     bool
}

// NewTextField creates a new TextField without a length limit
func NewTextField(label, placeholder, value string) TextField {
	return NewTextFieldWithLimits(label, placeholder, value, 0, DefaultWidth)
}

// NewTextFieldWithLimits creates a new TextField with custom char limit and width
func NewTextFieldWithLimits(label, placeholder, value string, charLimit, width int) TextField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = width
	ti.SetValue(value)

	return TextField{
		Label:       label,
		Placeholder: placeholder,
		input:       ti,
	}
}

// Focus sets the field as focused (highlighted but not editing)
func (t *TextField) Focus() {
	t.focused = true
	t.editing = false
	t.input.Blur()
}

// Blur removes focus from the field
func (t *TextField) Blur() {
	t.focused = false
	t.editing = false
	t.input.Blur()
}

// IsFocused returns whether the field is focused
func (t *TextField) IsFocused() bool {
	return t.focused
}

// IsEditing returns whether the field is in edit mode
func (t *TextField) IsEditing() bool {
	return t.editing
}

// EnterEditMode starts editing the field with the cursor at the end. The
// returned command starts the cursor blinking.
func (t *TextField) EnterEditMode() tea.Cmd {
	t.focused = true
	t.editing = true
	cmd := t.input.Focus()
	t.input.CursorEnd()
	return cmd
}

// ExitEditMode stops editing, keeping the typed value
func (t *TextField) ExitEditMode() {
	t.editing = false
	t.input.Blur()
}

// Value returns the current field value
func (t *TextField) Value() string {
	return t.input.Value()
}

// SetValue sets the field value
func (t *TextField) SetValue(value string) {
	t.input.SetValue(value)
}

// Clear empties the buffer
func (t *TextField) Clear() {
	t.input.Reset()
}

// SetWidth changes the visible width
func (t *TextField) SetWidth(width int) {
	t.input.Width = width
}

// Width returns the visible width
func (t *TextField) Width() int {
	return t.input.Width
}

// Update forwards a message to the buffer while editing
func (t *TextField) Update(msg tea.Msg) tea.Cmd {
	if !t.editing {
		return nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

// View renders the buffer, including the cursor while editing
func (t *TextField) View() string {
	return t.input.View()
}
