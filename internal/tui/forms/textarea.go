package forms

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/mytasks/internal/tui/theme"
)

// TextArea is a multi-line text input field
type TextArea struct {
	key      string
	title    string
	textarea textarea.Model
	onChange func(string)
}

// NewTextArea creates a new text area field
func NewTextArea(key, title, placeholder string, charLimit int, onChange func(string)) *TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = charLimit
	ta.SetHeight(5)

	return &TextArea{
		key:      key,
		title:    title,
		textarea: ta,
		onChange: onChange,
	}
}

// Update handles messages
func (t *TextArea) Update(msg tea.Msg) (Field, tea.Cmd) {
	before := t.textarea.Value()

	var cmd tea.Cmd
	t.textarea, cmd = t.textarea.Update(msg)

	if value := t.textarea.Value(); value != before && t.onChange != nil {
		t.onChange(value)
	}

	return t, cmd
}

// View renders the text area
func (t *TextArea) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Accent))
	return titleStyle.Render(t.title) + "\n" + t.textarea.View()
}

// SetWidth sets the editing width
func (t *TextArea) SetWidth(w int) {
	t.textarea.SetWidth(w)
}

// Focus focuses the text area
func (t *TextArea) Focus() tea.Cmd {
	return t.textarea.Focus()
}

// Blur removes focus
func (t *TextArea) Blur() {
	t.textarea.Blur()
}

// Focused returns whether the textarea is focused
func (t *TextArea) Focused() bool {
	return t.textarea.Focused()
}

// Key returns the field key
func (t *TextArea) Key() string {
	return t.key
}

// SetValue replaces the content
func (t *TextArea) SetValue(value string) {
	t.textarea.SetValue(value)
}

// Value returns the current value
func (t *TextArea) Value() string {
	return t.textarea.Value()
}
