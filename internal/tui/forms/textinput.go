package forms

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/mytasks/internal/tui/theme"
)

// TextInput is a single-line text input field
type TextInput struct {
	key      string
	title    string
	input    textinput.Model
	onChange func(string)
	validate func(string) error
	err      error
}

// NewTextInput creates a new text input field. onChange is called with the
// new content after every edit.
func NewTextInput(key, title, placeholder string, onChange func(string)) *TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder

	return &TextInput{
		key:      key,
		title:    title,
		input:    ti,
		onChange: onChange,
	}
}

// WithValidation makes the field report only content that passes validate.
// The error of the last rejected edit is shown under the field.
func (t *TextInput) WithValidation(validate func(string) error) *TextInput {
	t.validate = validate
	return t
}

// Update handles messages
func (t *TextInput) Update(msg tea.Msg) (Field, tea.Cmd) {
	before := t.input.Value()

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)

	if value := t.input.Value(); value != before {
		t.report(value)
	}

	return t, cmd
}

func (t *TextInput) report(value string) {
	if t.validate != nil {
		if t.err = t.validate(value); t.err != nil {
			return
		}
	}
	if t.onChange != nil {
		t.onChange(value)
	}
}

// View renders the text input
func (t *TextInput) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Accent))
	view := titleStyle.Render(t.title) + "\n" + t.input.View()
	if t.err != nil {
		view += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ErrorFg)).Render(t.err.Error())
	}
	return view
}

// Focus focuses the text input
func (t *TextInput) Focus() tea.Cmd {
	return t.input.Focus()
}

// Blur removes focus
func (t *TextInput) Blur() {
	t.input.Blur()
}

// Focused returns whether the input is focused
func (t *TextInput) Focused() bool {
	return t.input.Focused()
}

// Key returns the field key
func (t *TextInput) Key() string {
	return t.key
}

// SetValue replaces the content
func (t *TextInput) SetValue(value string) {
	t.input.SetValue(value)
	t.err = nil
}

// Value returns the current value
func (t *TextInput) Value() string {
	return t.input.Value()
}

// Err returns the validation error of the current content, if any
func (t *TextInput) Err() error {
	return t.err
}
