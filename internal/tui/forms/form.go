// Package forms provides focusable text fields and a form that tabs between them
package forms

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Field is the interface that all form fields must implement
type Field interface {
	// Update handles messages and updates the field
	Update(tea.Msg) (Field, tea.Cmd)

	// View renders the field
	View() string

	// Focus focuses the field
	Focus() tea.Cmd

	// Blur removes focus from the field
	Blur()

	// Focused returns whether the field is focused
	Focused() bool

	// Key returns the field's key (used to retrieve values)
	Key() string

	// SetValue replaces the content without reporting a change
	SetValue(string)
}

// Form manages a collection of fields
type Form struct {
	fields       []Field
	focusedIndex int
	nextKey      string
}

// NewForm creates a new form with the given fields. nextKey moves focus to
// the next field and shift+nextKey to the previous one.
func NewForm(nextKey string, fields ...Field) *Form {
	return &Form{
		fields:  fields,
		nextKey: nextKey,
	}
}

// Init focuses the first field
func (f *Form) Init() tea.Cmd {
	if len(f.fields) > 0 {
		return f.fields[0].Focus()
	}
	return nil
}

// Update handles messages for the form
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case f.nextKey:
			return f, f.moveFocus(false)
		case "shift+" + f.nextKey:
			return f, f.moveFocus(true)
		}
	}

	// Forward message to focused field
	if f.focusedIndex < len(f.fields) {
		var cmd tea.Cmd
		f.fields[f.focusedIndex], cmd = f.fields[f.focusedIndex].Update(msg)
		return f, cmd
	}

	return f, nil
}

// moveFocus moves focus between fields
func (f *Form) moveFocus(reverse bool) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}

	f.fields[f.focusedIndex].Blur()

	if reverse {
		f.focusedIndex--
		if f.focusedIndex < 0 {
			f.focusedIndex = len(f.fields) - 1
		}
	} else {
		f.focusedIndex++
		if f.focusedIndex >= len(f.fields) {
			f.focusedIndex = 0
		}
	}

	return f.fields[f.focusedIndex].Focus()
}

// View renders the form
func (f *Form) View() string {
	var b strings.Builder
	for _, field := range f.fields {
		b.WriteString(field.View())
		b.WriteString("\n\n")
	}
	return b.String()
}

// Focused returns the key of the focused field
func (f *Form) Focused() string {
	if f.focusedIndex < len(f.fields) {
		return f.fields[f.focusedIndex].Key()
	}
	return ""
}

// Get retrieves a field by key
func (f *Form) Get(key string) Field {
	for _, field := range f.fields {
		if field.Key() == key {
			return field
		}
	}
	return nil
}
