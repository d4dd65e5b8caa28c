package models

import "time"

// Task represents a single entry in the task list
type Task struct {
	ID          int64 // 0 until the store assigns one
	Title       string
	Description string
	DueDate     time.Time
	Completed   bool
}

// NewTask creates an unsaved task due now
func NewTask(title, description string) Task {
	return Task{
		Title:       title,
		Description: description,
		DueDate:     time.Now(),
	}
}

// IsPersisted reports whether the store has assigned an id to the task
func (t Task) IsPersisted() bool {
	return t.ID != 0
}

// Toggled returns a copy of the task with its completion flag flipped
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}

// GetID returns the task id (used by the CLI quiet output mode)
func (t Task) GetID() int {
	return int(t.ID)
}
