// Package newtask drives the screen that creates a task.
package newtask

import (
	"github.com/thenoetrevino/mytasks/internal/feature/taskform"
	"github.com/thenoetrevino/mytasks/internal/usecase"
)

// ViewModel is a blank task form that saves through AddTask
type ViewModel struct {
	*taskform.Form
}

// NewViewModel creates and starts the view model
func NewViewModel(addTask usecase.AddTask) *ViewModel {
	return &ViewModel{Form: taskform.New("new_task", taskform.Blank(), addTask.Invoke)}
}
