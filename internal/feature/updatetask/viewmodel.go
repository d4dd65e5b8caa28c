// Package updatetask drives the screen that edits a stored task.
package updatetask

import (
	"github.com/thenoetrevino/mytasks/internal/feature/taskform"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/usecase"
)

// ViewModel is a task form filled by LoadTask that saves through UpdateTask
type ViewModel struct {
	*taskform.Form
}

// NewViewModel creates and starts the view model
func NewViewModel(updateTask usecase.UpdateTask) *ViewModel {
	return &ViewModel{Form: taskform.New("update_task", taskform.Blank(), updateTask.Invoke, taskform.AcceptLoad())}
}

// Load is shorthand for dispatching LoadTask
func (vm *ViewModel) Load(task models.Task) {
	vm.OnEvent(taskform.LoadTask{Task: task})
}
