package newtask

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/mytasks/internal/feature/featuretest"
	"github.com/thenoetrevino/mytasks/internal/feature/taskform"
	"github.com/thenoetrevino/mytasks/internal/usecase"
)

func TestNewTask_SavesThroughAddTask(t *testing.T) {
	repo := featuretest.NewRepo()
	vm := NewViewModel(usecase.NewSet(repo).AddTask)
	t.Cleanup(vm.Dispose)

	vm.OnEvent(taskform.UpdateTitle{Title: "read"})
	vm.OnEvent(taskform.UpdateDescription{Description: "a book"})
	vm.OnEvent(taskform.Proceed{})

	call := featuretest.NextCall(t, repo)
	assert.Equal(t, "add", call.Op)
	assert.Zero(t, call.Task.ID)
	assert.False(t, call.Task.DueDate.IsZero(), "new tasks default to due now")
}
