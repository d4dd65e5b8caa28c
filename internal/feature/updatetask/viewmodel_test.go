package updatetask

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/mytasks/internal/feature/featuretest"
	"github.com/thenoetrevino/mytasks/internal/feature/taskform"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/usecase"
)

func TestUpdateTask_LoadEditAndSave(t *testing.T) {
	repo := featuretest.NewRepo()
	vm := NewViewModel(usecase.NewSet(repo).UpdateTask)
	t.Cleanup(vm.Dispose)

	stored := models.Task{ID: 12, Title: "old", Description: "d", DueDate: time.Unix(500, 0), Completed: true}
	vm.Load(stored)
	vm.OnEvent(taskform.UpdateTitle{Title: "new"})
	vm.OnEvent(taskform.Proceed{})

	call := featuretest.NextCall(t, repo)
	assert.Equal(t, "update", call.Op)

	want := stored
	want.Title = "new"
	assert.Equal(t, want, call.Task)
}
