package home

import (
	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/models"
)

// Dialog is the modal currently shown over the task list
type Dialog int

const (
	DialogNone Dialog = iota
	DialogExit
)

// State is the snapshot rendered by the home screen
type State struct {
	IsLoading     bool
	IsFabExpanded bool
	OpenDialog    Dialog
	Tasks         []models.Task
	Effect        feature.Effect
}

// Event is a user intent on the home screen
type Event interface {
	homeEvent()
}

type (
	ExpandStateChanged  struct{ Expanded bool }
	BackPressed         struct{}
	ExitDialogConfirmed struct{}
	ExitDialogCancelled struct{}
	NavigateToNewTask   struct{}
	NavigateToDetails   struct{ Task models.Task }
	ToggleCompletion    struct{ Task models.Task }
	// Reload restarts the task query after it ended with an error
	Reload        struct{}
	ConsumeEffect struct{}
)

func (ExpandStateChanged) homeEvent()  {}
func (BackPressed) homeEvent()         {}
func (ExitDialogConfirmed) homeEvent() {}
func (ExitDialogCancelled) homeEvent() {}
func (NavigateToNewTask) homeEvent()   {}
func (NavigateToDetails) homeEvent()   {}
func (ToggleCompletion) homeEvent()    {}
func (Reload) homeEvent()              {}
func (ConsumeEffect) homeEvent()       {}

// messages produced by the view model itself
type (
	startQuery  struct{}
	tasksResult struct{ result models.Result[[]models.Task] }
	toggleDone  struct{ result models.Result[models.Unit] }
)
