package taskform

import (
	"time"

	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/models"
)

// State is the snapshot of a task being created or edited
type State struct {
	IsLoading   bool
	ID          int64
	Title       string
	Description string
	DueDate     time.Time
	Completed   bool
	Effect      feature.Effect
}

// Task builds the task the form would save
func (s State) Task() models.Task {
	return models.Task{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		DueDate:     s.DueDate,
		Completed:   s.Completed,
	}
}

// Event is a user intent on a task form
type Event interface {
	formEvent()
}

type (
	UpdateTitle       struct{ Title string }
	UpdateDescription struct{ Description string }
	UpdateDueDate     struct{ DueDate time.Time }
	UpdateCompleted   struct{ Completed bool }
	// LoadTask fills the form from a stored task; only edit forms accept it
	LoadTask      struct{ Task models.Task }
	Proceed       struct{}
	ConsumeEffect struct{}
)

func (UpdateTitle) formEvent()       {}
func (UpdateDescription) formEvent() {}
func (UpdateDueDate) formEvent()     {}
func (UpdateCompleted) formEvent()   {}
func (LoadTask) formEvent()          {}
func (Proceed) formEvent()           {}
func (ConsumeEffect) formEvent()     {}

type saved struct{ result models.Result[models.Unit] }
