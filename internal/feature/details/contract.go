package details

import (
	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/models"
)

// State is the snapshot of the details screen. Task is nil until loaded.
type State struct {
	IsLoading bool
	Task      *models.Task
	Effect    feature.Effect
}

// Event is a user intent on the details screen
type Event interface {
	detailsEvent()
}

type (
	LoadTask      struct{ Task models.Task }
	EditTask      struct{}
	DeleteTask    struct{}
	ConsumeEffect struct{}
)

func (LoadTask) detailsEvent()      {}
func (EditTask) detailsEvent()      {}
func (DeleteTask) detailsEvent()    {}
func (ConsumeEffect) detailsEvent() {}

type deleted struct{ result models.Result[models.Unit] }
