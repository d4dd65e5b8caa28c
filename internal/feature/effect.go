// Package feature holds what every screen shares: the one-shot effects a
// screen asks its host to perform.
package feature

import (
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/uitext"
)

// Effect is a one-shot request from a screen to its host. A screen keeps its
// effect until the host dispatches ConsumeEffect. Every variant is comparable.
type Effect interface {
	effect()
}

type (
	// ShowError asks the host to surface a failure
	ShowError struct{ Message uitext.Text }

	// ShowSuccess asks the host to confirm a completed operation
	ShowSuccess struct{ Message uitext.Text }

	// NavigateToRoute asks the host to open a screen that needs no argument
	NavigateToRoute struct{ Route models.Route }

	// NavigateToTaskDetails opens the details screen for Task
	NavigateToTaskDetails struct{ Task models.Task }

	// NavigateToUpdate opens the edit form for Task
	NavigateToUpdate struct{ Task models.Task }

	// ExitApp asks the host to quit
	ExitApp struct{}
)

func (ShowError) effect()             {}
func (ShowSuccess) effect()           {}
func (NavigateToRoute) effect()       {}
func (NavigateToTaskDetails) effect() {}
func (NavigateToUpdate) effect()      {}
func (ExitApp) effect()               {}

// ErrorEffect converts a repository failure to the effect shown to the user
func ErrorEffect(err models.DataError) Effect {
	return ShowError{Message: uitext.FromDataError(err)}
}

// Describe returns a short human readable form of e, used by logs and
// text front ends. A nil effect describes as "".
func Describe(e Effect) string {
	switch v := e.(type) {
	case nil:
		return ""
	case ShowError:
		return "error: " + v.Message.Resolve()
	case ShowSuccess:
		return v.Message.Resolve()
	case NavigateToRoute:
		return "navigate: " + v.Route.String()
	case NavigateToTaskDetails:
		return "navigate: " + models.RouteTaskDetails.String()
	case NavigateToUpdate:
		return "navigate: " + models.RouteUpdateTask.String()
	case ExitApp:
		return "exit"
	default:
		return "unknown effect"
	}
}
