package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/feature/details"
	"github.com/thenoetrevino/mytasks/internal/feature/home"
	"github.com/thenoetrevino/mytasks/internal/feature/taskform"
)

// Each state message names the view model it came from so a snapshot from a
// screen that has since been closed is ignored.

type homeStateMsg struct {
	source *home.ViewModel
	state  home.State
}

type formStateMsg struct {
	source *taskform.Form
	state  taskform.State
}

type detailsStateMsg struct {
	source *details.ViewModel
	state  details.State
}

// listen returns a command that waits for the next snapshot on ch.
// It returns nil once the subscription is closed.
func listen[S any](ch <-chan S, wrap func(S) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(s)
	}
}

// effectGate passes each pending effect through once. Snapshots keep
// carrying an effect until the view model has processed ConsumeEffect, so
// the same effect can arrive again in a later snapshot.
type effectGate struct {
	applied feature.Effect
}

func (g *effectGate) take(e feature.Effect) (feature.Effect, bool) {
	if e == nil {
		g.applied = nil
		return nil, false
	}
	if e == g.applied {
		return nil, false
	}
	g.applied = e
	return e, true
}
