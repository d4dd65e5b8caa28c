package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/feature/details"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/tui/notifications"
)

type detailsScreen struct {
	vm      *details.ViewModel
	states  <-chan details.State
	cancel  context.CancelFunc
	state   details.State
	effects effectGate
}

func (d *detailsScreen) listen() tea.Cmd {
	vm := d.vm
	return listen(d.states, func(s details.State) tea.Msg { return detailsStateMsg{source: vm, state: s} })
}

func (m *Model) openDetails(task models.Task) tea.Cmd {
	m.closeDetails()
	m.app.Selected.Select(task)

	vm := m.app.NewDetails()
	vm.OnEvent(details.LoadTask{Task: task})

	ctx, cancel := context.WithCancel(m.ctx)
	m.details = &detailsScreen{
		vm:     vm,
		states: vm.Subscribe(ctx),
		cancel: cancel,
		state:  details.State{Task: &task},
	}
	m.route = models.RouteTaskDetails
	return m.details.listen()
}

func (m *Model) closeDetails() {
	if m.details == nil {
		return
	}
	m.details.cancel()
	m.details.vm.Dispose()
	m.details = nil
	m.app.Selected.Clear()
}

func (m *Model) handleDetailsState(msg detailsStateMsg) tea.Cmd {
	if m.details == nil || msg.source != m.details.vm {
		return nil
	}
	m.details.state = msg.state

	effect, ok := m.details.effects.take(msg.state.Effect)
	if !ok {
		return m.details.listen()
	}
	m.details.vm.OnEvent(details.ConsumeEffect{})

	switch e := effect.(type) {
	case feature.NavigateToUpdate:
		return tea.Batch(m.details.listen(), m.openUpdateTask(e.Task, models.RouteTaskDetails))
	case feature.ShowSuccess:
		n, _ := notifications.FromEffect(e)
		m.notify(n)
		m.closeDetails()
		m.route = models.RouteHome
		return nil
	default:
		if n, ok := notifications.FromEffect(effect); ok {
			m.notify(n)
		}
		return m.details.listen()
	}
}

func (m *Model) handleDetailsKey(msg tea.KeyPressMsg) tea.Cmd {
	d := m.details
	if d == nil {
		m.route = models.RouteHome
		return nil
	}

	switch msg.String() {
	case m.keys.EditTask:
		d.vm.OnEvent(details.EditTask{})
	case m.keys.DeleteTask:
		if !d.state.IsLoading {
			d.vm.OnEvent(details.DeleteTask{})
		}
	case m.keys.Back, m.keys.Quit:
		m.closeDetails()
		m.route = models.RouteHome
	}
	return nil
}
