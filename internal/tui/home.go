package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/feature/home"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/tui/notifications"
)

type homeScreen struct {
	vm      *home.ViewModel
	states  <-chan home.State
	cancel  context.CancelFunc
	state   home.State
	cursor  int
	effects effectGate
}

func newHomeScreen(ctx context.Context, vm *home.ViewModel) *homeScreen {
	ctx, cancel := context.WithCancel(ctx)
	return &homeScreen{
		vm:     vm,
		states: vm.Subscribe(ctx),
		cancel: cancel,
		state:  vm.State(),
	}
}

func (h *homeScreen) listen() tea.Cmd {
	vm := h.vm
	return listen(h.states, func(s home.State) tea.Msg { return homeStateMsg{source: vm, state: s} })
}

func (h *homeScreen) close() {
	h.cancel()
	h.vm.Dispose()
}

// selected returns the task under the cursor
func (h *homeScreen) selected() (models.Task, bool) {
	if h.cursor < 0 || h.cursor >= len(h.state.Tasks) {
		return models.Task{}, false
	}
	return h.state.Tasks[h.cursor], true
}

func (h *homeScreen) moveCursor(delta int) {
	h.cursor = max(0, min(h.cursor+delta, len(h.state.Tasks)-1))
}

func (m *Model) handleHomeState(msg homeStateMsg) tea.Cmd {
	if m.home == nil || msg.source != m.home.vm {
		return nil
	}
	h := m.home
	h.state = msg.state
	h.moveCursor(0)

	effect, ok := h.effects.take(msg.state.Effect)
	if !ok {
		return h.listen()
	}
	return tea.Batch(h.listen(), m.applyHomeEffect(effect))
}

func (m *Model) applyHomeEffect(effect feature.Effect) tea.Cmd {
	m.home.vm.OnEvent(home.ConsumeEffect{})

	if n, ok := notifications.FromEffect(effect); ok {
		m.notify(n)
		return nil
	}

	switch e := effect.(type) {
	case feature.NavigateToRoute:
		if e.Route == models.RouteNewTask {
			return m.openNewTask()
		}
	case feature.NavigateToTaskDetails:
		return m.openDetails(e.Task)
	case feature.ExitApp:
		return tea.Quit
	}
	return nil
}

func (m *Model) handleHomeKey(msg tea.KeyPressMsg) tea.Cmd {
	h := m.home
	if h == nil {
		return nil
	}
	key := msg.String()

	if h.state.OpenDialog == home.DialogExit {
		switch key {
		case "y", "enter":
			h.vm.OnEvent(home.ExitDialogConfirmed{})
		case "n", m.keys.Back:
			h.vm.OnEvent(home.ExitDialogCancelled{})
		}
		return nil
	}

	switch key {
	case m.keys.NextTask, "down":
		h.moveCursor(1)
	case m.keys.PrevTask, "up":
		h.moveCursor(-1)
	case m.keys.ViewTask:
		if task, ok := h.selected(); ok {
			h.vm.OnEvent(home.NavigateToDetails{Task: task})
		}
	case m.keys.ToggleTask:
		if task, ok := h.selected(); ok {
			h.vm.OnEvent(home.ToggleCompletion{Task: task})
		}
	case m.keys.AddTask:
		h.vm.OnEvent(home.NavigateToNewTask{})
	case m.keys.ToggleShortcut:
		h.vm.OnEvent(home.ExpandStateChanged{Expanded: !h.state.IsFabExpanded})
	case m.keys.Reload:
		h.vm.OnEvent(home.Reload{})
	case m.keys.Back, m.keys.Quit:
		h.vm.OnEvent(home.BackPressed{})
	}
	return nil
}
