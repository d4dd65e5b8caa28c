// Package home drives the task list screen.
package home

import (
	"context"
	"log/slog"

	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/reactive"
	"github.com/thenoetrevino/mytasks/internal/usecase"
)

// ViewModel owns the home screen state. The task query starts with the
// first subscriber and lives until Dispose.
type ViewModel struct {
	store      *reactive.Store[State]
	getTasks   usecase.GetTasks
	updateTask usecase.UpdateTask

	// only touched by the store loop
	query    reactive.Slot
	mutation reactive.Slot
}

// NewViewModel creates and starts the home view model
func NewViewModel(getTasks usecase.GetTasks, updateTask usecase.UpdateTask) *ViewModel {
	vm := &ViewModel{getTasks: getTasks, updateTask: updateTask}
	vm.store = reactive.New(State{Tasks: []models.Task{}}, vm.update,
		reactive.WithOnFirstSubscribe[State](startQuery{}),
		reactive.WithName[State]("home"),
	)
	vm.store.Start()
	return vm
}

// OnEvent submits an intent; it never blocks
func (vm *ViewModel) OnEvent(ev Event) {
	vm.store.Dispatch(ev)
}

// State returns the current snapshot
func (vm *ViewModel) State() State {
	return vm.store.State()
}

// Subscribe streams snapshots until ctx is done
func (vm *ViewModel) Subscribe(ctx context.Context) <-chan State {
	return vm.store.Subscribe(ctx)
}

// Effects streams the pending effect, nil once consumed
func (vm *ViewModel) Effects(ctx context.Context) <-chan feature.Effect {
	return reactive.Map(ctx, vm.store.Subscribe(ctx), func(s State) feature.Effect { return s.Effect })
}

// Dispose releases the task query and any running mutation
func (vm *ViewModel) Dispose() {
	vm.store.Dispose()
}

func (vm *ViewModel) update(ctx context.Context, s State, msg reactive.Msg) (State, reactive.Cmd) {
	switch m := msg.(type) {
	case startQuery:
		return s, vm.startQuery(ctx)

	case Reload:
		if vm.query.Running() {
			return s, nil
		}
		return s, vm.startQuery(ctx)

	case tasksResult:
		if !m.result.IsSuccess() {
			s.Effect = feature.ErrorEffect(m.result.Error())
			return s, nil
		}
		s.Tasks = m.result.Value()
		return s, nil

	case ToggleCompletion:
		s.IsLoading = true
		task := m.Task.Toggled()
		return s, vm.mutation.Launch(ctx, func(ctx context.Context) reactive.Cmd {
			return reactive.Await(vm.updateTask.Invoke(ctx, task), func(r models.Result[models.Unit]) reactive.Msg {
				return toggleDone{result: r}
			})
		})

	case toggleDone:
		s.IsLoading = false
		m.result.OnError(func(err models.DataError) {
			s.Effect = feature.ErrorEffect(err)
		})
		return s, nil

	case ExpandStateChanged:
		s.IsFabExpanded = m.Expanded
		return s, nil

	case BackPressed:
		s.OpenDialog = DialogExit
		return s, nil

	case ExitDialogConfirmed:
		s.OpenDialog = DialogNone
		s.Effect = feature.ExitApp{}
		return s, nil

	case ExitDialogCancelled:
		s.OpenDialog = DialogNone
		return s, nil

	case NavigateToNewTask:
		s.Effect = feature.NavigateToRoute{Route: models.RouteNewTask}
		return s, nil

	case NavigateToDetails:
		s.Effect = feature.NavigateToTaskDetails{Task: m.Task}
		return s, nil

	case ConsumeEffect:
		s.Effect = nil
		return s, nil

	default:
		slog.Warn("home: unhandled message", "msg", msg)
		return s, nil
	}
}

func (vm *ViewModel) startQuery(ctx context.Context) reactive.Cmd {
	return vm.query.Launch(ctx, func(ctx context.Context) reactive.Cmd {
		return reactive.Collect(vm.getTasks.Invoke(ctx), func(r models.Result[[]models.Task]) reactive.Msg {
			return tasksResult{result: r}
		})
	})
}
