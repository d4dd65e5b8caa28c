// Package details drives the screen showing a single task.
package details

import (
	"context"
	"log/slog"

	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/reactive"
	"github.com/thenoetrevino/mytasks/internal/uitext"
	"github.com/thenoetrevino/mytasks/internal/usecase"
)

type ViewModel struct {
	store      *reactive.Store[State]
	deleteTask usecase.DeleteTask
	slot       reactive.Slot
}

// NewViewModel creates and starts the view model
func NewViewModel(deleteTask usecase.DeleteTask) *ViewModel {
	vm := &ViewModel{deleteTask: deleteTask}
	vm.store = reactive.New(State{}, vm.update, reactive.WithName[State]("task_details"))
	vm.store.Start()
	return vm
}

func (vm *ViewModel) OnEvent(ev Event) {
	vm.store.Dispatch(ev)
}

func (vm *ViewModel) State() State {
	return vm.store.State()
}

func (vm *ViewModel) Subscribe(ctx context.Context) <-chan State {
	return vm.store.Subscribe(ctx)
}

func (vm *ViewModel) Effects(ctx context.Context) <-chan feature.Effect {
	return reactive.Map(ctx, vm.store.Subscribe(ctx), func(s State) feature.Effect { return s.Effect })
}

func (vm *ViewModel) Dispose() {
	vm.store.Dispose()
}

func (vm *ViewModel) update(ctx context.Context, s State, msg reactive.Msg) (State, reactive.Cmd) {
	switch m := msg.(type) {
	case LoadTask:
		task := m.Task
		s.Task = &task

	case EditTask:
		if s.Task != nil {
			s.Effect = feature.NavigateToUpdate{Task: *s.Task}
		}

	case DeleteTask:
		if s.Task == nil {
			return s, nil
		}
		s.IsLoading = true
		task := *s.Task
		return s, vm.slot.Launch(ctx, func(ctx context.Context) reactive.Cmd {
			return reactive.Await(vm.deleteTask.Invoke(ctx, task), func(r models.Result[models.Unit]) reactive.Msg {
				return deleted{result: r}
			})
		})

	case deleted:
		s.IsLoading = false
		if m.result.IsSuccess() {
			s.Effect = feature.ShowSuccess{Message: uitext.New(uitext.KeyTaskDeleted)}
		} else {
			s.Effect = feature.ErrorEffect(m.result.Error())
		}

	case ConsumeEffect:
		s.Effect = nil

	default:
		slog.Warn("details: unhandled message", "msg", msg)
	}
	return s, nil
}
