// Package taskform implements the form shared by the new task and edit task screens.
package taskform

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/reactive"
	"github.com/thenoetrevino/mytasks/internal/uitext"
)

// SaveFunc persists a task and reports the outcome as a single-shot stream
type SaveFunc func(ctx context.Context, task models.Task) <-chan models.Result[models.Unit]

// Validate returns the message for the first invalid field, if any.
// Title and description must contain something other than whitespace.
func Validate(s State) (uitext.Text, bool) {
	if strings.TrimSpace(s.Title) == "" {
		return uitext.New(uitext.KeyTitleCannotBeEmpty), false
	}
	if strings.TrimSpace(s.Description) == "" {
		return uitext.New(uitext.KeyDescriptionCannotBeEmpty), false
	}
	return uitext.Text{}, true
}

// Form is the state machine behind a task form
type Form struct {
	store     *reactive.Store[State]
	save      SaveFunc
	allowLoad bool
	slot      reactive.Slot
}

// Option configures a Form
type Option func(*Form)

// AcceptLoad lets the form be filled with LoadTask
func AcceptLoad() Option {
	return func(f *Form) {
		f.allowLoad = true
	}
}

// New creates and starts a form. Proceed hands the validated task to save.
func New(name string, initial State, save SaveFunc, opts ...Option) *Form {
	f := &Form{save: save}
	for _, opt := range opts {
		opt(f)
	}
	f.store = reactive.New(initial, f.update, reactive.WithName[State](name))
	f.store.Start()
	return f
}

// Blank is the state of an empty form with the due date set to now
func Blank() State {
	return State{DueDate: time.Now()}
}

// OnEvent submits an intent; it never blocks
func (f *Form) OnEvent(ev Event) {
	f.store.Dispatch(ev)
}

// State returns the current snapshot
func (f *Form) State() State {
	return f.store.State()
}

// Subscribe streams snapshots until ctx is done
func (f *Form) Subscribe(ctx context.Context) <-chan State {
	return f.store.Subscribe(ctx)
}

// Effects streams the pending effect, nil once consumed
func (f *Form) Effects(ctx context.Context) <-chan feature.Effect {
	return reactive.Map(ctx, f.store.Subscribe(ctx), func(s State) feature.Effect { return s.Effect })
}

// Dispose cancels a running save and releases the form
func (f *Form) Dispose() {
	f.store.Dispose()
}

func (f *Form) update(ctx context.Context, s State, msg reactive.Msg) (State, reactive.Cmd) {
	switch m := msg.(type) {
	case UpdateTitle:
		s.Title = m.Title
	case UpdateDescription:
		s.Description = m.Description
	case UpdateDueDate:
		s.DueDate = m.DueDate
	case UpdateCompleted:
		s.Completed = m.Completed

	case LoadTask:
		if !f.allowLoad {
			slog.Warn("taskform: LoadTask ignored on a create form")
			return s, nil
		}
		s.ID = m.Task.ID
		s.Title = m.Task.Title
		s.Description = m.Task.Description
		s.DueDate = m.Task.DueDate
		s.Completed = m.Task.Completed

	case Proceed:
		if text, ok := Validate(s); !ok {
			s.Effect = feature.ShowError{Message: text}
			return s, nil
		}
		s.IsLoading = true
		task := s.Task()
		return s, f.slot.Launch(ctx, func(ctx context.Context) reactive.Cmd {
			return reactive.Await(f.save(ctx, task), func(r models.Result[models.Unit]) reactive.Msg {
				return saved{result: r}
			})
		})

	case saved:
		s.IsLoading = false
		if m.result.IsSuccess() {
			s.Effect = feature.ShowSuccess{Message: uitext.New(uitext.KeyTaskSaved)}
		} else {
			s.Effect = feature.ErrorEffect(m.result.Error())
		}

	case ConsumeEffect:
		s.Effect = nil

	default:
		slog.Warn("taskform: unhandled message", "msg", msg)
	}
	return s, nil
}
