package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/feature/taskform"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/tui/forms"
	"github.com/thenoetrevino/mytasks/internal/tui/notifications"
)

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldDue         = "due"

	descriptionLimit = 4000
)

type formScreen struct {
	form     *taskform.Form
	fields   *forms.Form
	desc     *forms.TextArea
	states   <-chan taskform.State
	cancel   context.CancelFunc
	state    taskform.State
	returnTo models.Route
	effects  effectGate
}

// newFormScreen binds text fields to a task form. Every edit is forwarded
// to the form as an intent so the view model always holds the draft.
func newFormScreen(ctx context.Context, form *taskform.Form, state taskform.State, nextKey string, returnTo models.Route) *formScreen {
	title := forms.NewTextInput(fieldTitle, "Title", "What needs doing?", func(v string) {
		form.OnEvent(taskform.UpdateTitle{Title: v})
	})
	desc := forms.NewTextArea(fieldDescription, "Description", "Markdown is supported", descriptionLimit, func(v string) {
		form.OnEvent(taskform.UpdateDescription{Description: v})
	})
	due := forms.NewTextInput(fieldDue, "Due", models.DueDateLayout, func(v string) {
		if t, err := models.ParseDueDate(v); err == nil {
			form.OnEvent(taskform.UpdateDueDate{DueDate: t})
		}
	}).WithValidation(func(v string) error {
		_, err := models.ParseDueDate(v)
		return err
	})

	title.SetValue(state.Title)
	desc.SetValue(state.Description)
	due.SetValue(formatDue(state.DueDate))

	ctx, cancel := context.WithCancel(ctx)
	return &formScreen{
		form:     form,
		fields:   forms.NewForm(nextKey, title, desc, due),
		desc:     desc,
		states:   form.Subscribe(ctx),
		cancel:   cancel,
		state:    state,
		returnTo: returnTo,
	}
}

func formatDue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(models.DueDateLayout)
}

func (f *formScreen) listen() tea.Cmd {
	form := f.form
	return listen(f.states, func(s taskform.State) tea.Msg { return formStateMsg{source: form, state: s} })
}

func (f *formScreen) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields, cmd = f.fields.Update(msg)
	return cmd
}

func (f *formScreen) resize(width int) {
	f.desc.SetWidth(max(20, width-4))
}

func (m *Model) openForm(form *taskform.Form, initial taskform.State, route, returnTo models.Route) tea.Cmd {
	m.closeForm()
	m.form = newFormScreen(m.ctx, form, initial, m.keys.NextField, returnTo)
	if m.width > 0 {
		m.form.resize(m.width)
	}
	m.route = route
	return tea.Batch(m.form.fields.Init(), m.form.listen())
}

func (m *Model) openNewTask() tea.Cmd {
	vm := m.app.NewNewTask()
	return m.openForm(vm.Form, vm.State(), models.RouteNewTask, models.RouteHome)
}

// openUpdateTask loads task into an edit form. Dispatch is asynchronous so
// the fields are filled from task rather than from the form's snapshot.
func (m *Model) openUpdateTask(task models.Task, returnTo models.Route) tea.Cmd {
	vm := m.app.NewUpdateTask()
	vm.Load(task)
	initial := taskform.State{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
	}
	return m.openForm(vm.Form, initial, models.RouteUpdateTask, returnTo)
}

func (m *Model) closeForm() {
	if m.form == nil {
		return
	}
	m.form.cancel()
	m.form.form.Dispose()
	m.form = nil
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg) tea.Cmd {
	f := m.form
	if f == nil {
		m.route = models.RouteHome
		return nil
	}

	switch msg.String() {
	case m.keys.SaveForm:
		if !f.state.IsLoading {
			f.form.OnEvent(taskform.Proceed{})
		}
		return nil
	case m.keys.Back:
		m.route = f.returnTo
		m.closeForm()
		return nil
	}
	return f.update(msg)
}

func (m *Model) handleFormState(msg formStateMsg) tea.Cmd {
	if m.form == nil || msg.source != m.form.form {
		return nil
	}
	f := m.form
	f.state = msg.state

	effect, ok := f.effects.take(msg.state.Effect)
	if !ok {
		return f.listen()
	}
	f.form.OnEvent(taskform.ConsumeEffect{})

	if n, ok := notifications.FromEffect(effect); ok {
		m.notify(n)
	}
	if _, saved := effect.(feature.ShowSuccess); saved {
		// the details screen shows the task as it was before the edit
		m.closeForm()
		m.closeDetails()
		m.route = models.RouteHome
		return nil
	}
	return f.listen()
}
