package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/feature/details"
	"github.com/thenoetrevino/mytasks/internal/feature/taskform"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/uitext"
)

// TaskJSON is the wire form of a task
type TaskJSON struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Completed   bool      `json:"completed"`
}

// ToTaskJSON converts a task to its wire form
func ToTaskJSON(t models.Task) TaskJSON {
	return TaskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
	}
}

func toTaskList(tasks []models.Task) []TaskJSON {
	out := make([]TaskJSON, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskJSON(t)
	}
	return out
}

// taskInput is the body of create and update requests. Absent fields keep
// their current value on update.
type taskInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   *bool      `json:"completed"`
}

// statusFor maps a data error to an HTTP status
func statusFor(err models.DataError) int {
	switch err {
	case models.DatabaseWriteError:
		return http.StatusNotFound
	case models.DiskFull:
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}

// ListTasks returns every task ordered by due date
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.app.Tasks(r.Context())
	if err != nil {
		respondError(w, statusFor(err), uitext.FromDataError(err).Resolve())
		return
	}
	respondJSON(w, http.StatusOK, toTaskList(tasks))
}

// lookup resolves the {id} parameter, writing the error response itself
func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (models.Task, bool) {
	id, err := parseID(r, "id")
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return models.Task{}, false
	}
	task, found, dataErr := h.app.FindTask(r.Context(), id)
	if dataErr != nil {
		respondError(w, statusFor(dataErr), uitext.FromDataError(dataErr).Resolve())
		return models.Task{}, false
	}
	if !found {
		respondError(w, http.StatusNotFound, "task not found")
		return models.Task{}, false
	}
	return task, true
}

// GetTask returns one task
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, ToTaskJSON(task))
}

// CreateTask fills a new task form from the body and submits it
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in taskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	vm := h.app.NewNewTask()
	defer vm.Dispose()

	h.submit(w, r, vm.Form, in, http.StatusCreated)
}

// UpdateTask loads the stored task into an edit form, applies the body and submits it
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var in taskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	vm := h.app.NewUpdateTask()
	defer vm.Dispose()
	vm.Load(task)

	h.submit(w, r, vm.Form, in, http.StatusOK)
}

// submit replays the body as form intents, proceeds, and answers with the
// effect the form reports
func (h *Handlers) submit(w http.ResponseWriter, r *http.Request, form *taskform.Form, in taskInput, okStatus int) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	effects := form.Effects(ctx)

	if in.Title != nil {
		form.OnEvent(taskform.UpdateTitle{Title: *in.Title})
	}
	if in.Description != nil {
		form.OnEvent(taskform.UpdateDescription{Description: *in.Description})
	}
	if in.DueDate != nil {
		form.OnEvent(taskform.UpdateDueDate{DueDate: *in.DueDate})
	}
	if in.Completed != nil {
		form.OnEvent(taskform.UpdateCompleted{Completed: *in.Completed})
	}
	form.OnEvent(taskform.Proceed{})

	h.respondEffect(ctx, w, effects, okStatus, func() any {
		return ToTaskJSON(form.State().Task())
	})
}

// DeleteTask deletes a task through the details screen
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.lookup(w, r)
	if !ok {
		return
	}

	vm := h.app.NewDetails()
	defer vm.Dispose()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	effects := vm.Effects(ctx)

	vm.OnEvent(details.LoadTask{Task: task})
	vm.OnEvent(details.DeleteTask{})

	h.respondEffect(ctx, w, effects, http.StatusOK, func() any {
		return ToTaskJSON(task)
	})
}

// ToggleTask flips the completion flag of a task
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.lookup(w, r)
	if !ok {
		return
	}

	toggled := task.Toggled()
	res, open := <-h.app.UseCases.UpdateTask.Invoke(r.Context(), toggled)
	if !open {
		respondError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	if !res.IsSuccess() {
		respondError(w, statusFor(res.Error()), uitext.FromDataError(res.Error()).Resolve())
		return
	}
	respondJSON(w, http.StatusOK, ToTaskJSON(toggled))
}

type outcomeBody struct {
	Message string `json:"message"`
	Task    any    `json:"task,omitempty"`
}

// respondEffect waits for the screen's effect and turns it into the response
func (h *Handlers) respondEffect(ctx context.Context, w http.ResponseWriter, effects <-chan feature.Effect, okStatus int, body func() any) {
	effect, err := awaitEffect(ctx, effects, h.writeTimeout)
	if err != nil {
		respondError(w, http.StatusGatewayTimeout, "no outcome reported: "+err.Error())
		return
	}

	switch e := effect.(type) {
	case feature.ShowSuccess:
		respondJSON(w, okStatus, outcomeBody{Message: e.Message.Resolve(), Task: body()})
	case feature.ShowError:
		respondError(w, errorStatus(e.Message), e.Message.Resolve())
	default:
		respondError(w, http.StatusInternalServerError, "unexpected outcome: "+feature.Describe(effect))
	}
}

// errorStatus picks the status for a ShowError raised by a form or screen
func errorStatus(text uitext.Text) int {
	switch text.Key {
	case uitext.KeyTitleCannotBeEmpty, uitext.KeyDescriptionCannotBeEmpty:
		return http.StatusUnprocessableEntity
	case uitext.KeyDiskFull:
		return http.StatusInsufficientStorage
	}
	if strings.HasPrefix(text.Key, "error_") {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
