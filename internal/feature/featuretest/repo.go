// Package featuretest provides a scriptable TasksRepository for view model tests.
package featuretest

import (
	"context"
	"sync"

	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/repository"
)

// Call is one mutation received by the Repo. The test answers it through
// Reply, or closes Reply to model a call that ended without a value.
type Call struct {
	Op    string
	Task  models.Task
	Ctx   context.Context
	Reply chan models.Result[models.Unit]
}

// Repo records every call and lets the test decide how each one ends
type Repo struct {
	mu      sync.Mutex
	queries []chan models.Result[[]models.Task]
	calls   chan Call
}

var _ repository.TasksRepository = (*Repo)(nil)

// NewRepo creates an empty Repo
func NewRepo() *Repo {
	return &Repo{calls: make(chan Call, 16)}
}

// GetTasks opens a new query stream the test feeds through Query
func (r *Repo) GetTasks(ctx context.Context) <-chan models.Result[[]models.Task] {
	in := make(chan models.Result[[]models.Task])
	out := make(chan models.Result[[]models.Task])

	r.mu.Lock()
	r.queries = append(r.queries, in)
	r.mu.Unlock()

	go func() {
		defer close(out)
		for {
			select {
			case v, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Queries returns how many times GetTasks was called
func (r *Repo) Queries() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries)
}

// Query returns the feed of the i-th GetTasks stream
func (r *Repo) Query(i int) chan<- models.Result[[]models.Task] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queries[i]
}

// Calls delivers mutations in the order they were issued
func (r *Repo) Calls() <-chan Call {
	return r.calls
}

func (r *Repo) mutate(ctx context.Context, op string, task models.Task) <-chan models.Result[models.Unit] {
	reply := make(chan models.Result[models.Unit], 1)
	out := make(chan models.Result[models.Unit], 1)
	r.calls <- Call{Op: op, Task: task, Ctx: ctx, Reply: reply}

	go func() {
		defer close(out)
		select {
		case v, ok := <-reply:
			if ok && ctx.Err() == nil {
				out <- v
			}
		case <-ctx.Done():
		}
	}()
	return out
}

func (r *Repo) AddTask(ctx context.Context, task models.Task) <-chan models.Result[models.Unit] {
	return r.mutate(ctx, "add", task)
}

func (r *Repo) UpdateTask(ctx context.Context, task models.Task) <-chan models.Result[models.Unit] {
	return r.mutate(ctx, "update", task)
}

func (r *Repo) DeleteTask(ctx context.Context, task models.Task) <-chan models.Result[models.Unit] {
	return r.mutate(ctx, "delete", task)
}
