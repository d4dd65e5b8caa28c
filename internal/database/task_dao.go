package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/mytasks/internal/events"
	"github.com/thenoetrevino/mytasks/internal/models"
)

const selectAllTasks = `
	SELECT id, title, description, due_date, is_completed
	FROM tasks
	ORDER BY due_date ASC, id ASC`

// TaskDAO reads and writes the tasks table and drives the live queries on it
type TaskDAO struct {
	db        *sql.DB
	notifier  *Notifier
	publisher events.EventPublisher
}

// Option configures a TaskDAO
type Option func(*TaskDAO)

// WithPublisher announces every committed write to other processes
func WithPublisher(publisher events.EventPublisher) Option {
	return func(d *TaskDAO) {
		d.publisher = publisher
	}
}

// WithNotifier shares a notifier between several DAOs on the same database
func WithNotifier(n *Notifier) Option {
	return func(d *TaskDAO) {
		d.notifier = n
	}
}

// NewTaskDAO creates a DAO over an initialized database
func NewTaskDAO(db *sql.DB, opts ...Option) *TaskDAO {
	d := &TaskDAO{db: db}
	for _, opt := range opts {
		opt(d)
	}
	if d.notifier == nil {
		d.notifier = NewNotifier()
	}
	return d
}

// ObserveAll implements TaskStore
func (d *TaskDAO) ObserveAll(ctx context.Context) (<-chan []models.Task, <-chan error) {
	out := make(chan []models.Task)
	errc := make(chan error, 1)

	// Subscribe before the first query so no write can slip in between
	ticks, unsubscribe := d.notifier.Subscribe()

	go func() {
		defer close(out)
		defer close(errc)
		defer unsubscribe()

		for {
			tasks, err := d.queryAll(ctx)
			if err != nil {
				if ctx.Err() == nil {
					errc <- err
				}
				return
			}

			select {
			case out <- tasks:
			case <-ctx.Done():
				return
			}

			select {
			case <-ticks:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, errc
}

func (d *TaskDAO) queryAll(ctx context.Context) ([]models.Task, error) {
	rows, err := d.db.QueryContext(ctx, selectAllTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var (
			t   models.Task
			due int64
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &due, &t.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.DueDate = fromMillis(due)
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// InsertOrReplace implements TaskStore
func (d *TaskDAO) InsertOrReplace(ctx context.Context, task models.Task) (int64, error) {
	var id int64

	err := withTx(ctx, d.db, func(tx *sql.Tx) error {
		var (
			res sql.Result
			err error
		)
		if task.IsPersisted() {
			res, err = tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO tasks (id, title, description, due_date, is_completed) VALUES (?, ?, ?, ?, ?)`,
				task.ID, task.Title, task.Description, toMillis(task.DueDate), task.Completed)
		} else {
			res, err = tx.ExecContext(ctx,
				`INSERT INTO tasks (title, description, due_date, is_completed) VALUES (?, ?, ?, ?)`,
				task.Title, task.Description, toMillis(task.DueDate), task.Completed)
		}
		if err != nil {
			return fmt.Errorf("failed to insert task: %w", err)
		}

		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}

	d.changed()
	return id, nil
}

// Update implements TaskStore
func (d *TaskDAO) Update(ctx context.Context, task models.Task) (int64, error) {
	return d.exec(ctx,
		`UPDATE tasks SET title = ?, description = ?, due_date = ?, is_completed = ? WHERE id = ?`,
		task.Title, task.Description, toMillis(task.DueDate), task.Completed, task.ID)
}

// Delete implements TaskStore
func (d *TaskDAO) Delete(ctx context.Context, task models.Task) (int64, error) {
	return d.exec(ctx, `DELETE FROM tasks WHERE id = ?`, task.ID)
}

// exec runs a single statement in a transaction and returns the affected row count
func (d *TaskDAO) exec(ctx context.Context, query string, args ...any) (int64, error) {
	var affected int64

	err := withTx(ctx, d.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		d.changed()
	}
	return affected, nil
}

// changed wakes local live queries and tells other processes
func (d *TaskDAO) changed() {
	d.notifier.Notify()
	sendEvent(d.publisher)
}

// WatchExternal refreshes live queries whenever another process reports a
// write through the daemon. It returns once listening has started; the
// watch ends when ctx is done or the daemon connection is lost for good.
func (d *TaskDAO) WatchExternal(ctx context.Context, publisher events.EventPublisher) error {
	if publisher == nil {
		return errors.New("no event publisher")
	}

	ch, err := publisher.Listen(ctx)
	if err != nil {
		return fmt.Errorf("failed to listen for events: %w", err)
	}

	go func() {
		for ev := range ch {
			if ev.Type != events.EventTasksChanged {
				continue
			}
			slog.Debug("external tasks change", "origin", ev.Origin, "sequence", ev.SequenceID)
			d.notifier.Notify()
		}
	}()

	return nil
}
