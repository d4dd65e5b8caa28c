package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/mytasks/internal/events"
	"github.com/thenoetrevino/mytasks/internal/models"
)

// recordingPublisher counts published events and replays injected ones from Listen
type recordingPublisher struct {
	mu       sync.Mutex
	sent     []events.Event
	incoming chan events.Event
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{incoming: make(chan events.Event, 4)}
}

func (p *recordingPublisher) Connect(context.Context) error { return nil }
func (p *recordingPublisher) Close() error                  { return nil }

func (p *recordingPublisher) SendEvent(ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, ev)
	return nil
}

func (p *recordingPublisher) Listen(context.Context) (<-chan events.Event, error) {
	return p.incoming, nil
}

func (p *recordingPublisher) sentCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent)
}

func TestInitDB_MigrationsAreIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, runMigrations(ctx, db))

	var version int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	var index string
	err := db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_tasks_due_date'`).Scan(&index)
	require.NoError(t, err)
}

func TestInsertOrReplace_AssignsIDs(t *testing.T) {
	dao := NewTaskDAO(setupTestDB(t))
	ctx := context.Background()

	id1, err := dao.InsertOrReplace(ctx, taskDue("a", time.Now()))
	require.NoError(t, err)
	id2, err := dao.InsertOrReplace(ctx, taskDue("b", time.Now()))
	require.NoError(t, err)

	assert.Positive(t, id1)
	assert.Greater(t, id2, id1)
}

func TestInsertOrReplace_LastWriteWins(t *testing.T) {
	dao := NewTaskDAO(setupTestDB(t))
	ctx := context.Background()

	id, err := dao.InsertOrReplace(ctx, taskDue("first", time.Now()))
	require.NoError(t, err)

	replacement := taskDue("second", time.Now())
	replacement.ID = id
	replacement.Completed = true
	got, err := dao.InsertOrReplace(ctx, replacement)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	tasks, err := dao.queryAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "second", tasks[0].Title)
	assert.True(t, tasks[0].Completed)
}

func TestQueryAll_OrdersByDueDateThenID(t *testing.T) {
	dao := NewTaskDAO(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	for _, task := range []models.Task{
		taskDue("late", base.Add(2*time.Hour)),
		taskDue("early", base),
		taskDue("tie-1", base.Add(time.Hour)),
		taskDue("tie-2", base.Add(time.Hour)),
	} {
		_, err := dao.InsertOrReplace(ctx, task)
		require.NoError(t, err)
	}

	tasks, err := dao.queryAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "tie-1", "tie-2", "late"}, titles(tasks))
	assert.True(t, tasks[0].DueDate.Equal(base))
}

func TestUpdateAndDelete_MissingRowAffectsNothing(t *testing.T) {
	dao := NewTaskDAO(setupTestDB(t))
	ctx := context.Background()

	ghost := taskDue("ghost", time.Now())
	ghost.ID = 999

	n, err := dao.Update(ctx, ghost)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = dao.Delete(ctx, ghost)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpdateAndDelete_ExistingRow(t *testing.T) {
	dao := NewTaskDAO(setupTestDB(t))
	ctx := context.Background()

	task := taskDue("write tests", time.Now())
	id, err := dao.InsertOrReplace(ctx, task)
	require.NoError(t, err)
	task.ID = id

	n, err := dao.Update(ctx, task.Toggled())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	tasks, err := dao.queryAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)

	n, err = dao.Delete(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	tasks, err = dao.queryAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestObserveAll_EmitsInitialAndAfterWrites(t *testing.T) {
	dao := NewTaskDAO(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	live, _ := dao.ObserveAll(ctx)
	assert.Empty(t, nextSnapshot(t, live))

	id, err := dao.InsertOrReplace(ctx, taskDue("one", time.Now()))
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, titles(nextSnapshot(t, live)))

	_, err = dao.Delete(ctx, models.Task{ID: id})
	require.NoError(t, err)
	assert.Empty(t, nextSnapshot(t, live))
}

func TestObserveAll_CancelReleasesSubscription(t *testing.T) {
	dao := NewTaskDAO(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())

	live, errc := dao.ObserveAll(ctx)
	nextSnapshot(t, live)
	cancel()

	for range live {
	}
	assert.NoError(t, <-errc)
	require.Eventually(t, func() bool { return dao.notifier.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestObserveAll_QueryFaultIsReported(t *testing.T) {
	db := setupTestDB(t)
	dao := NewTaskDAO(db)
	require.NoError(t, db.Close())

	live, errc := dao.ObserveAll(context.Background())
	for range live {
	}
	assert.Error(t, <-errc)
}

func TestWrites_PublishEvents(t *testing.T) {
	pub := newRecordingPublisher()
	dao := NewTaskDAO(setupTestDB(t), WithPublisher(pub))
	ctx := context.Background()

	id, err := dao.InsertOrReplace(ctx, taskDue("x", time.Now()))
	require.NoError(t, err)
	_, err = dao.Update(ctx, models.Task{ID: id, Title: "y"})
	require.NoError(t, err)
	// no row, no event
	_, err = dao.Delete(ctx, models.Task{ID: id + 100})
	require.NoError(t, err)

	assert.Equal(t, 2, pub.sentCount())
}

func TestWatchExternal_RefreshesLiveQueries(t *testing.T) {
	db := setupTestDB(t)
	pub := newRecordingPublisher()
	local := NewTaskDAO(db)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, local.WatchExternal(ctx, pub))

	live, _ := local.ObserveAll(ctx)
	assert.Empty(t, nextSnapshot(t, live))

	// Another process writes directly and reports it through the daemon
	_, err := db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, due_date, is_completed) VALUES ('remote', '', 0, 0)`)
	require.NoError(t, err)
	pub.incoming <- events.TasksChanged()

	assert.Equal(t, []string{"remote"}, titles(nextSnapshot(t, live)))
}

func TestWatchExternal_RequiresPublisher(t *testing.T) {
	dao := NewTaskDAO(setupTestDB(t))
	assert.Error(t, dao.WatchExternal(context.Background(), nil))
}

func TestPersistence_SurvivesReopen(t *testing.T) {
	db, path := setupTestDBFile(t)
	ctx := context.Background()
	due := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	_, err := NewTaskDAO(db).InsertOrReplace(ctx, taskDue("durable", due))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := InitDB(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	tasks, err := NewTaskDAO(reopened).queryAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "durable", tasks[0].Title)
	assert.True(t, tasks[0].DueDate.Equal(due))
}
