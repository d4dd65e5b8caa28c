package home

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/mytasks/internal/database"
	"github.com/thenoetrevino/mytasks/internal/feature/featuretest"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/repository"
	"github.com/thenoetrevino/mytasks/internal/testutil"
	"github.com/thenoetrevino/mytasks/internal/usecase"
)

func drained[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		for range ch {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(featuretest.Timeout):
		t.Fatal("channel still open after Dispose")
	}
}

func TestHome_DisposeReleasesLiveQuery(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	notifier := database.NewNotifier()
	store := database.NewTaskDAO(db, database.WithNotifier(notifier))
	set := usecase.NewSet(repository.New(store))

	_, err := store.InsertOrReplace(ctx, models.NewTask("water plants", "balcony"))
	require.NoError(t, err)

	vm := NewViewModel(set.GetTasks, set.UpdateTask)
	states := vm.Subscribe(ctx)
	effects := vm.Effects(ctx)

	featuretest.Eventually(t, vm.State, func(s State) bool { return len(s.Tasks) == 1 })
	assert.Equal(t, 1, notifier.Len())

	// leave an effect pending
	vm.OnEvent(NavigateToNewTask{})
	featuretest.Eventually(t, vm.State, func(s State) bool { return s.Effect != nil })

	vm.Dispose()

	require.Eventually(t, func() bool { return notifier.Len() == 0 }, featuretest.Timeout, 5*time.Millisecond)
	drained(t, states)
	drained(t, effects)

	assert.Nil(t, vm.State().Effect, "pending effect is dropped")
	_, open := <-vm.Subscribe(ctx)
	assert.False(t, open)

	// a write after teardown reaches nobody
	_, err = store.InsertOrReplace(ctx, models.NewTask("late", "d"))
	require.NoError(t, err)
	assert.Equal(t, 0, notifier.Len())
}
