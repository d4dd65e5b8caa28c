package home

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/mytasks/internal/feature"
	"github.com/thenoetrevino/mytasks/internal/feature/featuretest"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/uitext"
	"github.com/thenoetrevino/mytasks/internal/usecase"
)

func newTestVM(t *testing.T) (*ViewModel, *featuretest.Repo) {
	t.Helper()
	repo := featuretest.NewRepo()
	set := usecase.NewSet(repo)
	vm := NewViewModel(set.GetTasks, set.UpdateTask)
	t.Cleanup(vm.Dispose)
	return vm, repo
}

// started subscribes once so the task query is running
func started(t *testing.T) (*ViewModel, *featuretest.Repo) {
	t.Helper()
	vm, repo := newTestVM(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	vm.Subscribe(ctx)
	featuretest.Eventually(t, repo.Queries, func(n int) bool { return n == 1 })
	return vm, repo
}

func TestHome_InitialState(t *testing.T) {
	vm, repo := newTestVM(t)

	s := vm.State()
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Tasks)
	assert.Nil(t, s.Effect)
	assert.Zero(t, repo.Queries(), "query starts with the first subscriber")
}

func TestHome_QueryIsSharedAcrossSubscribers(t *testing.T) {
	vm, repo := started(t)

	vm.Subscribe(context.Background())
	vm.Effects(context.Background())
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 1, repo.Queries())
}

func TestHome_QueryResults(t *testing.T) {
	vm, repo := started(t)
	tasks := []models.Task{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}

	repo.Query(0) <- models.Success(tasks)
	s := featuretest.Eventually(t, vm.State, func(s State) bool { return len(s.Tasks) == 2 })
	assert.False(t, s.IsLoading)

	repo.Query(0) <- models.Failure[[]models.Task](models.DatabaseReadError)
	s = featuretest.Eventually(t, vm.State, func(s State) bool { return s.Effect != nil })
	assert.Equal(t, feature.ShowError{Message: uitext.New(uitext.KeyGeneric)}, s.Effect)
	assert.Equal(t, tasks, s.Tasks, "stale list is kept after an error")
}

func TestHome_ReloadOnlyAfterQueryEnded(t *testing.T) {
	vm, repo := started(t)

	vm.OnEvent(Reload{})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, repo.Queries())

	close(repo.Query(0))
	require.Eventually(t, func() bool {
		vm.OnEvent(Reload{})
		return repo.Queries() == 2
	}, featuretest.Timeout, 10*time.Millisecond)
}

func TestHome_ToggleCompletion(t *testing.T) {
	vm, repo := started(t)
	task := models.Task{ID: 4, Title: "walk"}

	vm.OnEvent(ToggleCompletion{Task: task})
	call := featuretest.NextCall(t, repo)
	assert.Equal(t, "update", call.Op)
	assert.True(t, call.Task.Completed)
	assert.True(t, featuretest.Eventually(t, vm.State, func(s State) bool { return s.IsLoading }).IsLoading)

	call.Reply <- models.Success(models.Unit{})
	s := featuretest.Eventually(t, vm.State, func(s State) bool { return !s.IsLoading })
	assert.Nil(t, s.Effect)
}

func TestHome_ToggleFailureShowsError(t *testing.T) {
	vm, repo := started(t)

	vm.OnEvent(ToggleCompletion{Task: models.Task{ID: 1}})
	call := featuretest.NextCall(t, repo)
	call.Reply <- models.Failure[models.Unit](models.DatabaseWriteError)

	s := featuretest.Eventually(t, vm.State, func(s State) bool { return !s.IsLoading && s.Effect != nil })
	assert.Equal(t, feature.ShowError{Message: uitext.New(uitext.KeyGeneric)}, s.Effect)
}

func TestHome_SecondToggleSupersedesFirst(t *testing.T) {
	vm, repo := started(t)

	vm.OnEvent(ToggleCompletion{Task: models.Task{ID: 1, Title: "A"}})
	vm.OnEvent(ToggleCompletion{Task: models.Task{ID: 2, Title: "B"}})

	a := featuretest.NextCall(t, repo)
	b := featuretest.NextCall(t, repo)
	require.Equal(t, "A", a.Task.Title)
	require.Equal(t, "B", b.Task.Title)

	select {
	case <-a.Ctx.Done():
	case <-time.After(featuretest.Timeout):
		t.Fatal("first toggle was not cancelled")
	}

	// A's late failure must never surface
	a.Reply <- models.Failure[models.Unit](models.DatabaseWriteError)
	time.Sleep(30 * time.Millisecond)
	s := vm.State()
	assert.True(t, s.IsLoading, "loading until B resolves")
	assert.Nil(t, s.Effect)

	b.Reply <- models.Success(models.Unit{})
	s = featuretest.Eventually(t, vm.State, func(s State) bool { return !s.IsLoading })
	assert.Nil(t, s.Effect)
}

func TestHome_CancelledToggleIsNotAnError(t *testing.T) {
	vm, repo := started(t)

	vm.OnEvent(ToggleCompletion{Task: models.Task{ID: 1}})
	call := featuretest.NextCall(t, repo)
	close(call.Reply) // ended without a value

	time.Sleep(30 * time.Millisecond)
	assert.Nil(t, vm.State().Effect)
}

func TestHome_Navigation(t *testing.T) {
	vm, _ := started(t)
	task := models.Task{ID: 9, Title: "x"}

	vm.OnEvent(NavigateToNewTask{})
	s := featuretest.Eventually(t, vm.State, func(s State) bool { return s.Effect != nil })
	assert.Equal(t, feature.NavigateToRoute{Route: models.RouteNewTask}, s.Effect)

	vm.OnEvent(ConsumeEffect{})
	vm.OnEvent(NavigateToDetails{Task: task})
	s = featuretest.Eventually(t, vm.State, func(s State) bool {
		return s.Effect != nil && s.Effect != feature.Effect(feature.NavigateToRoute{Route: models.RouteNewTask})
	})
	assert.Equal(t, feature.NavigateToTaskDetails{Task: task}, s.Effect)
}

func TestHome_FabAndExitDialog(t *testing.T) {
	vm, _ := started(t)

	vm.OnEvent(ExpandStateChanged{Expanded: true})
	featuretest.Eventually(t, vm.State, func(s State) bool { return s.IsFabExpanded })

	vm.OnEvent(BackPressed{})
	featuretest.Eventually(t, vm.State, func(s State) bool { return s.OpenDialog == DialogExit })

	vm.OnEvent(ExitDialogCancelled{})
	featuretest.Eventually(t, vm.State, func(s State) bool { return s.OpenDialog == DialogNone })

	vm.OnEvent(BackPressed{})
	vm.OnEvent(ExitDialogConfirmed{})
	s := featuretest.Eventually(t, vm.State, func(s State) bool { return s.Effect != nil })
	assert.Equal(t, DialogNone, s.OpenDialog)
	assert.Equal(t, feature.ExitApp{}, s.Effect)
}

func TestHome_ConsumeEffectIsIdempotent(t *testing.T) {
	vm, _ := started(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	states := vm.Subscribe(ctx)
	<-states

	// Nothing pending: no new snapshot
	vm.OnEvent(ConsumeEffect{})
	time.Sleep(20 * time.Millisecond)
	select {
	case s := <-states:
		t.Fatalf("unexpected snapshot: %+v", s)
	default:
	}

	vm.OnEvent(NavigateToNewTask{})
	featuretest.Eventually(t, vm.State, func(s State) bool { return s.Effect != nil })
	vm.OnEvent(ConsumeEffect{})
	vm.OnEvent(ConsumeEffect{})
	featuretest.Eventually(t, vm.State, func(s State) bool { return s.Effect == nil })
}

func TestHome_EffectsStreamObservesConsume(t *testing.T) {
	vm, _ := started(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	effects := vm.Effects(ctx)
	assert.Nil(t, <-effects)

	vm.OnEvent(BackPressed{})
	vm.OnEvent(ExitDialogConfirmed{})
	assert.Equal(t, feature.ExitApp{}, waitEffect(t, effects))

	vm.OnEvent(ConsumeEffect{})
	assert.Nil(t, waitEffect(t, effects))

	// A late subscriber never sees the consumed effect
	late := vm.Effects(ctx)
	assert.Nil(t, <-late)
}

func waitEffect(t *testing.T, ch <-chan feature.Effect) feature.Effect {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(featuretest.Timeout):
		t.Fatal("timeout waiting for effect")
		return nil
	}
}
