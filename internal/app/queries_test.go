package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/mytasks/internal/testutil"
)

func TestTasksAndFindTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := New(db)
	ctx := context.Background()

	later := testutil.CreateTestTask(t, db, "later", "d", time.Now().Add(time.Hour))
	sooner := testutil.CreateTestTask(t, db, "sooner", "d", time.Now())

	tasks, err := a.Tasks(ctx)
	require.Nil(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, sooner, tasks[0].ID)
	assert.Equal(t, later, tasks[1].ID)

	task, found, err := a.FindTask(ctx, later)
	require.Nil(t, err)
	assert.True(t, found)
	assert.Equal(t, "later", task.Title)

	_, found, err = a.FindTask(ctx, 999)
	require.Nil(t, err)
	assert.False(t, found)
}
