package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clipkg "github.com/thenoetrevino/mytasks/internal/cli"
	"github.com/thenoetrevino/mytasks/internal/testutil"
	"github.com/thenoetrevino/mytasks/internal/testutil/cli"
)

func TestUpdateTask(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	due := time.Date(2026, 5, 1, 8, 0, 0, 0, time.Local)
	id := testutil.CreateTestTask(t, db, "Old title", "old description", due)

	t.Run("changes only the given fields", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{itoa(id), "--title", "New title", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, itoa(id)+"\n", output)

		task, ok := testutil.GetTestTask(t, db, id)
		require.True(t, ok)
		assert.Equal(t, "New title", task.Title)
		assert.Equal(t, "old description", task.Description)
		assert.True(t, due.Equal(task.DueDate))
	})

	t.Run("due date and completion", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{
			itoa(id), "--due", "2026-06-01", "--completed",
		})
		require.NoError(t, err)

		task, _ := testutil.GetTestTask(t, db, id)
		assert.True(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local).Equal(task.DueDate))
		assert.True(t, task.Completed)
	})

	t.Run("blank description is rejected", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{itoa(id), "--description", " "})
		require.Error(t, err)
		assert.Equal(t, clipkg.ExitValidation, clipkg.ExitCode(err))

		task, _ := testutil.GetTestTask(t, db, id)
		assert.Equal(t, "old description", task.Description)
	})

	t.Run("no flags", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{itoa(id)})
		require.Error(t, err)
		assert.Equal(t, clipkg.ExitUsage, clipkg.ExitCode(err))
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"999", "--title", "x"})
		require.Error(t, err)
		assert.Equal(t, clipkg.ExitNotFound, clipkg.ExitCode(err))
		assert.Equal(t, 1, testutil.CountTasks(t, db))
	})
}

func TestDoneTask(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	id := testutil.CreateTestTask(t, db, "Laundry", "whites", time.Now())

	output, err := cli.ExecuteCLICommand(t, app, DoneCmd(), []string{itoa(id), "--json"})
	require.NoError(t, err)
	data := cli.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, true, data["completed"])

	task, _ := testutil.GetTestTask(t, db, id)
	assert.True(t, task.Completed)

	// Marking done twice keeps it done
	_, err = cli.ExecuteCLICommand(t, app, DoneCmd(), []string{itoa(id), "--quiet"})
	require.NoError(t, err)
	task, _ = testutil.GetTestTask(t, db, id)
	assert.True(t, task.Completed)

	_, err = cli.ExecuteCLICommand(t, app, DoneCmd(), []string{itoa(id), "--undo", "--quiet"})
	require.NoError(t, err)
	task, _ = testutil.GetTestTask(t, db, id)
	assert.False(t, task.Completed)
}
