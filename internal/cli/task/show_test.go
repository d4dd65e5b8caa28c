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

func TestShowTask(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	id := testutil.CreateTestTask(t, db, "Write report", "quarterly numbers", time.Now())

	t.Run("found", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{itoa(id)})
		require.NoError(t, err)
		assert.Contains(t, output, "Title:     Write report")
		assert.Contains(t, output, "quarterly numbers")
	})

	t.Run("not found", func(t *testing.T) {
		out, err := cli.ExecuteCLICommandWithInput(t, app, ShowCmd(), []string{"999"}, "")
		require.Error(t, err)
		assert.Equal(t, clipkg.ExitNotFound, clipkg.ExitCode(err))
		assert.Contains(t, out.Stderr, "task 999 not found")
	})

	t.Run("not found json", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"999", "--json"})
		require.Error(t, err)

		result := cli.ParseJSON(t, output)
		assert.Equal(t, false, result["success"])
		assert.Equal(t, "TASK_NOT_FOUND", result["error"].(map[string]any)["code"])
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"abc"})
		require.Error(t, err)
		assert.Equal(t, clipkg.ExitUsage, clipkg.ExitCode(err))
	})
}
