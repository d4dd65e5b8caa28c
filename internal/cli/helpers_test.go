package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate_UsesLocalTime(t *testing.T) {
	got, err := ParseDueDate("2026-11-02")
	require.NoError(t, err)
	assert.Equal(t, time.Local, got.Location())

	_, err = ParseDueDate("soon")
	assert.Error(t, err)
}

func TestParseTaskID(t *testing.T) {
	id, err := ParseTaskID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := ParseTaskID(bad)
		assert.Error(t, err, bad)
	}
}
