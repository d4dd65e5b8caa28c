package selected

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/mytasks/internal/models"
)

func TestHolder(t *testing.T) {
	var h Holder

	_, ok := h.Current()
	assert.False(t, ok)

	h.Select(models.Task{ID: 1})
	task, ok := h.Current()
	assert.True(t, ok)
	assert.Equal(t, int64(1), task.ID)

	h.Clear()
	_, ok = h.Current()
	assert.False(t, ok)
}

func TestHolder_Concurrent(t *testing.T) {
	var (
		h  Holder
		wg sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			h.Select(models.Task{ID: id})
			h.Current()
		}(int64(i))
	}
	wg.Wait()

	_, ok := h.Current()
	assert.True(t, ok)
}
