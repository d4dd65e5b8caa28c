package reactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_SkipsRepeats(t *testing.T) {
	src := make(chan counter)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := Map(ctx, src, func(c counter) int { return c.N })

	src <- counter{N: 1}
	assert.Equal(t, 1, next(t, out))

	src <- counter{N: 1, Busy: true}
	src <- counter{N: 2}
	assert.Equal(t, 2, next(t, out))

	close(src)
	_, open := <-out
	assert.False(t, open)
}

func TestMap_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := Map(ctx, make(chan counter), func(c counter) int { return c.N })
	cancel()

	for range out {
	}
}
