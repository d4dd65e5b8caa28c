package featuretest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Timeout bounds every wait in view model tests
const Timeout = 2 * time.Second

// Eventually polls get until cond holds and returns the last value
func Eventually[S any](t *testing.T, get func() S, cond func(S) bool) S {
	t.Helper()
	var last S
	require.Eventually(t, func() bool {
		last = get()
		return cond(last)
	}, Timeout, 5*time.Millisecond)
	return last
}

// NextCall waits for the next mutation issued to r
func NextCall(t *testing.T, r *Repo) Call {
	t.Helper()
	select {
	case c := <-r.Calls():
		return c
	case <-time.After(Timeout):
		t.Fatal("timeout waiting for repository call")
		return Call{}
	}
}

// NoCall asserts that no mutation reaches r for a short while
func NoCall(t *testing.T, r *Repo) {
	t.Helper()
	select {
	case c := <-r.Calls():
		t.Fatalf("unexpected repository call: %s %+v", c.Op, c.Task)
	case <-time.After(50 * time.Millisecond):
	}
}
