package reactive

import "context"

// Msg is anything a Store handler understands
type Msg any

// Cmd is a unit of asynchronous work. It runs on its own goroutine and the
// message it returns, if not nil, is dispatched back into the store.
type Cmd func(ctx context.Context) Msg

type batchMsg []Cmd

// Batch runs every command concurrently
func Batch(cmds ...Cmd) Cmd {
	valid := make([]Cmd, 0, len(cmds))
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	}
	return func(context.Context) Msg {
		return batchMsg(valid)
	}
}

// chainMsg delivers msg and keeps the stream going with next
type chainMsg struct {
	msg  Msg
	next Cmd
}

// Collect turns a stream into a sequence of messages, one per value, in
// order. It stops when the stream closes or the context is done.
func Collect[T any](stream <-chan T, wrap func(T) Msg) Cmd {
	var next Cmd
	next = func(ctx context.Context) Msg {
		select {
		case v, ok := <-stream:
			if !ok {
				return nil
			}
			return chainMsg{msg: wrap(v), next: next}
		case <-ctx.Done():
			return nil
		}
	}
	return next
}

// Await waits for the first value of a single-shot stream. A stream that
// closes empty, or a done context, yields no message.
func Await[T any](stream <-chan T, wrap func(T) Msg) Cmd {
	return func(ctx context.Context) Msg {
		select {
		case v, ok := <-stream:
			if !ok {
				return nil
			}
			return wrap(v)
		case <-ctx.Done():
			return nil
		}
	}
}
