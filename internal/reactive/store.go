// Package reactive provides a serialized state container for screens.
//
// A Store owns one state value. Messages are handled one at a time, in the
// order they were dispatched, by a single goroutine running the handler.
// The handler returns the next state and optionally a Cmd whose result is
// fed back as another message, in the style of a model-view-update loop.
package reactive

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
)

// Handler computes the next state for msg. ctx is the store lifetime and is
// done once the store is disposed.
type Handler[S any] func(ctx context.Context, state S, msg Msg) (S, Cmd)

// Option configures a Store
type Option[S any] func(*Store[S])

// WithOnFirstSubscribe dispatches msg when the first subscriber attaches.
// Later subscribers share the running state and never trigger it again.
func WithOnFirstSubscribe[S any](msg Msg) Option[S] {
	return func(s *Store[S]) {
		s.onFirst = msg
	}
}

// WithEqual replaces the comparison used to skip publishing unchanged states
func WithEqual[S any](equal func(a, b S) bool) Option[S] {
	return func(s *Store[S]) {
		s.equal = equal
	}
}

// WithName labels the store in log output
func WithName[S any](name string) Option[S] {
	return func(s *Store[S]) {
		s.name = name
	}
}

// Store is a lifecycle-scoped state machine. Create it with New, call Start,
// and call Dispose when the owner goes away.
type Store[S any] struct {
	handler Handler[S]
	equal   func(a, b S) bool
	onFirst Msg
	name    string
	initial S

	mu         sync.Mutex
	state      S
	queue      []Msg
	subs       map[chan S]struct{}
	subscribed bool
	started    bool
	disposed   bool

	signal chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a store holding initial
func New[S any](initial S, handler Handler[S], opts ...Option[S]) *Store[S] {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store[S]{
		handler: handler,
		equal:   func(a, b S) bool { return reflect.DeepEqual(a, b) },
		name:    "store",
		initial: initial,
		state:   initial,
		subs:    make(map[chan S]struct{}),
		signal:  make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the event loop. Calling it again has no effect.
func (s *Store[S]) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.disposed {
		return
	}
	s.started = true

	s.wg.Add(1)
	go s.loop()
}

// Dispose stops the loop, cancels every running command and live stream,
// and closes all subscriber channels. Messages still queued are dropped.
// It blocks until every goroutine owned by the store has returned.
func (s *Store[S]) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.queue = nil
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	s.mu.Lock()
	for ch := range s.subs {
		close(ch)
	}
	s.subs = map[chan S]struct{}{}
	// the pending effect goes with the rest of the state
	s.state = s.initial
	s.mu.Unlock()

	slog.Debug("store disposed", "store", s.name)
}

// Dispatch enqueues msg and returns immediately. Messages sent after
// Dispose are dropped.
func (s *Store[S]) Dispatch(msg Msg) {
	if msg == nil {
		return
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, msg)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// State returns the current snapshot
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel that holds the current snapshot and then
// every later one. A slow reader only sees the newest snapshot. The channel
// is closed when ctx is done or the store is disposed.
func (s *Store[S]) Subscribe(ctx context.Context) <-chan S {
	ch := make(chan S, 1)

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		close(ch)
		return ch
	}
	ch <- s.state
	s.subs[ch] = struct{}{}
	first := !s.subscribed
	s.subscribed = true
	s.mu.Unlock()

	if first && s.onFirst != nil {
		s.Dispatch(s.onFirst)
	}

	go func() {
		select {
		case <-ctx.Done():
		case <-s.ctx.Done():
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}()

	return ch
}

func (s *Store[S]) loop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.signal:
		}

		for {
			msg, ok := s.pop()
			if !ok {
				break
			}
			if s.ctx.Err() != nil {
				return
			}
			s.handle(msg)
		}
	}
}

func (s *Store[S]) pop() (Msg, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return nil, false
	}
	msg := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return msg, true
}

// handle unwraps the store's own envelopes before calling the handler
func (s *Store[S]) handle(msg Msg) {
	switch m := msg.(type) {
	case batchMsg:
		for _, cmd := range m {
			s.run(cmd)
		}

	case chainMsg:
		s.run(m.next)
		s.apply(m.msg)

	case jobResult:
		if !m.slot.isCurrent(m.job) {
			slog.Debug("dropping superseded job result", "store", s.name, "job", m.job)
			return
		}
		if c, ok := m.msg.(chainMsg); ok {
			s.run(c.next)
			s.apply(c.msg)
			return
		}
		m.slot.finish(m.job)
		if m.msg != nil {
			s.handle(m.msg)
		}

	default:
		s.apply(msg)
	}
}

func (s *Store[S]) apply(msg Msg) {
	if msg == nil {
		return
	}

	s.mu.Lock()
	current := s.state
	s.mu.Unlock()

	next, cmd := s.handler(s.ctx, current, msg)

	if !s.equal(current, next) {
		s.publish(next)
	}
	s.run(cmd)
}

// publish replaces the snapshot and hands it to every subscriber
func (s *Store[S]) publish(next S) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = next
	for ch := range s.subs {
		// Only the loop sends, so after draining there is room
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}

// run starts cmd on its own goroutine and dispatches its result
func (s *Store[S]) run(cmd Cmd) {
	if cmd == nil || s.ctx.Err() != nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if msg := cmd(s.ctx); msg != nil {
			s.Dispatch(msg)
		}
	}()
}
