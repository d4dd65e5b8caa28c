package database

import "sync"

// Notifier fans a "something changed" tick out to every live query.
// Ticks are coalesced per subscriber: a subscriber that has not consumed
// its previous tick does not get a second one.
type Notifier struct {
	mu   sync.RWMutex
	subs map[chan struct{}]struct{}
}

// NewNotifier creates a Notifier with no subscribers
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a new subscriber. The returned func unregisters it and
// closes the channel; it is safe to call more than once.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, ch)
			n.mu.Unlock()
			close(ch)
		})
	}
}

// Notify wakes every subscriber without blocking
func (n *Notifier) Notify() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
			// already has a pending tick
		}
	}
}

// Len returns the number of live subscribers
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}
