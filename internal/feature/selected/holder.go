// Package selected shares the task picked on one screen with the next one.
package selected

import (
	"sync"

	"github.com/thenoetrevino/mytasks/internal/models"
)

// Holder stores the currently selected task
type Holder struct {
	mu   sync.RWMutex
	task *models.Task
}

// Select replaces the selection
func (h *Holder) Select(task models.Task) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.task = &task
}

// Clear drops the selection
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.task = nil
}

// Current returns the selected task and whether there is one
func (h *Holder) Current() (models.Task, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.task == nil {
		return models.Task{}, false
	}
	return *h.task, true
}
