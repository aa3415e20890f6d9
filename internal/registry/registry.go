package registry

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoChannel is returned by Await when no notification channel opens
// for the task id within the wait window.
var ErrNoChannel = errors.New("no notification channel for task")

// Message is one status update pushed to a viewer. Progress is omitted
// from the wire format when the stage has nothing numeric to report.
type Message struct {
	Status   string `json:"status"`
	Progress *int   `json:"progress,omitempty"`
}

// Sender is the send capability of one open notification channel.
// A failed Send is treated by callers as an implicit close.
type Sender interface {
	Send(msg Message) error
}

// Registry maps task ids to open notification channels. At most one
// channel is registered per task id; a new Open for the same id replaces
// the previous entry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Sender
	waiters map[string]chan struct{}
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]Sender),
		waiters: make(map[string]chan struct{}),
	}
}

// Open registers sender under taskID, unconditionally overwriting any
// existing entry, and releases a parked Await for the same id.
func (r *Registry) Open(taskID string, sender Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[taskID] = sender
	if w, ok := r.waiters[taskID]; ok {
		close(w)
		delete(r.waiters, taskID)
	}
}

// Get returns the channel registered for taskID. Absence is a normal
// outcome, not an error.
func (r *Registry) Get(taskID string) (Sender, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sender, ok := r.entries[taskID]
	return sender, ok
}

// Close removes the entry for taskID if present. Idempotent.
func (r *Registry) Close(taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, taskID)
}

// Await blocks until a channel is registered for taskID or the window
// elapses. Channel-open and job-submission arrive as two unordered client
// actions; submission must not start emitting progress into the void, so
// the coordinator parks here until the viewer shows up. One waiter per
// task id.
func (r *Registry) Await(ctx context.Context, taskID string, window time.Duration) error {
	r.mu.Lock()
	if _, ok := r.entries[taskID]; ok {
		r.mu.Unlock()
		return nil
	}
	wait, ok := r.waiters[taskID]
	if !ok {
		wait = make(chan struct{})
		r.waiters[taskID] = wait
	}
	r.mu.Unlock()

	timer := time.NewTimer(window)
	defer timer.Stop()

	select {
	case <-wait:
		return nil
	case <-timer.C:
		r.abandonWaiter(taskID, wait)
		return ErrNoChannel
	case <-ctx.Done():
		r.abandonWaiter(taskID, wait)
		return ctx.Err()
	}
}

func (r *Registry) abandonWaiter(taskID string, wait chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.waiters[taskID]; ok && current == wait {
		delete(r.waiters, taskID)
	}
}
