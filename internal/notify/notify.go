// Package notify collects user-visible notifications produced by store operations.
package notify

import (
	"sync"

	"project-tracker/internal/entities"

	"go.llib.dev/testcase/clock"
)

// DefaultLimit bounds how many undrained notifications a queue keeps.
const DefaultLimit = 50

// Notifier accepts notifications.
type Notifier interface {
	Notify(n entities.Notification)
}

// Queue is a bounded FIFO of notifications. When full, the oldest entry is discarded.
type Queue struct {
	mu    sync.Mutex
	items []entities.Notification
	limit int
}

// NewQueue creates a queue holding at most limit notifications; limit <= 0 selects DefaultLimit.
func NewQueue(limit int) *Queue {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Queue{limit: limit}
}

// Notify appends n, stamping CreatedAt when it is unset.
func (q *Queue) Notify(n entities.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = clock.Now()
	}
	if n.Variant == "" {
		n.Variant = entities.VariantDefault
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == q.limit {
		q.items = q.items[1:]
	}
	q.items = append(q.items, n)
}

// Drain returns all pending notifications in arrival order and empties the queue.
func (q *Queue) Drain() []entities.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	if out == nil {
		out = []entities.Notification{}
	}
	return out
}

// Len reports the number of pending notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Success builds a default notification.
func Success(title, description string) entities.Notification {
	return entities.Notification{Title: title, Description: description, Variant: entities.VariantDefault}
}

// Failure builds a destructive notification.
func Failure(title, description string) entities.Notification {
	return entities.Notification{Title: title, Description: description, Variant: entities.VariantDestructive}
}
