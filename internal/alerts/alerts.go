// Package alerts holds the dismissible notifications shown to a workbench session.
package alerts

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level grades an alert.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Alert is a single notification.
type Alert struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Queue is an ordered, concurrency-safe list of alerts, oldest first.
type Queue struct {
	mu     sync.Mutex
	alerts []Alert
	limit  int
}

// NewQueue creates a Queue keeping at most limit alerts. A non-positive limit
// keeps all of them.
func NewQueue(limit int) *Queue {
	return &Queue{limit: limit}
}

// Push appends an alert and returns it. The oldest alert is dropped when the
// queue is full.
func (q *Queue) Push(level Level, message string) Alert {
	a := Alert{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.alerts = append(q.alerts, a)
	if q.limit > 0 && len(q.alerts) > q.limit {
		q.alerts = slices.Delete(q.alerts, 0, len(q.alerts)-q.limit)
	}
	return a
}

// List returns a copy of the queued alerts.
func (q *Queue) List() []Alert {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.alerts == nil {
		return []Alert{}
	}
	return slices.Clone(q.alerts)
}

// Dismiss removes the alert with id and reports whether it was queued.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	i := slices.IndexFunc(q.alerts, func(a Alert) bool { return a.ID == id })
	if i < 0 {
		return false
	}
	q.alerts = slices.Delete(q.alerts, i, i+1)
	return true
}
