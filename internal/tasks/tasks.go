// Package tasks carries the push channel that announces which long-running
// tasks are in flight. Subscribers only read it as a busy signal.
package tasks

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// ExecutionTaskName identifies a running search configuration execution.
const ExecutionTaskName = "Search Configuration Execution"

// DefaultChannel is the channel name snapshots are published on.
const DefaultChannel = "tasks"

const subscriberBuffer = 16

var errChannelClosed = errors.New("task channel closed")

// Snapshot lists the tasks running at one moment.
type Snapshot struct {
	Tasks []string `json:"tasks"`
}

// Contains reports whether any task name contains substr.
func (s Snapshot) Contains(substr string) bool {
	return slices.ContainsFunc(s.Tasks, func(task string) bool {
		return strings.Contains(task, substr)
	})
}

// Channel publishes and delivers task snapshots.
type Channel interface {
	// Publish broadcasts a snapshot to every subscriber.
	Publish(ctx context.Context, snapshot Snapshot) error
	// Subscribe delivers snapshots until unsubscribe is called or ctx ends.
	// The most recent snapshot, if any, is delivered first.
	Subscribe(ctx context.Context) (snapshots <-chan Snapshot, unsubscribe func(), err error)
	// Ping checks the channel is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Tracker keeps the latest snapshot seen on a channel.
type Tracker struct {
	mu     sync.RWMutex
	latest Snapshot
}

// NewTracker creates a Tracker with an empty snapshot.
func NewTracker() *Tracker {
	return &Tracker{latest: Snapshot{Tasks: []string{}}}
}

// Run consumes ch until ctx is done or the subscription ends.
func (t *Tracker) Run(ctx context.Context, ch Channel) error {
	snapshots, unsubscribe, err := ch.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-snapshots:
			if !ok {
				return nil
			}
			t.Observe(s)
		}
	}
}

// Observe records s as the latest snapshot.
func (t *Tracker) Observe(s Snapshot) {
	if s.Tasks == nil {
		s.Tasks = []string{}
	}
	t.mu.Lock()
	t.latest = s
	t.mu.Unlock()
}

// Snapshot returns the latest snapshot.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{Tasks: slices.Clone(t.latest.Tasks)}
}

// ExecutionRunning reports whether the latest snapshot lists an execution.
func (t *Tracker) ExecutionRunning() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest.Contains(ExecutionTaskName)
}

// Board publishes the tasks started by this process.
type Board struct {
	ch     Channel
	logger *slog.Logger

	mu      sync.Mutex
	running []string
}

// NewBoard creates a Board publishing on ch.
func NewBoard(ch Channel, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{ch: ch, logger: logger}
}

// Start publishes name as running. The returned func removes it again. A
// failed publish is logged; the task itself is not affected.
func (b *Board) Start(ctx context.Context, name string) (done func()) {
	b.mu.Lock()
	b.running = append(b.running, name)
	snapshot := Snapshot{Tasks: slices.Clone(b.running)}
	b.mu.Unlock()
	b.publish(ctx, snapshot)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			if i := slices.Index(b.running, name); i >= 0 {
				b.running = slices.Delete(b.running, i, i+1)
			}
			snapshot := Snapshot{Tasks: slices.Clone(b.running)}
			b.mu.Unlock()
			b.publish(context.WithoutCancel(ctx), snapshot)
		})
	}
}

func (b *Board) publish(ctx context.Context, s Snapshot) {
	if err := b.ch.Publish(ctx, s); err != nil {
		b.logger.WarnContext(ctx, "failed to publish task snapshot", "error", err, "tasks", s.Tasks)
	}
}
