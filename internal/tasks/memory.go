package tasks

import (
	"context"
	"slices"
	"sync"
)

// MemoryChannel is an in-process Channel used when no Redis URL is configured.
type MemoryChannel struct {
	mu     sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
	last   *Snapshot
	closed bool
}

// NewMemoryChannel creates an empty MemoryChannel.
func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{subs: make(map[int]chan Snapshot)}
}

// Publish delivers s to every subscriber. A subscriber whose buffer is full
// drops its oldest pending snapshot.
func (c *MemoryChannel) Publish(_ context.Context, s Snapshot) error {
	s.Tasks = slices.Clone(s.Tasks)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errChannelClosed
	}
	c.last = &s
	for _, sub := range c.subs {
		deliver(sub, s)
	}
	return nil
}

// Subscribe registers a subscriber.
func (c *MemoryChannel) Subscribe(ctx context.Context) (<-chan Snapshot, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, nil, errChannelClosed
	}

	id := c.nextID
	c.nextID++
	sub := make(chan Snapshot, subscriberBuffer)
	c.subs[id] = sub
	if c.last != nil {
		sub <- *c.last
	}

	stop := make(chan struct{})
	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			close(stop)
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-stop:
		}
	}()
	return sub, unsubscribe, nil
}

// Ping always succeeds.
func (c *MemoryChannel) Ping(context.Context) error {
	return nil
}

// Close ends every subscription.
func (c *MemoryChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, sub := range c.subs {
		delete(c.subs, id)
		close(sub)
	}
	return nil
}

func deliver(sub chan Snapshot, s Snapshot) {
	for {
		select {
		case sub <- s:
			return
		default:
			select {
			case <-sub:
			default:
			}
		}
	}
}
