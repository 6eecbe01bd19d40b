package events

import (
	"sync"
	"time"
)

// Bus is an in-memory publish/subscribe stream of run events. It keeps
// the full history of one invocation so the trace can be dumped after
// the run completes.
type Bus struct {
	mu          sync.RWMutex
	subscribers []subscriber
	history     []Event
}

type subscriber struct {
	ch     chan Event
	filter map[Type]bool // empty means all events
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{history: make([]Event, 0, 128)}
}

var _ Publisher = (*Bus)(nil)

// Publish appends the event to the history and fans it out. Slow
// subscribers drop events rather than blocking the runner.
func (b *Bus) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	b.mu.Lock()
	b.history = append(b.history, e)
	subs := make([]subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, sub := range subs {
		if len(sub.filter) > 0 && !sub.filter[e.Type] {
			continue
		}
		select {
		case sub.ch <- e:
		default:
		}
	}
}

// Subscribe returns a channel receiving events, optionally limited to
// the given types.
func (b *Bus) Subscribe(filter ...Type) <-chan Event {
	ch := make(chan Event, 64)
	sub := subscriber{ch: ch}
	if len(filter) > 0 {
		sub.filter = make(map[Type]bool, len(filter))
		for _, t := range filter {
			sub.filter[t] = true
		}
	}

	b.mu.Lock()
	b.subscribers = append(b.subscribers, sub)
	b.mu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub.ch == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			close(sub.ch)
			return
		}
	}
}

// History returns all events published at or after since.
func (b *Bus) History(since time.Time) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var result []Event
	for _, e := range b.history {
		if !e.Timestamp.Before(since) {
			result = append(result, e)
		}
	}
	return result
}
