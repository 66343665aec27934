package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TimerNotifier delivers notifications in-process with timers, handing each
// fired notification to a handler (the CLI prints them). Daily triggers
// re-arm themselves for the next occurrence after firing.
type TimerNotifier struct {
	mu      sync.Mutex
	entries map[string]*timerEntry
	handler func(Content)
	now     func() time.Time
	closed  bool
}

type timerEntry struct {
	pending Pending
	timer   *time.Timer
}

func NewTimerNotifier(handler func(Content)) *TimerNotifier {
	if handler == nil {
		handler = func(Content) {}
	}
	return &TimerNotifier{
		entries: make(map[string]*timerEntry),
		handler: handler,
		now:     time.Now,
	}
}

func (n *TimerNotifier) Schedule(ctx context.Context, trigger Trigger, content Content) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.NewString()

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return "", context.Canceled
	}

	e := &timerEntry{pending: Pending{ID: id, Trigger: trigger, Content: content}}
	e.timer = time.AfterFunc(n.delayFor(trigger), func() { n.fire(id) })
	n.entries[id] = e
	return id, nil
}

// delayFor converts a trigger into the next delay. Absolute times in the
// past fire immediately.
func (n *TimerNotifier) delayFor(t Trigger) time.Duration {
	switch t.Kind {
	case TriggerDelay:
		if t.Delay < 0 {
			return 0
		}
		return t.Delay
	case TriggerDaily:
		return untilNextWallClock(n.now(), t.Hour, t.Min)
	default:
		d := t.When.Sub(n.now())
		if d < 0 {
			return 0
		}
		return d
	}
}

func untilNextWallClock(now time.Time, hour, minute int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (n *TimerNotifier) fire(id string) {
	n.mu.Lock()
	e, ok := n.entries[id]
	if !ok || n.closed {
		n.mu.Unlock()
		return
	}
	content := e.pending.Content

	if e.pending.Trigger.Kind == TriggerDaily {
		// repeating: re-arm for tomorrow
		e.timer = time.AfterFunc(untilNextWallClock(n.now(), e.pending.Trigger.Hour, e.pending.Trigger.Min), func() { n.fire(id) })
	} else {
		delete(n.entries, id)
	}
	handler := n.handler
	n.mu.Unlock()

	handler(content)
}

func (n *TimerNotifier) Cancel(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if e, ok := n.entries[id]; ok {
		e.timer.Stop()
		delete(n.entries, id)
	}
	return nil
}

func (n *TimerNotifier) CancelAll() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, e := range n.entries {
		e.timer.Stop()
		delete(n.entries, id)
	}
}

func (n *TimerNotifier) Scheduled() []Pending {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Pending, 0, len(n.entries))
	for _, e := range n.entries {
		out = append(out, e.pending)
	}
	return out
}

// Close stops all timers and rejects further scheduling.
func (n *TimerNotifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	for id, e := range n.entries {
		e.timer.Stop()
		delete(n.entries, id)
	}
}
