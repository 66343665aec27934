// Package notify computes and registers local reminder notifications tied
// to training-session timing.
package notify

import (
	"context"
	"time"
)

// TriggerKind discriminates the Trigger union.
type TriggerKind int

const (
	// TriggerAt fires once at an absolute time.
	TriggerAt TriggerKind = iota
	// TriggerDelay fires once after a relative delay.
	TriggerDelay
	// TriggerDaily fires every day at a fixed wall-clock time.
	TriggerDaily
)

// Trigger describes when a notification fires.
type Trigger struct {
	Kind  TriggerKind
	When  time.Time
	Delay time.Duration
	Hour  int
	Min   int
}

func At(t time.Time) Trigger           { return Trigger{Kind: TriggerAt, When: t} }
func After(d time.Duration) Trigger    { return Trigger{Kind: TriggerDelay, Delay: d} }
func DailyAt(hour, minute int) Trigger { return Trigger{Kind: TriggerDaily, Hour: hour, Min: minute} }

// Content is what the user sees when the notification fires.
type Content struct {
	Title string
	Body  string
}

// Pending describes one scheduled, not-yet-cancelled notification.
type Pending struct {
	ID      string
	Trigger Trigger
	Content Content
}

// Notifier is the local notification subsystem. Implementations own
// delivery; the scheduler only registers entries.
type Notifier interface {
	// Schedule registers a notification and returns its identifier.
	Schedule(ctx context.Context, trigger Trigger, content Content) (string, error)

	// Cancel removes one scheduled notification. Cancelling an unknown id
	// is not an error.
	Cancel(id string) error

	// CancelAll removes every scheduled notification.
	CancelAll()

	// Scheduled lists notifications that have not fired or been cancelled.
	Scheduled() []Pending
}
