package cli

import (
	"context"
	"fmt"

	"github.com/Shamu9311/sport-front/internal/gate"
	"github.com/Shamu9311/sport-front/internal/notify"
)

func (a *App) SavedRecommendations(ctx context.Context) {
	if !a.enter(ctx, gate.RouteRecommendations) {
		return
	}
	user := a.currentUser()

	recs, err := a.api.SavedRecommendations(ctx, user.ID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load recommendations:", err)
		return
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No saved recommendations; log a training to get some")
		return
	}
	for _, r := range recs {
		fmt.Fprintf(a.out, "- %s", r.ProductName)
		if r.ConsumptionTiming != "" {
			fmt.Fprintf(a.out, " (%s)", r.ConsumptionTiming)
		}
		if r.Reasoning != "" {
			fmt.Fprintf(a.out, ": %s", r.Reasoning)
		}
		fmt.Fprintln(a.out)
	}
}

func (a *App) ListReminders() {
	pending := a.notifier.Scheduled()
	if len(pending) == 0 {
		fmt.Fprintln(a.out, "No reminders scheduled")
		return
	}
	for _, p := range pending {
		switch p.Trigger.Kind {
		case notify.TriggerDaily:
			fmt.Fprintf(a.out, "%s  daily at %02d:%02d  %s\n", p.ID[:8], p.Trigger.Hour, p.Trigger.Min, p.Content.Body)
		case notify.TriggerDelay:
			fmt.Fprintf(a.out, "%s  in %s  %s\n", p.ID[:8], p.Trigger.Delay, p.Content.Body)
		default:
			fmt.Fprintf(a.out, "%s  at %s  %s\n", p.ID[:8], p.Trigger.When.Format("2006-01-02 15:04"), p.Content.Body)
		}
	}
}
