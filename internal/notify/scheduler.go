package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shamu9311/sport-front/internal/logging"
	"github.com/Shamu9311/sport-front/internal/models"
	"github.com/avast/retry-go/v4"
)

// immediateDelay is used when a computed reminder time has already passed:
// the reminder fires in a few seconds instead of being dropped.
const immediateDelay = 5 * time.Second

// errRecommendationsNotReady drives the retry loop while the backend is
// still generating recommendations for a fresh session.
var errRecommendationsNotReady = errors.New("recommendations not ready")

// RecommendationSource is the slice of the API the scheduler needs.
// api.Client satisfies it.
type RecommendationSource interface {
	TrainingSession(ctx context.Context, sessionID int64) (*models.TrainingSession, error)
	SessionRecommendations(ctx context.Context, sessionID, userID int64) ([]models.Recommendation, error)
	NotificationPreferences(ctx context.Context, userID int64) (*models.NotificationPreferences, error)
}

// Options tunes the scheduler. Zero values are replaced by defaults
// matching the product's behavior.
type Options struct {
	// PollAttempts and PollDelay bound the recommendation poll;
	// recommendations are generated asynchronously server-side and may lag
	// the session-creation call.
	PollAttempts int
	PollDelay    time.Duration

	// DefaultStartTime ("HH:MM") is assumed when a session has no start time.
	DefaultStartTime string

	// DefaultOffset applies when a recommendation carries no timing_minutes.
	DefaultOffset time.Duration

	// DailyHour/DailyMinute is the fixed wall-clock time for "daily"
	// reminders. DailySet marks an explicit choice, so midnight (0:00)
	// is not mistaken for "use the default".
	DailyHour   int
	DailyMinute int
	DailySet    bool
}

func (o *Options) fillDefaults() {
	if o.PollAttempts <= 0 {
		o.PollAttempts = 3
	}
	if o.PollDelay <= 0 {
		o.PollDelay = 4 * time.Second
	}
	if o.DefaultStartTime == "" {
		o.DefaultStartTime = "18:00"
	}
	if o.DefaultOffset <= 0 {
		o.DefaultOffset = 30 * time.Minute
	}
	if !o.DailySet && o.DailyHour == 0 && o.DailyMinute == 0 {
		o.DailyHour = 9
	}
}

// Outcome reports what a scheduling run did. Disabled and
// NoRecommendations are soft outcomes, not errors: reminders turned off,
// and poll exhausted without data, respectively. NoRecommendations is
// distinct from Scheduled == 0 with data present (zero eligible
// recommendations).
type Outcome struct {
	Scheduled         int
	Disabled          bool
	NoRecommendations bool
}

// Scheduler computes and registers consumption reminders for a training
// session's recommendations.
type Scheduler struct {
	api      RecommendationSource
	notifier Notifier
	log      logging.Logger
	opts     Options
	now      func() time.Time
}

func NewScheduler(api RecommendationSource, notifier Notifier, log logging.Logger, opts Options) *Scheduler {
	opts.fillDefaults()
	return &Scheduler{
		api:      api,
		notifier: notifier,
		log:      log,
		opts:     opts,
		now:      time.Now,
	}
}

// ScheduleForSession checks the user's reminder preference, polls for the
// session's recommendations with bounded retries, and registers one
// reminder per eligible recommendation. A reminder that fails to register
// is logged and skipped; the rest still go through. Only the aggregate
// count is reported.
func (s *Scheduler) ScheduleForSession(ctx context.Context, session *models.TrainingSession, userID int64) (Outcome, error) {
	prefs, err := s.api.NotificationPreferences(ctx, userID)
	if err != nil {
		s.log.Warn(ctx, "failed to load notification preferences, skipping reminders", "error", err)
		return Outcome{Disabled: true}, nil
	}
	if !prefs.ConsumptionReminders {
		s.log.Debug(ctx, "consumption reminders disabled", "user_id", userID)
		return Outcome{Disabled: true}, nil
	}

	recs, err := s.pollRecommendations(ctx, session.SessionID, userID)
	if err != nil {
		return Outcome{}, err
	}
	if len(recs) == 0 {
		s.log.Info(ctx, "no recommendations after polling", "session_id", session.SessionID)
		return Outcome{NoRecommendations: true}, nil
	}

	// The backend may have filled in the start time while recommendations
	// were generating; prefer the fresh copy when we can get one.
	if upd, err := s.api.TrainingSession(ctx, session.SessionID); err == nil && upd != nil {
		session = upd
	}

	start, err := session.StartAt(s.opts.DefaultStartTime)
	if err != nil {
		return Outcome{}, fmt.Errorf("cannot resolve session start: %w", err)
	}

	now := s.now()
	scheduled := 0
	for _, rec := range recs {
		if rec.ConsumptionTiming == "" || rec.ProductName == "" {
			continue
		}
		trigger, content, ok := s.reminder(rec, start, now)
		if !ok {
			continue
		}
		if _, err := s.notifier.Schedule(ctx, trigger, content); err != nil {
			s.log.Warn(ctx, "failed to schedule reminder", "product", rec.ProductName, "error", err)
			continue
		}
		scheduled++
	}

	s.log.Info(ctx, "consumption reminders scheduled", "session_id", session.SessionID, "count", scheduled)
	return Outcome{Scheduled: scheduled}, nil
}

// pollRecommendations fetches the session's recommendations, retrying on a
// fixed delay while they are empty. Exhaustion is not an error; a cancelled
// context is.
func (s *Scheduler) pollRecommendations(ctx context.Context, sessionID, userID int64) ([]models.Recommendation, error) {
	recs, err := retry.DoWithData(
		func() ([]models.Recommendation, error) {
			got, err := s.api.SessionRecommendations(ctx, sessionID, userID)
			if err != nil {
				return nil, err
			}
			if len(got) == 0 {
				return nil, errRecommendationsNotReady
			}
			return got, nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(s.opts.PollAttempts)),
		retry.Delay(s.opts.PollDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// soft exhaustion, including transport failures on every attempt
		return nil, nil
	}
	return recs, nil
}

// reminder computes the trigger and content for one recommendation
// relative to the session start. Computed times already in the past fall
// back to a few-seconds immediate trigger.
func (s *Scheduler) reminder(rec models.Recommendation, start, now time.Time) (Trigger, Content, bool) {
	offset := s.opts.DefaultOffset
	if rec.TimingMinutes > 0 {
		offset = time.Duration(rec.TimingMinutes) * time.Minute
	}

	content := Content{Title: "Consumption reminder"}

	switch rec.ConsumptionTiming {
	case models.TimingBefore:
		at := start.Add(-offset)
		if at.After(now) {
			content.Body = fmt.Sprintf("Consume %s now, %d minutes before your training", rec.ProductName, int(offset.Minutes()))
			return At(at), content, true
		}
		content.Body = fmt.Sprintf("Remember to consume %s before training", rec.ProductName)
		return After(immediateDelay), content, true

	case models.TimingDuring:
		content.Body = fmt.Sprintf("During your training, consume %s to keep your energy up", rec.ProductName)
		if start.After(now) {
			return At(start), content, true
		}
		return After(immediateDelay), content, true

	case models.TimingAfter:
		content.Body = fmt.Sprintf("Time to consume %s to recover", rec.ProductName)
		if at := start.Add(offset); at.After(now) {
			return At(at), content, true
		}
		return After(immediateDelay), content, true

	case models.TimingDaily:
		content.Body = fmt.Sprintf("Remember your daily dose of %s", rec.ProductName)
		return DailyAt(s.opts.DailyHour, s.opts.DailyMinute), content, true
	}

	return Trigger{}, Content{}, false
}
