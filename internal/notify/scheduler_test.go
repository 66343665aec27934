package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Shamu9311/sport-front/internal/logging"
	"github.com/Shamu9311/sport-front/internal/models"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewText(io.Discard, slog.LevelError)
}

// fastOpts keeps the retry loop from sleeping for real in tests.
func fastOpts() Options {
	return Options{PollDelay: time.Millisecond}
}

func futureSession(t *testing.T, now time.Time, start time.Time) *models.TrainingSession {
	t.Helper()
	return &models.TrainingSession{
		SessionID:   42,
		UserID:      7,
		SessionDate: start.Format("2006-01-02"),
		StartTime:   start.Format("15:04"),
	}
}

// ---- fake API ----

type fakeSource struct {
	Prefs    *models.NotificationPreferences
	PrefsErr error

	// RecsPerAttempt[i] is returned on attempt i+1; the last entry repeats.
	RecsPerAttempt [][]models.Recommendation
	RecsErr        error
	RecsCalls      int

	Session    *models.TrainingSession
	SessionErr error
}

func (f *fakeSource) TrainingSession(ctx context.Context, sessionID int64) (*models.TrainingSession, error) {
	return f.Session, f.SessionErr
}

func (f *fakeSource) SessionRecommendations(ctx context.Context, sessionID, userID int64) ([]models.Recommendation, error) {
	f.RecsCalls++
	if f.RecsErr != nil {
		return nil, f.RecsErr
	}
	if len(f.RecsPerAttempt) == 0 {
		return nil, nil
	}
	i := f.RecsCalls - 1
	if i >= len(f.RecsPerAttempt) {
		i = len(f.RecsPerAttempt) - 1
	}
	return f.RecsPerAttempt[i], nil
}

func (f *fakeSource) NotificationPreferences(ctx context.Context, userID int64) (*models.NotificationPreferences, error) {
	return f.Prefs, f.PrefsErr
}

// ---- fake notifier ----

type scheduledCall struct {
	Trigger Trigger
	Content Content
}

type fakeNotifier struct {
	Calls []scheduledCall

	// FailOn makes Schedule fail for the call with this 1-based index.
	FailOn int
}

func (f *fakeNotifier) Schedule(ctx context.Context, trigger Trigger, content Content) (string, error) {
	f.Calls = append(f.Calls, scheduledCall{trigger, content})
	if f.FailOn == len(f.Calls) {
		return "", errors.New("scheduling failed")
	}
	return "id", nil
}

func (f *fakeNotifier) Cancel(id string) error { return nil }
func (f *fakeNotifier) CancelAll()             {}
func (f *fakeNotifier) Scheduled() []Pending   { return nil }

// ---- TESTS ----

func TestScheduleForSession_BeforeTiming_FutureStart(t *testing.T) {
	now := time.Date(2026, 6, 1, 17, 0, 0, 0, time.Local)
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.Local)
	session := futureSession(t, now, start)

	src := &fakeSource{
		Prefs: &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{{
			{ProductName: "Energy gel", ConsumptionTiming: models.TimingBefore, TimingMinutes: 30},
		}},
		Session: session,
	}
	fn := &fakeNotifier{}
	s := NewScheduler(src, fn, testLogger(), fastOpts())
	s.now = func() time.Time { return now }

	out, err := s.ScheduleForSession(context.Background(), session, 7)
	require.NoError(t, err)
	require.Equal(t, Outcome{Scheduled: 1}, out)

	require.Len(t, fn.Calls, 1)
	call := fn.Calls[0]
	require.Equal(t, TriggerAt, call.Trigger.Kind)
	require.Equal(t, start.Add(-30*time.Minute), call.Trigger.When)
	require.Contains(t, call.Content.Body, "Energy gel")
}

func TestScheduleForSession_BeforeTiming_PastFallsBackToImmediate(t *testing.T) {
	now := time.Date(2026, 6, 1, 17, 45, 0, 0, time.Local)
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.Local)
	session := futureSession(t, now, start)

	src := &fakeSource{
		Prefs: &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{{
			{ProductName: "Energy gel", ConsumptionTiming: models.TimingBefore, TimingMinutes: 30},
		}},
		Session: session,
	}
	fn := &fakeNotifier{}
	s := NewScheduler(src, fn, testLogger(), fastOpts())
	s.now = func() time.Time { return now }

	out, err := s.ScheduleForSession(context.Background(), session, 7)
	require.NoError(t, err)
	require.Equal(t, 1, out.Scheduled)

	require.Len(t, fn.Calls, 1)
	require.Equal(t, TriggerDelay, fn.Calls[0].Trigger.Kind)
	require.Equal(t, immediateDelay, fn.Calls[0].Trigger.Delay)
}

func TestScheduleForSession_AllTimings(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.Local)
	session := futureSession(t, now, start)

	src := &fakeSource{
		Prefs: &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{{
			{ProductName: "Gel", ConsumptionTiming: models.TimingBefore},
			{ProductName: "Isotonic", ConsumptionTiming: models.TimingDuring},
			{ProductName: "Protein", ConsumptionTiming: models.TimingAfter, TimingMinutes: 45},
			{ProductName: "Creatine", ConsumptionTiming: models.TimingDaily},
		}},
		Session: session,
	}
	fn := &fakeNotifier{}
	s := NewScheduler(src, fn, testLogger(), fastOpts())
	s.now = func() time.Time { return now }

	out, err := s.ScheduleForSession(context.Background(), session, 7)
	require.NoError(t, err)
	require.Equal(t, 4, out.Scheduled)
	require.Len(t, fn.Calls, 4)

	// before: default 30-minute offset
	require.Equal(t, start.Add(-30*time.Minute), fn.Calls[0].Trigger.When)
	// during: at session start
	require.Equal(t, start, fn.Calls[1].Trigger.When)
	// after: explicit 45-minute offset
	require.Equal(t, start.Add(45*time.Minute), fn.Calls[2].Trigger.When)
	// daily: fixed morning slot
	require.Equal(t, TriggerDaily, fn.Calls[3].Trigger.Kind)
	require.Equal(t, 9, fn.Calls[3].Trigger.Hour)
	require.Equal(t, 0, fn.Calls[3].Trigger.Min)
}

func TestScheduleForSession_RemindersDisabled_NoPolling(t *testing.T) {
	src := &fakeSource{Prefs: &models.NotificationPreferences{ConsumptionReminders: false}}
	fn := &fakeNotifier{}
	s := NewScheduler(src, fn, testLogger(), fastOpts())

	out, err := s.ScheduleForSession(context.Background(), &models.TrainingSession{SessionID: 42}, 7)
	require.NoError(t, err)
	require.True(t, out.Disabled)
	require.Zero(t, src.RecsCalls)
	require.Empty(t, fn.Calls)
}

func TestScheduleForSession_PreferencesError_SkipsSilently(t *testing.T) {
	src := &fakeSource{PrefsErr: errors.New("backend down")}
	fn := &fakeNotifier{}
	s := NewScheduler(src, fn, testLogger(), fastOpts())

	out, err := s.ScheduleForSession(context.Background(), &models.TrainingSession{SessionID: 42}, 7)
	require.NoError(t, err)
	require.True(t, out.Disabled)
	require.Empty(t, fn.Calls)
}

func TestScheduleForSession_PollExhaustion_SoftOutcome(t *testing.T) {
	src := &fakeSource{
		Prefs:          &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{nil},
	}
	fn := &fakeNotifier{}
	s := NewScheduler(src, fn, testLogger(), fastOpts())

	out, err := s.ScheduleForSession(context.Background(), &models.TrainingSession{SessionID: 42}, 7)
	require.NoError(t, err)
	require.True(t, out.NoRecommendations)
	require.Equal(t, 3, src.RecsCalls)
	require.Empty(t, fn.Calls)
}

func TestScheduleForSession_PollErrors_SoftOutcome(t *testing.T) {
	src := &fakeSource{
		Prefs:   &models.NotificationPreferences{ConsumptionReminders: true},
		RecsErr: errors.New("502"),
	}
	fn := &fakeNotifier{}
	s := NewScheduler(src, fn, testLogger(), fastOpts())

	out, err := s.ScheduleForSession(context.Background(), &models.TrainingSession{SessionID: 42}, 7)
	require.NoError(t, err)
	require.True(t, out.NoRecommendations)
}

func TestScheduleForSession_PollSucceedsOnRetry(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.Local)
	session := futureSession(t, now, start)

	src := &fakeSource{
		Prefs: &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{
			nil,
			{{ProductName: "Gel", ConsumptionTiming: models.TimingBefore}},
		},
		Session: session,
	}
	fn := &fakeNotifier{}
	s := NewScheduler(src, fn, testLogger(), fastOpts())
	s.now = func() time.Time { return now }

	out, err := s.ScheduleForSession(context.Background(), session, 7)
	require.NoError(t, err)
	require.Equal(t, 1, out.Scheduled)
	require.Equal(t, 2, src.RecsCalls)
}

func TestScheduleForSession_ContextCancelled_ReturnsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{
		Prefs:          &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{nil},
	}
	s := NewScheduler(src, &fakeNotifier{}, testLogger(), fastOpts())

	_, err := s.ScheduleForSession(ctx, &models.TrainingSession{SessionID: 42}, 7)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScheduleForSession_SkipsIncompleteRecommendations(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.Local)
	session := futureSession(t, now, start)

	src := &fakeSource{
		Prefs: &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{{
			{ProductName: "", ConsumptionTiming: models.TimingBefore},
			{ProductName: "Gel", ConsumptionTiming: ""},
			{ProductName: "Gel", ConsumptionTiming: models.TimingBefore},
		}},
		Session: session,
	}
	fn := &fakeNotifier{}
	s := NewScheduler(src, fn, testLogger(), fastOpts())
	s.now = func() time.Time { return now }

	out, err := s.ScheduleForSession(context.Background(), session, 7)
	require.NoError(t, err)
	require.Equal(t, 1, out.Scheduled)
	require.Len(t, fn.Calls, 1)
}

func TestScheduleForSession_OneFailureDoesNotStopTheRest(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.Local)
	session := futureSession(t, now, start)

	src := &fakeSource{
		Prefs: &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{{
			{ProductName: "Gel", ConsumptionTiming: models.TimingBefore},
			{ProductName: "Isotonic", ConsumptionTiming: models.TimingDuring},
			{ProductName: "Protein", ConsumptionTiming: models.TimingAfter},
		}},
		Session: session,
	}
	fn := &fakeNotifier{FailOn: 2}
	s := NewScheduler(src, fn, testLogger(), fastOpts())
	s.now = func() time.Time { return now }

	out, err := s.ScheduleForSession(context.Background(), session, 7)
	require.NoError(t, err)
	require.Equal(t, 2, out.Scheduled)
	require.Len(t, fn.Calls, 3)
}

func TestScheduleForSession_UsesRefetchedStartTime(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)
	// the session we created locally has no start time
	session := &models.TrainingSession{SessionID: 42, SessionDate: "2026-06-01"}
	// the refetched copy has one
	fresh := &models.TrainingSession{SessionID: 42, SessionDate: "2026-06-01", StartTime: "19:30"}

	src := &fakeSource{
		Prefs: &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{{
			{ProductName: "Gel", ConsumptionTiming: models.TimingDuring},
		}},
		Session: fresh,
	}
	fn := &fakeNotifier{}
	s := NewScheduler(src, fn, testLogger(), fastOpts())
	s.now = func() time.Time { return now }

	out, err := s.ScheduleForSession(context.Background(), session, 7)
	require.NoError(t, err)
	require.Equal(t, 1, out.Scheduled)
	require.Equal(t, time.Date(2026, 6, 1, 19, 30, 0, 0, time.Local), fn.Calls[0].Trigger.When)
}

func TestScheduleForSession_MissingStartTime_UsesDefault(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)
	session := &models.TrainingSession{SessionID: 42, SessionDate: "2026-06-01"}

	src := &fakeSource{
		Prefs: &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{{
			{ProductName: "Gel", ConsumptionTiming: models.TimingDuring},
		}},
		SessionErr: errors.New("404"),
	}
	fn := &fakeNotifier{}
	s := NewScheduler(src, fn, testLogger(), fastOpts())
	s.now = func() time.Time { return now }

	out, err := s.ScheduleForSession(context.Background(), session, 7)
	require.NoError(t, err)
	require.Equal(t, 1, out.Scheduled)
	// default start 18:00
	require.Equal(t, time.Date(2026, 6, 1, 18, 0, 0, 0, time.Local), fn.Calls[0].Trigger.When)
}

func TestScheduleForSession_BadSessionDate_Error(t *testing.T) {
	session := &models.TrainingSession{SessionID: 42, SessionDate: "yesterday"}

	src := &fakeSource{
		Prefs: &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{{
			{ProductName: "Gel", ConsumptionTiming: models.TimingBefore},
		}},
		SessionErr: errors.New("404"),
	}
	s := NewScheduler(src, &fakeNotifier{}, testLogger(), fastOpts())

	_, err := s.ScheduleForSession(context.Background(), session, 7)
	require.Error(t, err)
}

func TestOptions_FillDefaults(t *testing.T) {
	var o Options
	o.fillDefaults()
	require.Equal(t, 3, o.PollAttempts)
	require.Equal(t, 4*time.Second, o.PollDelay)
	require.Equal(t, "18:00", o.DefaultStartTime)
	require.Equal(t, 30*time.Minute, o.DefaultOffset)
	require.Equal(t, 9, o.DailyHour)
	require.Equal(t, 0, o.DailyMinute)
}

func TestOptions_FillDefaults_KeepsExplicitMidnight(t *testing.T) {
	o := Options{DailySet: true}
	o.fillDefaults()
	require.Equal(t, 0, o.DailyHour)
	require.Equal(t, 0, o.DailyMinute)
}

func TestScheduleForSession_ExplicitMidnightDaily(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.Local)
	session := futureSession(t, now, start)

	src := &fakeSource{
		Prefs: &models.NotificationPreferences{ConsumptionReminders: true},
		RecsPerAttempt: [][]models.Recommendation{{
			{ProductName: "Creatine", ConsumptionTiming: models.TimingDaily},
		}},
		Session: session,
	}
	fn := &fakeNotifier{}
	opts := fastOpts()
	opts.DailySet = true
	s := NewScheduler(src, fn, testLogger(), opts)
	s.now = func() time.Time { return now }

	out, err := s.ScheduleForSession(context.Background(), session, 7)
	require.NoError(t, err)
	require.Equal(t, 1, out.Scheduled)
	require.Len(t, fn.Calls, 1)
	require.Equal(t, TriggerDaily, fn.Calls[0].Trigger.Kind)
	require.Equal(t, 0, fn.Calls[0].Trigger.Hour)
	require.Equal(t, 0, fn.Calls[0].Trigger.Min)
}
