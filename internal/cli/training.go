package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Shamu9311/sport-front/internal/gate"
	"github.com/Shamu9311/sport-front/internal/models"
)

var (
	intensityOptions = []string{"low", "medium", "high", "very_high"}
	typeOptions      = []string{"cardio", "strength", "hiit", "endurance", "crossfit", "other"}
	weatherOptions   = []string{"sunny", "cloudy", "rain", "cool", "hot", "humid"}
)

func (a *App) ListTrainings(ctx context.Context) {
	if !a.enter(ctx, gate.RouteTraining) {
		return
	}
	user := a.currentUser()

	sessions, err := a.api.TrainingSessions(ctx, user.ID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load trainings:", err)
		return
	}
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No trainings logged yet; use 'addtraining'")
		return
	}
	for _, s := range sessions {
		fmt.Fprintf(a.out, "#%d  %s %s  %dmin  %s/%s\n",
			s.SessionID, s.SessionDate, s.StartTime, s.DurationMin, s.Type, s.Intensity)
	}
}

// AddTraining logs a workout and, once the backend has generated its
// recommendations, schedules the consumption reminders for it.
func (a *App) AddTraining(ctx context.Context) {
	if !a.enter(ctx, gate.RouteTraining) {
		return
	}
	user := a.currentUser()

	s, err := a.promptTraining()
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}
	s.UserID = user.ID

	created, err := a.api.CreateTrainingSession(ctx, s)
	if err != nil {
		fmt.Fprintln(a.out, "Could not save the training:", err)
		return
	}
	fmt.Fprintf(a.out, "Training #%d saved\n", created.SessionID)

	full, err := a.api.TrainingSession(ctx, created.SessionID)
	if err != nil {
		full = created
	}

	fmt.Fprintln(a.out, "Checking recommendations...")
	outcome, err := a.scheduler.ScheduleForSession(ctx, full, user.ID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not schedule reminders:", err)
		return
	}
	switch {
	case outcome.Disabled:
		// reminders are off, nothing to say
	case outcome.NoRecommendations:
		fmt.Fprintln(a.out, "No recommendations available yet. Try again later.")
	case outcome.Scheduled > 0:
		fmt.Fprintf(a.out, "Scheduled %d consumption reminder(s)\n", outcome.Scheduled)
	default:
		fmt.Fprintln(a.out, "Nothing to remind you about for this session")
	}
}

func (a *App) ShowTraining(ctx context.Context, id int64) {
	if !a.enter(ctx, gate.RouteTraining) {
		return
	}

	s, err := a.api.TrainingSession(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load the training:", err)
		return
	}

	fmt.Fprintf(a.out, "#%d  %s %s  %dmin  %s/%s", s.SessionID, s.SessionDate, s.StartTime, s.DurationMin, s.Type, s.Intensity)
	if s.Weather != "" {
		fmt.Fprintf(a.out, "  weather: %s", s.Weather)
	}
	fmt.Fprintln(a.out)
	if s.Notes != "" {
		fmt.Fprintln(a.out, "  notes:", s.Notes)
	}
	for _, r := range s.Recommendations {
		fmt.Fprintf(a.out, "  - %s (%s", r.ProductName, r.ConsumptionTiming)
		if r.TimingMinutes > 0 {
			fmt.Fprintf(a.out, " %dmin", r.TimingMinutes)
		}
		fmt.Fprint(a.out, ")")
		if r.Reasoning != "" {
			fmt.Fprintf(a.out, ": %s", r.Reasoning)
		}
		fmt.Fprintln(a.out)
	}
}

// EditTraining re-prompts the whole form and replaces the session. Existing
// recommendations and reminders are left untouched.
func (a *App) EditTraining(ctx context.Context, id int64) {
	if !a.enter(ctx, gate.RouteTraining) {
		return
	}

	existing, err := a.api.TrainingSession(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load the training:", err)
		return
	}

	s, err := a.promptTraining()
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}
	s.SessionID = existing.SessionID
	s.UserID = existing.UserID

	if err := a.api.UpdateTrainingSession(ctx, s); err != nil {
		fmt.Fprintln(a.out, "Could not update the training:", err)
		return
	}
	fmt.Fprintf(a.out, "Training #%d updated\n", s.SessionID)
}

func (a *App) DeleteTraining(ctx context.Context, id int64) {
	if !a.enter(ctx, gate.RouteTraining) {
		return
	}

	answer, err := GetChoice(a.reader, fmt.Sprintf("Delete training #%d?", id), []string{"y", "n"}, "n", a.out)
	if err != nil || answer != "y" {
		return
	}
	if err := a.api.DeleteTrainingSession(ctx, id); err != nil {
		fmt.Fprintln(a.out, "Could not delete the training:", err)
		return
	}
	fmt.Fprintln(a.out, "Training deleted")
}

func (a *App) promptTraining() (*models.TrainingSession, error) {
	today := time.Now().Format("2006-01-02")

	var date string
	for {
		answer, err := GetSimpleText(a.reader, fmt.Sprintf("Date (YYYY-MM-DD, empty for %s)", today), a.out)
		if err != nil {
			return nil, err
		}
		if answer == "" {
			answer = today
		}
		if _, err := time.Parse("2006-01-02", answer); err != nil {
			fmt.Fprintln(a.out, "Please enter a date like 2025-06-01")
			continue
		}
		date = answer
		break
	}

	var start string
	for {
		answer, err := GetSimpleText(a.reader, fmt.Sprintf("Start time (HH:MM, empty for %s)", a.config.DefaultSessionStart), a.out)
		if err != nil {
			return nil, err
		}
		if answer == "" {
			answer = a.config.DefaultSessionStart
		}
		if _, err := time.Parse("15:04", answer); err != nil {
			fmt.Fprintln(a.out, "Please enter a time like 18:00")
			continue
		}
		start = answer + ":00"
		break
	}

	duration, err := GetInt(a.reader, "Duration (minutes)", 1, 24*60, a.out)
	if err != nil {
		return nil, err
	}
	intensity, err := GetChoice(a.reader, "Intensity", intensityOptions, "medium", a.out)
	if err != nil {
		return nil, err
	}
	kind, err := GetChoice(a.reader, "Type", typeOptions, "cardio", a.out)
	if err != nil {
		return nil, err
	}
	weather, err := GetChoice(a.reader, "Weather", weatherOptions, "sunny", a.out)
	if err != nil {
		return nil, err
	}
	notes, err := GetSimpleText(a.reader, "Notes (optional)", a.out)
	if err != nil {
		return nil, err
	}

	return &models.TrainingSession{
		SessionDate: date,
		StartTime:   start,
		DurationMin: duration,
		Intensity:   intensity,
		Type:        kind,
		Weather:     weather,
		Notes:       notes,
	}, nil
}
