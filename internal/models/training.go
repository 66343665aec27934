package models

import (
	"fmt"
	"strings"
	"time"
)

// ConsumptionTiming categorizes when a recommended product should be taken
// relative to a training session.
type ConsumptionTiming string

const (
	TimingBefore ConsumptionTiming = "before"
	TimingDuring ConsumptionTiming = "during"
	TimingAfter  ConsumptionTiming = "after"
	TimingDaily  ConsumptionTiming = "daily"
)

// TrainingSession is one logged workout. Recommendations are generated
// asynchronously server-side and may be absent right after creation.
type TrainingSession struct {
	SessionID       int64            `json:"session_id"`
	UserID          int64            `json:"user_id"`
	SessionDate     string           `json:"session_date"`
	StartTime       string           `json:"start_time,omitempty"`
	DurationMin     int              `json:"duration_min"`
	Intensity       string           `json:"intensity"`
	Type            string           `json:"type"`
	SportType       string           `json:"sport_type,omitempty"`
	Weather         string           `json:"weather,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Recommendation is one product suggestion attached to a training session.
type Recommendation struct {
	ProductID          int64             `json:"product_id"`
	ProductName        string            `json:"product_name"`
	ProductDescription string            `json:"product_description,omitempty"`
	Reasoning          string            `json:"reasoning,omitempty"`
	ConsumptionTiming  ConsumptionTiming `json:"consumption_timing,omitempty"`
	TimingMinutes      int               `json:"timing_minutes,omitempty"`
}

// StartAt combines SessionDate and StartTime into a local wall-clock time.
// SessionDate may carry a trailing time component ("2025-06-01T00:00:00Z");
// only the calendar date is used. When StartTime is empty, fallback is used
// instead (expected "HH:MM" or "HH:MM:SS").
func (s *TrainingSession) StartAt(fallback string) (time.Time, error) {
	dateStr := s.SessionDate
	if i := strings.IndexByte(dateStr, 'T'); i >= 0 {
		dateStr = dateStr[:i]
	}

	timeStr := s.StartTime
	if timeStr == "" {
		timeStr = fallback
	}

	day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid session date %q: %w", s.SessionDate, err)
	}

	var hh, mm, ss int
	if n, _ := fmt.Sscanf(timeStr, "%d:%d:%d", &hh, &mm, &ss); n < 2 {
		return time.Time{}, fmt.Errorf("invalid start time %q", timeStr)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 || ss < 0 || ss > 59 {
		return time.Time{}, fmt.Errorf("invalid start time %q", timeStr)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hh, mm, ss, 0, time.Local), nil
}
