package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Shamu9311/sport-front/internal/flagx"
	"github.com/Shamu9311/sport-front/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// can be given as strings like "4s" or integer nanoseconds. Pointer fields
// distinguish "absent" from zero so the JSON file only overrides what it
// mentions.
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	DatabasePath        *string         `json:"database_path"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	PollAttempts        *int            `json:"poll_attempts"`
	PollDelay           *timex.Duration `json:"poll_delay"`
	DefaultSessionStart *string         `json:"default_session_start"`
	DefaultOffsetMin    *int            `json:"default_offset_min"`
	DailyReminderHour   *int            `json:"daily_reminder_hour"`
	DailyReminderMinute *int            `json:"daily_reminder_minute"`
}

// parseJson overlays cfg with values loaded from the JSON file given via
// the -c/-config flags. No file, no overlay. Read or unmarshal errors
// panic; LoadConfig runs before any state exists worth protecting.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.PollAttempts != nil {
		cfg.PollAttempts = *jc.PollAttempts
	}
	if jc.PollDelay != nil {
		cfg.PollDelay = time.Duration(jc.PollDelay.Duration)
	}
	if jc.DefaultSessionStart != nil {
		cfg.DefaultSessionStart = *jc.DefaultSessionStart
	}
	if jc.DefaultOffsetMin != nil {
		cfg.DefaultOffsetMin = *jc.DefaultOffsetMin
	}
	if jc.DailyReminderHour != nil {
		cfg.DailyReminderHour = *jc.DailyReminderHour
	}
	if jc.DailyReminderMinute != nil {
		cfg.DailyReminderMinute = *jc.DailyReminderMinute
	}
}
