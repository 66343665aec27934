// Package config loads runtime settings for the companion CLI.
package config

import "time"

// Config holds runtime settings for the companion CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend HTTP API.
//   - DatabasePath: path of the local sqlite database holding the session.
//   - RequestTimeout: per-request HTTP timeout.
//   - PollAttempts/PollDelay: bounds for the recommendation poll after a
//     training session is created.
//   - DefaultSessionStart: assumed start time ("HH:MM") for sessions
//     without one.
//   - DefaultOffsetMin: reminder offset in minutes when a recommendation
//     carries none.
//   - DailyReminderHour/DailyReminderMinute: wall-clock time for daily
//     reminders.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration

	PollAttempts int
	PollDelay    time.Duration

	DefaultSessionStart string
	DefaultOffsetMin    int
	DailyReminderHour   int
	DailyReminderMinute int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.DatabasePath = "companion.db"
	c.RequestTimeout = 10 * time.Second
	c.PollAttempts = 3
	c.PollDelay = 4 * time.Second
	c.DefaultSessionStart = "18:00"
	c.DefaultOffsetMin = 30
	c.DailyReminderHour = 9
	c.DailyReminderMinute = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
