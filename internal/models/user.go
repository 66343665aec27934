// Package models defines the domain types exchanged with the nutrition API.
package models

// User is the account record returned by the auth endpoints.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// NotificationPreferences controls which local reminders the client schedules.
type NotificationPreferences struct {
	ConsumptionReminders bool `json:"consumption_reminders"`
	TrainingAlerts       bool `json:"training_alerts"`
}
