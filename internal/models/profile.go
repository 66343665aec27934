package models

import "strings"

// Enumerated profile fields. The short gender codes match what the backend
// stores; everything else travels as lowercase identifiers.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

var (
	ActivityLevels      = []string{"sedentary", "moderate", "active", "very_active"}
	TrainingFrequencies = []string{"1-2", "3-4", "5+"}
	PrimaryGoals        = []string{"muscle_gain", "weight_loss", "performance", "general_health"}
	SweatLevels         = []string{"low", "medium", "high"}
	CaffeineTolerances  = []string{"none", "low", "medium", "high"}
)

// UserProfile is the nutrition/training profile attached to a user account.
// DietaryRestrictions is a list on the client; the backend stores it as a
// single comma-joined string, see wire marshalling in the api package.
type UserProfile struct {
	Age                 int      `json:"age"`
	Weight              float64  `json:"weight"`
	Height              float64  `json:"height"`
	Gender              string   `json:"gender"`
	ActivityLevel       string   `json:"activity_level"`
	TrainingFrequency   string   `json:"training_frequency"`
	PrimaryGoal         string   `json:"primary_goal"`
	SweatLevel          string   `json:"sweat_level"`
	CaffeineTolerance   string   `json:"caffeine_tolerance"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

// JoinRestrictions converts the restriction list to the backend's
// comma-joined wire form.
func JoinRestrictions(rs []string) string {
	return strings.Join(rs, ",")
}

// SplitRestrictions parses the backend's comma-joined wire form. An empty
// string yields an empty list, not a single empty element.
func SplitRestrictions(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// OneOf reports whether v is one of the allowed values.
func OneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
