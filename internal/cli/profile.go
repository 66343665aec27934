package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shamu9311/sport-front/internal/gate"
	"github.com/Shamu9311/sport-front/internal/models"
)

func (a *App) ViewProfile(ctx context.Context) {
	if !a.enter(ctx, gate.RouteProfile) {
		return
	}
	user := a.currentUser()

	p, err := a.api.GetProfile(ctx, user.ID)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load the profile:", err)
		return
	}
	if p == nil {
		fmt.Fprintln(a.out, "No profile yet; run 'create-profile'")
		return
	}

	fmt.Fprintf(a.out, "%s <%s>\n", user.Username, user.Email)
	fmt.Fprintf(a.out, "  age: %d  weight: %.1f kg  height: %.0f cm  gender: %s\n", p.Age, p.Weight, p.Height, p.Gender)
	fmt.Fprintf(a.out, "  activity: %s  training: %s/week  goal: %s\n", p.ActivityLevel, p.TrainingFrequency, p.PrimaryGoal)
	fmt.Fprintf(a.out, "  sweat: %s  caffeine: %s\n", p.SweatLevel, p.CaffeineTolerance)
	if len(p.DietaryRestrictions) > 0 {
		fmt.Fprintf(a.out, "  restrictions: %s\n", strings.Join(p.DietaryRestrictions, ", "))
	}
}

// CreateProfile walks the user through the nutrition profile form. All
// validation happens here, before any network call; the save is applied to
// the gate optimistically on success.
func (a *App) CreateProfile(ctx context.Context) {
	if !a.enter(ctx, gate.RouteCreateProfile) {
		return
	}
	user := a.currentUser()

	p, err := a.promptProfile()
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}

	if err := a.api.SaveProfile(ctx, user.ID, p); err != nil {
		fmt.Fprintln(a.out, "Could not save the profile:", err)
		return
	}

	a.gate.ProfileSaved()
	fmt.Fprintln(a.out, "Profile saved")
	a.navigate(ctx, gate.RouteHome)
}

func (a *App) promptProfile() (*models.UserProfile, error) {
	age, err := GetInt(a.reader, "Age", 10, 100, a.out)
	if err != nil {
		return nil, err
	}
	weight, err := GetFloat(a.reader, "Weight (kg)", 30, 300, a.out)
	if err != nil {
		return nil, err
	}
	height, err := GetFloat(a.reader, "Height (cm)", 100, 250, a.out)
	if err != nil {
		return nil, err
	}
	gender, err := GetChoice(a.reader, "Gender", []string{models.GenderMale, models.GenderFemale, models.GenderOther}, "", a.out)
	if err != nil {
		return nil, err
	}
	activity, err := GetChoice(a.reader, "Activity level", models.ActivityLevels, "moderate", a.out)
	if err != nil {
		return nil, err
	}
	frequency, err := GetChoice(a.reader, "Training sessions per week", models.TrainingFrequencies, "3-4", a.out)
	if err != nil {
		return nil, err
	}
	goal, err := GetChoice(a.reader, "Primary goal", models.PrimaryGoals, "general_health", a.out)
	if err != nil {
		return nil, err
	}
	sweat, err := GetChoice(a.reader, "Sweat level", models.SweatLevels, "medium", a.out)
	if err != nil {
		return nil, err
	}
	caffeine, err := GetChoice(a.reader, "Caffeine tolerance", models.CaffeineTolerances, "medium", a.out)
	if err != nil {
		return nil, err
	}
	restrictions, err := GetSimpleText(a.reader, "Dietary restrictions (comma separated, empty for none)", a.out)
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{
		Age:                 age,
		Weight:              weight,
		Height:              height,
		Gender:              gender,
		ActivityLevel:       activity,
		TrainingFrequency:   frequency,
		PrimaryGoal:         goal,
		SweatLevel:          sweat,
		CaffeineTolerance:   caffeine,
		DietaryRestrictions: models.SplitRestrictions(restrictions),
	}, nil
}
