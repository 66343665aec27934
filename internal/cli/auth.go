package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shamu9311/sport-front/internal/api"
	"github.com/Shamu9311/sport-front/internal/gate"
)

func (a *App) Login(ctx context.Context) {
	if !a.enter(ctx, gate.RouteLogin) {
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}

	user, token, err := a.api.Login(ctx, email, string(password))
	switch {
	case errors.Is(err, api.ErrInvalidCredentials):
		fmt.Fprintln(a.out, "Invalid email or password")
		return
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Cannot reach the server, check your connection")
		return
	case err != nil:
		fmt.Fprintln(a.out, "Login failed:", err)
		return
	}

	if err := a.gate.Login(ctx, *user, token); err != nil {
		fmt.Fprintln(a.out, "Could not save the session:", err)
		return
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Username)
	a.navigate(ctx, gate.RouteHome)
	a.printRouteHint()
}

// Register creates an account and signs straight in, the same flow the
// registration screen uses.
func (a *App) Register(ctx context.Context) {
	if !a.enter(ctx, gate.RouteRegister) {
		return
	}

	username, err := GetSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		a.log.Error(ctx, "input error", "error", err)
		return
	}

	user, token, err := a.api.Register(ctx, username, email, string(password))
	switch {
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Cannot reach the server, check your connection")
		return
	case err != nil:
		fmt.Fprintln(a.out, "Registration failed:", err)
		return
	}

	if token == "" {
		// older backends answer registration without a token
		user, token, err = a.api.Login(ctx, email, string(password))
		if err != nil {
			fmt.Fprintln(a.out, "Account created; please sign in with 'login'")
			return
		}
	}

	if err := a.gate.Login(ctx, *user, token); err != nil {
		fmt.Fprintln(a.out, "Could not save the session:", err)
		return
	}

	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", user.Username)
	a.navigate(ctx, gate.RouteHome)
	a.printRouteHint()
}

func (a *App) Logout(ctx context.Context) {
	a.gate.Logout(ctx)
	a.notifier.CancelAll()
	fmt.Fprintln(a.out, "Signed out")
	a.navigate(ctx, gate.RouteHome)
}
