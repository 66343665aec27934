package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Shamu9311/sport-front/internal/gate"
)

func (a *App) getStatus() string {
	s := ""
	if u := a.currentUser(); u != nil {
		s = u.Username + " "
	}
	s += "/" + string(a.route)
	return fmt.Sprintf("(%s)", s)
}

// Root runs the interactive loop. Every command first navigates to its
// screen so the guard is consulted exactly the way a route change would be.
func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to the sport-front companion (type 'help' for commands)")
	a.printRouteHint()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "sf %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()

		case "login":
			a.Login(ctx)
		case "register":
			a.Register(ctx)
		case "logout":
			a.Logout(ctx)

		case "profile":
			a.ViewProfile(ctx)
		case "create-profile", "edit-profile":
			a.CreateProfile(ctx)

		case "trainings":
			a.ListTrainings(ctx)
		case "addtraining":
			a.AddTraining(ctx)
		case "showtraining":
			if id, ok := idArg(a, args, "showtraining"); ok {
				a.ShowTraining(ctx, id)
			}
		case "edittraining":
			if id, ok := idArg(a, args, "edittraining"); ok {
				a.EditTraining(ctx, id)
			}
		case "deltraining":
			if id, ok := idArg(a, args, "deltraining"); ok {
				a.DeleteTraining(ctx, id)
			}

		case "categories":
			a.ListCategories(ctx)
		case "products":
			if id, ok := idArg(a, args, "products"); ok {
				a.ListProducts(ctx, id)
			}
		case "product":
			if id, ok := idArg(a, args, "product"); ok {
				a.ShowProduct(ctx, id)
			}
		case "consume":
			a.Consume(ctx, args)

		case "recs":
			a.SavedRecommendations(ctx)

		case "reminders":
			a.ListReminders()
		case "clearreminders":
			a.notifier.CancelAll()
			fmt.Fprintln(a.out, "All scheduled reminders cancelled")

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}

		a.applyGuard(ctx)
	}
}

func (a *App) printHelp() {
	switch a.gate.State() {
	case gate.StateSignedOut:
		fmt.Fprintln(a.out, "Available commands: login, register, help, exit")
	case gate.StateNoProfile:
		fmt.Fprintln(a.out, "Available commands: create-profile, logout, help, exit")
	default:
		fmt.Fprintln(a.out, "Available commands: profile, edit-profile, trainings, addtraining, showtraining <id>,")
		fmt.Fprintln(a.out, "  edittraining <id>, deltraining <id>, categories, products <categoryId>, product <id>,")
		fmt.Fprintln(a.out, "  consume <productId> <qty>, recs, reminders, clearreminders, logout, exit")
	}
}

func idArg(a *App, args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Usage: %s <id>\n", usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid id %q\n", args[0])
		return 0, false
	}
	return id, true
}
