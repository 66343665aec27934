// Package cli provides the interactive sport-front command-line client.
//
// It wires configuration, local session storage, the backend API client, the
// session gate, and an interactive REPL. Typical flow: restore a persisted
// session, apply the route guard, and execute user commands.
//
// Key features:
//   - Login / Register / Logout with persisted sessions
//   - Create and view the athlete profile
//   - Log training sessions and schedule consumption reminders
//   - Browse the product catalog and log consumption
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and the route guard in the gate package for details.
package cli
