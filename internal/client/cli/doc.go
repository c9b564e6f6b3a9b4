// Package cli provides the interactive gophgive command-line client.
//
// It wires configuration, the local session, API services, the route stack
// and an interactive REPL. Each command behaves like a screen of the mobile
// app: it navigates the router, loads data in the context of the new route
// entry and prints the result or a toast-like notice.
//
// Key features:
//   - Browse activities, show details, donate and volunteer
//   - Points and achievements, subscriptions and payment methods
//   - Login / Register / Logout, profile view and edit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
