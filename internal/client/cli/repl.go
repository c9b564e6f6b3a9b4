package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Tabs(ctx context.Context) error
	Home(ctx context.Context) error
	Donations(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Donate(ctx context.Context, id, amount string) error
	Volunteer(ctx context.Context, id, phone, note string) error
	Payment(ctx context.Context, url string) error
	Points(ctx context.Context) error
	Subscriptions(ctx context.Context) error
	Subscribe(ctx context.Context, planID string) error
	Cancel(ctx context.Context) error
	AddCard(ctx context.Context, tokenID string) error
	Me(ctx context.Context) error
	Edit(ctx context.Context) error
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Back(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: tabs, home, donation, show <id>, donate <id> [amount], volunteer <id> [phone] [note], " +
		"payment <url>, points, subs, me, login, register, back, exit"
	helpLoggedIn = "Available commands: tabs, home, donation, show <id>, donate <id> [amount], volunteer <id> [phone] [note], " +
		"payment <url>, points, subs, subscribe <planId>, cancel, addcard [tokenId], me, edit, logout, back, exit"
)

// runREPL starts a simple read–eval–print loop for the gophgive CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands and missing
// arguments are reported back to the user. The loop exits on scanner EOF or
// when the user types "exit" or "quit".
//
// The prompt shows the current status (from statusFn). Tab commands (home,
// donation, points, subs, me) reset the route stack, show and addcard push
// onto it and back pops it.
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gg> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "tabs":
			_ = a.Tabs(ctx)

		case "home":
			_ = a.Home(ctx)

		case "donation":
			_ = a.Donations(ctx)

		case "show":
			if len(args) < 1 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "donate":
			if len(args) < 1 {
				printlnFn("Usage: donate <id> [amount]")
				continue
			}
			_ = a.Donate(ctx, args[0], strings.Join(args[1:], ""))

		case "volunteer":
			if len(args) < 1 {
				printlnFn("Usage: volunteer <id> [phone] [note]")
				continue
			}
			_ = a.Volunteer(ctx, args[0], argAt(args, 1), strings.Join(tail(args, 2), " "))

		case "payment":
			if len(args) < 1 {
				printlnFn("Usage: payment <url>")
				continue
			}
			_ = a.Payment(ctx, args[0])

		case "points", "poin":
			_ = a.Points(ctx)

		case "subs", "subscription":
			_ = a.Subscriptions(ctx)

		case "subscribe":
			if len(args) < 1 {
				printlnFn("Usage: subscribe <planId>")
				continue
			}
			_ = a.Subscribe(ctx, args[0])

		case "cancel":
			_ = a.Cancel(ctx)

		case "addcard":
			_ = a.AddCard(ctx, argAt(args, 0))

		case "me", "profile":
			_ = a.Me(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "back":
			_ = a.Back(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func tail(args []string, from int) []string {
	if from >= len(args) {
		return nil
	}
	return args[from:]
}
