package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL chrome output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it.
type execIface interface {
	hasProfile() bool
	Generate(ctx context.Context, args []string) error
	Mine(ctx context.Context) error
	Community(ctx context.Context) error
	Like(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Signup(ctx context.Context) error
	Edit(ctx context.Context) error
	Logout(ctx context.Context) error
	Dismiss(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it until EOF, exit or
// quit. Handlers report their own failures, so their errors are dropped here.
//
//	help                          show available commands
//	generate [-a 16:9] [-q high] <prompt>
//	community | c                 public gallery, most liked first
//	like <id>                     like a community image once per session
//	mine | m                      your images (needs a profile)
//	share <id>                    toggle an image public or private
//	delete <id>                   delete one of your images
//	profile                       show the current profile
//	signup                        create a profile
//	edit                          change bio, email or avatar
//	logout                        forget the saved profile
//	dismiss                       clear the last error
//	exit | quit
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("studio %s> ", statusFn()))
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
			if a.hasProfile() {
				printlnFn("Available commands: generate, (c)ommunity, like, (m)ine, share, delete, profile, edit, logout, dismiss, exit")
			} else {
				printlnFn("Available commands: generate, (c)ommunity, like, signup, dismiss, exit")
			}

		case "generate", "g":
			_ = a.Generate(ctx, args)

		case "community", "c":
			_ = a.Community(ctx)

		case "like":
			_ = a.Like(ctx, args)

		case "mine", "m":
			_ = a.Mine(ctx)

		case "share":
			_ = a.Share(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "profile":
			_ = a.Profile(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "dismiss":
			_ = a.Dismiss(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
