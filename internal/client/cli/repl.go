package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/client/nav"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface is the command surface the REPL drives. *App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Navigate(ctx context.Context, t nav.Target) error
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Submit(ctx context.Context) error
	Star(ctx context.Context, storyID string) error
	Delete(ctx context.Context, storyID string) error
}

// runREPL reads commands from reader until EOF or "exit"/"quit".
//
//	help                 show available commands
//	all | home           show all stories
//	favorites            show the user's favorites
//	mine                 show the user's own stories
//	submit               toggle the submit form and add a story
//	profile              toggle the profile box
//	login | signup       show the account forms and authenticate
//	logout               forget the session and reload
//	star <id>            toggle a favorite
//	delete <id>          delete one of the user's stories
//	exit | quit          leave the program
//
// Handler errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: all, favorites, mine, submit, profile, star <id>, delete <id>, logout, exit")
			} else {
				printlnFn("Available commands: all, login, signup, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "submit":
			_ = a.Submit(ctx)

		case "star", "fav":
			if len(args) == 0 {
				printlnFn("Usage: star <id>")
				continue
			}
			_ = a.Star(ctx, args[0])

		case "delete", "rm":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			t, err := nav.ParseTarget(cmd)
			if err != nil {
				printlnFn("Unknown command:", cmd)
				continue
			}
			_ = a.Navigate(ctx, t)
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}
