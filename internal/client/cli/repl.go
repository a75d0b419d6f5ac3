package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/warrantyreminder/internal/logging"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	settle(ctx context.Context) error

	Open(ctx context.Context, path string) error
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Google(ctx context.Context) error
	Logout(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context, token string) error
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Sort(ctx context.Context, key string) error
	Delete(ctx context.Context, id string) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Show(ctx context.Context, id string) error
	Download(ctx context.Context, id string) error
	WhoAmI(ctx context.Context) error
}

// helpText lists the commands that make sense for the session state.
func helpText(loggedIn bool) string {
	if loggedIn {
		return "Available commands: list, search [query], sort <key>, create, edit <id>, show <id>, " +
			"download <id>, delete <id>, whoami, open <path>, logout, exit"
	}
	return "Available commands: login, signup, google, forgot, reset <token>, open <path>, exit"
}

// runREPL starts a simple read–eval–print loop for the Warranty Reminder CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit". Prompts issued by command handlers read from the same
// reader, so answers are never swallowed by the loop.
//
// Handler errors are logged at debug level; the user has already seen a
// notification or field errors. After every command, navigations queued by
// session changes are performed.
func runREPL(ctx context.Context, a execIface, log logging.Logger, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("wr %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText(a.isLoggedIn()))

		case "open":
			if len(args) != 1 {
				printlnFn("Usage: open <path>")
				continue
			}
			cmdErr = a.Open(ctx, args[0])

		case "login":
			cmdErr = a.Login(ctx)

		case "signup":
			cmdErr = a.Signup(ctx)

		case "google":
			cmdErr = a.Google(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "forgot":
			cmdErr = a.Forgot(ctx)

		case "reset":
			if len(args) != 1 {
				printlnFn("Usage: reset <token>")
				continue
			}
			cmdErr = a.Reset(ctx, args[0])

		case "l", "list":
			cmdErr = a.List(ctx)

		case "search":
			cmdErr = a.Search(ctx, strings.Join(args, " "))

		case "sort":
			if len(args) != 1 {
				printlnFn("Usage: sort <key>")
				continue
			}
			cmdErr = a.Sort(ctx, args[0])

		case "delete":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				continue
			}
			cmdErr = a.Delete(ctx, args[0])

		case "create":
			cmdErr = a.Create(ctx)

		case "edit":
			if len(args) != 1 {
				printlnFn("Usage: edit <id>")
				continue
			}
			cmdErr = a.Edit(ctx, args[0])

		case "show":
			if len(args) != 1 {
				printlnFn("Usage: show <id>")
				continue
			}
			cmdErr = a.Show(ctx, args[0])

		case "download":
			if len(args) != 1 {
				printlnFn("Usage: download <id>")
				continue
			}
			cmdErr = a.Download(ctx, args[0])

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			log.Debug(ctx, "command failed", "command", cmd, "error", cmdErr)
		}
		if err := a.settle(ctx); err != nil {
			log.Debug(ctx, "navigation failed", "error", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}
