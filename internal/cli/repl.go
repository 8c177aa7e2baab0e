package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Submit(ctx context.Context) error
	Mine(ctx context.Context) error
	Show(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) error
	Catalog(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the DeployHQ console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  - help                 show available commands
//	  - signup               create an account
//	  - login                authenticate
//	  - exit | quit          leave the program
//
//	Logged in:
//	  - whoami               show the current account
//	  - catalog              list every submission
//	  - show <id>            show one submission
//	  - submit               submit an agent (builders)
//	  - mine                 list own submissions (builders)
//	  - stats                dashboard figures (builders)
//	  - status <id> <status> change a submission's status (builders)
//	  - delete <id>          delete a submission (builders)
//	  - logout               log out
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("dhq %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Error:", err)
			}
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
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, catalog, show <id>, submit, mine, stats, status <id> <status>, delete <id>, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "submit":
			cmdErr = a.Submit(ctx)

		case "mine":
			cmdErr = a.Mine(ctx)

		case "stats":
			cmdErr = a.Stats(ctx)

		case "catalog", "l", "list":
			cmdErr = a.Catalog(ctx)

		case "show":
			if len(args) != 1 {
				printlnFn("Usage: show <id>")
				continue
			}
			cmdErr = a.Show(ctx, args[0])

		case "status":
			if len(args) != 2 {
				printlnFn("Usage: status <id> <pending|approved|published|rejected>")
				continue
			}
			cmdErr = a.SetStatus(ctx, args[0], args[1])

		case "delete":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				continue
			}
			cmdErr = a.Delete(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
