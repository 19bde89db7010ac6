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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Profile(ctx context.Context) error
	Edit(ctx context.Context) error
	Image(ctx context.Context, path string) error
	Upload(ctx context.Context) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

var (
	publicCommands = []string{"register", "login", "help", "exit"}
	authCommands   = []string{"profile", "edit", "image", "upload", "status", "logout", "help", "exit"}
)

func available(loggedIn bool) []string {
	if loggedIn {
		return authCommands
	}
	return publicCommands
}

func allowed(loggedIn bool, cmd string) bool {
	for _, c := range available(loggedIn) {
		if c == cmd {
			return true
		}
	}
	return false
}

// runREPL starts a simple read–eval–print loop for the I Care CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The accepted commands depend on whether the
// user is signed in; anything else is reported back. The loop exits on EOF
// or when the user types "exit" or "quit".
//
// Handler errors are not fatal: handlers report them to the user and the
// loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("icare %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		if cmd == "quit" {
			cmd = "exit"
		}

		loggedIn := a.isLoggedIn()
		if !allowed(loggedIn, cmd) {
			printlnFn("Unknown command:", cmd, "(type 'help' for commands)")
			continue
		}

		switch cmd {
		case "help":
			printlnFn("Available commands:", strings.Join(available(loggedIn), ", "))

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "image":
			if len(args) == 0 {
				printlnFn("Usage: image <path>")
				continue
			}
			_ = a.Image(ctx, strings.Join(args, " "))

		case "upload":
			_ = a.Upload(ctx)

		case "status":
			_ = a.Status(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit":
			printlnFn("Bye!")
			return
		}
	}
}
