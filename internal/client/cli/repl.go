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

// execIface defines the command surface the REPL needs. The real App
// satisfies it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profiles(ctx context.Context) error
	Rename(ctx context.Context) error
	Feed(ctx context.Context) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// Command errors are printed and the loop goes on. It returns on EOF, on
// "exit"/"quit" or when ctx is cancelled.
//
//	Signed out: help, signup (register), signin (login), status, exit
//	Signed in:  help, whoami, profiles, rename, feed, status, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ps%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profiles, rename, feed, status, logout, exit")
			} else {
				printlnFn("Available commands: signup, signin, status, exit")
			}

		case "signup", "register":
			cmdErr = a.SignUp(ctx)

		case "signin", "login":
			cmdErr = a.SignIn(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "profiles":
			cmdErr = a.Profiles(ctx)

		case "rename":
			cmdErr = a.Rename(ctx)

		case "feed":
			cmdErr = a.Feed(ctx)

		case "status":
			cmdErr = a.Status(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}
