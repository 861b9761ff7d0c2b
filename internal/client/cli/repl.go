package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/signlink/internal/client/client"
	"github.com/dmitrijs2005/signlink/internal/client/navigation"
)

// execIface defines the command surface the REPL needs. The real App type
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	Subtree() navigation.Subtree
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Translate(ctx context.Context, text string) error
	Upload(ctx context.Context, path string) error
	SetLanguage(ctx context.Context, language string) error
	Chats(ctx context.Context) error
	Search(ctx context.Context, query string) error
	WhoAmI(ctx context.Context) error
	EditProfile(ctx context.Context) error
}

type command struct {
	name  string
	route string
	usage string
	run   func(ctx context.Context, a execIface, args string) error
}

// commands is ordered the way help prints it.
var commands = []command{
	{name: "login", route: navigation.RouteLogin, usage: "login               sign in with email and password",
		run: func(ctx context.Context, a execIface, _ string) error { return a.Login(ctx) }},
	{name: "signup", route: navigation.RouteSignup, usage: "signup              create an account",
		run: func(ctx context.Context, a execIface, _ string) error { return a.Signup(ctx) }},
	{name: "translate", route: navigation.RouteMain, usage: "translate <text>    translate a message",
		run: func(ctx context.Context, a execIface, args string) error { return a.Translate(ctx, args) }},
	{name: "language", route: navigation.RouteMain, usage: "language <name>     set the translation language",
		run: func(ctx context.Context, a execIface, args string) error { return a.SetLanguage(ctx, args) }},
	{name: "upload", route: navigation.RouteMain, usage: "upload <path>       send a video for translation",
		run: func(ctx context.Context, a execIface, args string) error { return a.Upload(ctx, args) }},
	{name: "chats", route: navigation.RouteMessages, usage: "chats               list pinned and recent chats",
		run: func(ctx context.Context, a execIface, _ string) error { return a.Chats(ctx) }},
	{name: "search", route: navigation.RouteSearch, usage: "search <query>      search people",
		run: func(ctx context.Context, a execIface, args string) error { return a.Search(ctx, args) }},
	{name: "whoami", route: navigation.RouteProfile, usage: "whoami              show the signed-in user",
		run: func(ctx context.Context, a execIface, _ string) error { return a.WhoAmI(ctx) }},
	{name: "profile", route: navigation.RouteProfile, usage: "profile             edit your profile",
		run: func(ctx context.Context, a execIface, _ string) error { return a.EditProfile(ctx) }},
	{name: "logout", route: navigation.RouteProfile, usage: "logout              sign out",
		run: func(ctx context.Context, a execIface, _ string) error { return a.Logout(ctx) }},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printHelp(w io.Writer, sub navigation.Subtree) {
	fmt.Fprintln(w, "Available commands:")
	for _, c := range commands {
		if sub.Allows(c.route) {
			fmt.Fprintln(w, "  "+c.usage)
		}
	}
	fmt.Fprintln(w, "  help                show this list")
	fmt.Fprintln(w, "  exit | quit         leave the program")
}

// runREPL reads commands line by line and dispatches the ones that belong to
// the subtree currently selected for the auth status. Handler errors are
// shown as the message of their failure class. The loop exits on EOF, on
// "exit"/"quit" or when ctx is done.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		sub := a.Subtree()
		fmt.Fprintf(w, "signlink (%s)> ", sub)

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}

		name, args, _ := strings.Cut(line, " ")
		args = strings.TrimSpace(args)

		switch name {
		case "":
			continue
		case "help":
			printHelp(w, sub)
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		cmd, ok := lookupCommand(name)
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if !sub.Allows(cmd.route) {
			fmt.Fprintf(w, "%q is not available right now, type 'help' for commands\n", name)
			continue
		}

		if err := cmd.run(ctx, a, args); err != nil {
			fmt.Fprintln(w, client.UserMessage(err))
		}
	}
}
