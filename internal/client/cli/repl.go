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
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	FilterType(ctx context.Context, args []string) error
	FilterCategory(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Categories(ctx context.Context) error
	Theme(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on scanner EOF or when the
// user types "exit" or "quit". Errors returned by handlers are ignored here;
// handlers print their own messages, which keeps the loop resilient.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("revume %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show, add, edit, delete, search, type, category, sort, categories, refresh, theme, logout, exit")
			} else {
				printlnFn("Available commands: register, login, theme, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx, args)

		case "delete", "del":
			_ = a.Delete(ctx, args)

		case "search":
			_ = a.Search(ctx, args)

		case "type":
			_ = a.FilterType(ctx, args)

		case "category", "cat":
			_ = a.FilterCategory(ctx, args)

		case "sort":
			_ = a.Sort(ctx, args)

		case "categories", "cats":
			_ = a.Categories(ctx)

		case "theme":
			_ = a.Theme(ctx, args)

		case "refresh":
			_ = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// root prints the banner and hands control to the REPL.
func (a *App) root(ctx context.Context) {
	printlnFn("Welcome to Revume (type 'help' for commands)")
	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.getStatus, scanner)
}
