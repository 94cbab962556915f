package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
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
	Otp(ctx context.Context) error
	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
	Upload(ctx context.Context) error
	Jobs(ctx context.Context) error
	WatchJob(ctx context.Context, arg string) error
	Results(ctx context.Context, arg string) error
	DeleteJob(ctx context.Context, arg string) error
	Exam(ctx context.Context, arg string) error
	Cards(ctx context.Context, arg string) error
	Result(ctx context.Context, arg string) error
	Top(ctx context.Context, arg string) error
}

// runREPL starts a simple read-eval-print loop for the Sisimpur CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - signup         — create an account
//	  - login          — authenticate with email and password
//	  - otp            — authenticate with a one-time email code
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - upload         — submit a document for question generation
//	  - jobs           — list processing jobs
//	  - watch <id>     — follow a job until it finishes
//	  - results <id>   — show a job's generated questions
//	  - delete <id>    — delete a job
//	  - exam <id>      — take an exam over a job's questions
//	  - cards <id>     — flip flashcards over a job's questions
//	  - result <sid>   — show an exam session's scorecard
//	  - top [window]   — show the leaderboard (all, week, month, year)
//	  - whoami         — show the signed-in account
//	  - logout         — log out
//	  - exit | quit    — leave the program
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	report := func(err error) {
		if err != nil {
			printlnFn("Error:", err)
		}
	}

	for {
		fmt.Printf("sisimpur %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: upload, jobs, watch, results, delete, exam, cards, result, top, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, otp, exit")
			}

		case "signup":
			report(a.Signup(ctx))

		case "login":
			report(a.Login(ctx))

		case "otp":
			report(a.Otp(ctx))

		case "whoami":
			report(a.Whoami(ctx))

		case "upload":
			report(a.Upload(ctx))

		case "j", "jobs":
			report(a.Jobs(ctx))

		case "watch":
			report(a.WatchJob(ctx, arg))

		case "results":
			report(a.Results(ctx, arg))

		case "delete":
			report(a.DeleteJob(ctx, arg))

		case "exam":
			report(a.Exam(ctx, arg))

		case "cards":
			report(a.Cards(ctx, arg))

		case "result":
			report(a.Result(ctx, arg))

		case "top":
			report(a.Top(ctx, arg))

		case "logout":
			report(a.Logout(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) getStatus() string {
	p := a.authService.Current()
	if p == nil {
		return ""
	}
	name := p.Username
	if name == "" {
		name = p.Email
	}
	return fmt.Sprintf("(%s) ", name)
}

// Root runs the interactive command loop on stdin.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to Sisimpur CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
