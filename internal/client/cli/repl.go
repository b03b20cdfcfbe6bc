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
	Whoami(ctx context.Context) error
	Styles(ctx context.Context) error
	Generate(ctx context.Context) error
	Gallery(ctx context.Context) error
	Delete(ctx context.Context) error
	Redeem(ctx context.Context) error
	Chat(ctx context.Context) error
	Crop(ctx context.Context) error
	Watermark(ctx context.Context) error
	QR(ctx context.Context) error
	SOP(ctx context.Context) error
	Certificate(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the portrait studio CLI.
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
//	  - register       — create an account
//	  - login          — authenticate with account number and password
//	  - styles         — browse the style catalog
//	  - sop            — download the photo session guide
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - generate       — create a styled portrait from a photo
//	  - gallery | g    — list saved portraits
//	  - delete         — remove a portrait from the gallery
//	  - redeem         — activate a premium license code
//	  - chat           — ask the style advisor
//	  - crop           — crop a photo to a social-media preset
//	  - watermark      — stamp a caption onto a photo
//	  - qr             — render a QR code for a text or URL
//	  - whoami         — show the current account
//	  - cert           — download the membership certificate
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ps> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: generate, (g)allery, delete, redeem, chat, crop, watermark, qr, styles, whoami, cert, sop, logout, exit")
			} else {
				printlnFn("Available commands: register, login, styles, sop, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "styles":
			_ = a.Styles(ctx)

		case "generate":
			_ = a.Generate(ctx)

		case "g", "gallery":
			_ = a.Gallery(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "redeem":
			_ = a.Redeem(ctx)

		case "chat":
			_ = a.Chat(ctx)

		case "crop":
			_ = a.Crop(ctx)

		case "watermark":
			_ = a.Watermark(ctx)

		case "qr":
			_ = a.QR(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "sop":
			_ = a.SOP(ctx)

		case "cert":
			_ = a.Certificate(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
