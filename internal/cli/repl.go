package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/cryptox"
	"github.com/ariawaludin/smarttourism/internal/navigation"
	"github.com/ariawaludin/smarttourism/internal/otp"
	"github.com/ariawaludin/smarttourism/internal/services"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it; tests
// use a stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Go(ctx context.Context, route string) error
	Back(ctx context.Context) bool

	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Menu(ctx context.Context) error
	Settings(ctx context.Context) error
	Set(ctx context.Context, name, value string) error
	ClearSettings(ctx context.Context) error
	Places(ctx context.Context) error
	AddPlace(ctx context.Context) error
	Destinations(ctx context.Context, kind string) error
	Nearest(ctx context.Context, lat, lng string) error
	Photo(ctx context.Context, path string) error
	Upload(ctx context.Context) error
	Quotes(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, back, exit"
	helpLoggedIn  = "Available commands: go <screen>, back, menu, profile, editprofile, settings, " +
		"set <darkmode|notifications|location> <on|off>, clearsettings, places, addplace, " +
		"destinations [hotel|restaurant|attraction|activity], nearest <lat> <lng>, " +
		"photo <file>, upload, quotes, logout, exit"
)

// runREPL reads commands from scanner until EOF, "exit"/"quit", or a back
// press on the last screen. Command errors are shown as one line and the
// loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("st %s> ", statusFn()))
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
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "back":
			if !a.Back(ctx) {
				printlnFn("Bye!")
				return
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "register":
				toast(a.Register(ctx))
			case "login":
				toast(a.Login(ctx))
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <screen>")
				continue
			}
			toast(a.Go(ctx, args[0]))
		case "menu":
			toast(a.Menu(ctx))
		case "profile":
			toast(a.Profile(ctx))
		case "editprofile":
			toast(a.EditProfile(ctx))
		case "settings":
			toast(a.Settings(ctx))
		case "set":
			if len(args) != 2 {
				printlnFn("Usage: set <darkmode|notifications|location> <on|off>")
				continue
			}
			toast(a.Set(ctx, args[0], args[1]))
		case "clearsettings":
			toast(a.ClearSettings(ctx))
		case "places":
			toast(a.Places(ctx))
		case "addplace":
			toast(a.AddPlace(ctx))
		case "destinations":
			kind := ""
			if len(args) > 0 {
				kind = args[0]
			}
			toast(a.Destinations(ctx, kind))
		case "nearest":
			if len(args) != 2 {
				printlnFn("Usage: nearest <lat> <lng>")
				continue
			}
			toast(a.Nearest(ctx, args[0], args[1]))
		case "photo":
			if len(args) != 1 {
				printlnFn("Usage: photo <file>")
				continue
			}
			toast(a.Photo(ctx, args[0]))
		case "upload":
			toast(a.Upload(ctx))
		case "quotes":
			toast(a.Quotes(ctx))
		case "logout":
			toast(a.Logout(ctx))
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// toast prints err as a single user-facing line.
func toast(err error) {
	if err == nil {
		return
	}
	printlnFn(userMessage(err))
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrEmptyInput),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, otp.ErrOtpMismatch),
		errors.Is(err, otp.ErrTooManyAttempts),
		errors.Is(err, cryptox.ErrPasswordTooLong):
		return err.Error()
	case errors.Is(err, common.ErrDuplicateUsername):
		return "username already taken"
	case errors.Is(err, common.ErrStorage):
		return "storage unavailable, please try again"
	case errors.Is(err, common.ErrNetwork):
		return "network error: " + err.Error()
	case errors.Is(err, navigation.ErrTransitionNotAllowed):
		return "that screen cannot be opened from here"
	case errors.Is(err, navigation.ErrUnknownRoute):
		return "no such screen"
	default:
		return "error: " + err.Error()
	}
}
