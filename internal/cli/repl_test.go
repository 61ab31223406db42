package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/cryptox"
	"github.com/ariawaludin/smarttourism/internal/navigation"
	"github.com/ariawaludin/smarttourism/internal/otp"
	"github.com/ariawaludin/smarttourism/internal/services"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	backs    int
	err      error

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Go(_ context.Context, r string) error { return f.record("go " + r) }
func (f *fakeExec) Back(context.Context) bool {
	f.calls = append(f.calls, "back")
	f.backs--
	return f.backs >= 0
}
func (f *fakeExec) Profile(context.Context) error     { return f.record("profile") }
func (f *fakeExec) EditProfile(context.Context) error { return f.record("editprofile") }
func (f *fakeExec) Settings(context.Context) error    { return f.record("settings") }
func (f *fakeExec) Menu(context.Context) error        { return f.record("menu") }
func (f *fakeExec) ClearSettings(context.Context) error {
	return f.record("clearsettings")
}
func (f *fakeExec) Set(_ context.Context, n, v string) error {
	return f.record("set " + n + " " + v)
}
func (f *fakeExec) Places(context.Context) error   { return f.record("places") }
func (f *fakeExec) AddPlace(context.Context) error { return f.record("addplace") }
func (f *fakeExec) Destinations(_ context.Context, k string) error {
	return f.record("destinations " + k)
}
func (f *fakeExec) Nearest(_ context.Context, lat, lng string) error {
	return f.record("nearest " + lat + " " + lng)
}
func (f *fakeExec) Photo(_ context.Context, p string) error { return f.record("photo " + p) }
func (f *fakeExec) Upload(context.Context) error            { return f.record("upload") }
func (f *fakeExec) Quotes(context.Context) error            { return f.record("quotes") }

func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func run(exec execIface, lines ...string) {
	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "(test)" }, sc)
}

func TestRunREPL_LoggedOutOnlyAllowsAuth(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{}

	run(exec, "help", "places", "register", "exit", "login")

	assert.Equal(t, []string{"register"}, exec.calls)
	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, "Unknown command: places")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_LoggedInCommands(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{}

	run(exec,
		"login",
		"help",
		"go maps",
		"menu",
		"profile",
		"editprofile",
		"settings",
		"set darkmode on",
		"clearsettings",
		"places",
		"addplace",
		"destinations hotel",
		"destinations",
		"nearest -6.17 106.82",
		"photo pic.jpg",
		"upload",
		"quotes",
		"",
		"foobar",
		"logout",
		"quit",
	)

	assert.Equal(t, []string{
		"login", "go maps", "menu", "profile", "editprofile", "settings", "set darkmode on",
		"clearsettings", "places", "addplace", "destinations hotel", "destinations ", "nearest -6.17 106.82",
		"photo pic.jpg", "upload", "quotes", "logout",
	}, exec.calls)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "st (test)> ")
}

func TestRunREPL_UsageMessages(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{loggedIn: true}

	run(exec, "go", "set darkmode", "nearest 1", "photo", "exit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: go <screen>")
	assert.Contains(t, *out, "Usage: set <darkmode|notifications|location> <on|off>")
	assert.Contains(t, *out, "Usage: nearest <lat> <lng>")
	assert.Contains(t, *out, "Usage: photo <file>")
}

func TestRunREPL_BackOnLastScreenExits(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{backs: 1}

	run(exec, "back", "back", "register")

	assert.Equal(t, []string{"back", "back"}, exec.calls)
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_ErrorsAreShownAndLoopContinues(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{err: services.ErrInvalidCredentials}

	run(exec, "register", "register", "exit")

	assert.Len(t, exec.calls, 2)
	assert.Equal(t, 2, countOf(*out, "invalid username or password"))
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrint(t)
	exec := &fakeExec{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runREPL(ctx, exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("register\n")))
	assert.Empty(t, exec.calls)
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&services.ValidationError{Fields: []string{"email"}}, "please fill all fields: email"},
		{services.ErrEmptyInput, "username and password cannot be empty"},
		{otp.ErrOtpMismatch, "invalid OTP code"},
		{cryptox.ErrPasswordTooLong, "password must be at most 72 bytes"},
		{fmt.Errorf("insert: %w", common.ErrDuplicateUsername), "username already taken"},
		{fmt.Errorf("%w: disk", common.ErrStorage), "storage unavailable, please try again"},
		{fmt.Errorf("%w: timeout", common.ErrNetwork), "network error: " + common.ErrNetwork.Error() + ": timeout"},
		{fmt.Errorf("%w: home -> register", navigation.ErrTransitionNotAllowed), "that screen cannot be opened from here"},
		{navigation.ErrUnknownRoute, "no such screen"},
		{errors.New("boom"), "error: boom"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, userMessage(tc.err))
	}
}

func countOf(lines []string, s string) int {
	n := 0
	for _, l := range lines {
		if l == s {
			n++
		}
	}
	return n
}
