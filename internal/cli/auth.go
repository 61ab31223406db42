package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/models"
	"github.com/ariawaludin/smarttourism/internal/navigation"
	"github.com/ariawaludin/smarttourism/internal/otp"
)

// getSimpleText, getTextWithDefault and getPassword point at the
// interactive input helpers and are swapped in tests.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	getPassword        = GetPassword
)

// cancelWord aborts the code prompt.
const cancelWord = "cancel"

// ErrNotHere is returned by actions started from the wrong screen.
var ErrNotHere = errors.New("not available on this screen")

// Register opens the registration screen, reads the form and walks it
// through the OTP step. The account exists only after the code matched.
func (a *App) Register(ctx context.Context) error {
	if !a.sessions.IsLoggedIn(ctx) {
		a.recoverLostSession(ctx)
	}
	if err := a.open(navigation.Register); err != nil {
		return err
	}

	form, err := a.readRegistrationForm()
	if err != nil {
		return err
	}
	a.draft = form
	a.draft.Password = ""

	flow := otp.NewFlow(a.accounts,
		otp.WithPresenter(otp.PresenterFunc(func(_ context.Context, phone, code string) {
			printlnFn(fmt.Sprintf("Simulated SMS to %s: your verification code is %s", phone, code))
		})),
		otp.WithLimiter(a.limiter),
		otp.WithPrefill(a.config.OTPPrefill),
		otp.WithLogger(a.logger),
	)
	defer flow.Dismiss()

	if err := flow.Submit(form); err != nil {
		return err
	}
	challenge, err := flow.Challenge(ctx)
	if err != nil {
		return err
	}

	for {
		input, err := getTextWithDefault(a.reader, "Enter the 6 digit code ('cancel' to stop)", challenge.Input, os.Stdout)
		if err != nil {
			return err
		}
		if strings.EqualFold(input, cancelWord) {
			printlnFn("Registration cancelled")
			return nil
		}

		user, err := flow.Verify(ctx, input)
		switch {
		case err == nil:
			a.draft = models.RegistrationForm{}
			printlnFn(fmt.Sprintf("Registration successful, welcome %s! Please log in.", user.Username))
			return a.nav.Navigate(navigation.Auth, navigation.PopUpTo(navigation.Auth, true))
		case errors.Is(err, otp.ErrOtpMismatch):
			toast(err)
			challenge.Input = ""
		default:
			return err
		}
	}
}

func (a *App) readRegistrationForm() (models.RegistrationForm, error) {
	var form models.RegistrationForm
	for _, f := range []struct {
		prompt string
		dst    *string
		def    string
	}{
		{"First name", &form.FirstName, a.draft.FirstName},
		{"Last name", &form.LastName, a.draft.LastName},
		{"Email", &form.Email, a.draft.Email},
		{"Username", &form.Username, a.draft.Username},
		{"Phone", &form.Phone, a.draft.Phone},
	} {
		v, err := getTextWithDefault(a.reader, f.prompt, f.def, os.Stdout)
		if err != nil {
			return form, err
		}
		*f.dst = v
	}

	pw, err := getPassword(os.Stdout)
	if err != nil {
		return form, err
	}
	form.Password = string(pw)
	common.WipeByteArray(pw)
	return form, nil
}

// Login checks the credentials, starts a session and opens home.
func (a *App) Login(ctx context.Context) error {
	if !a.sessions.IsLoggedIn(ctx) {
		a.recoverLostSession(ctx)
	}
	if a.nav.Current() != navigation.Auth {
		if err := a.nav.Navigate(navigation.Auth, navigation.PopUpTo(navigation.Auth, true)); err != nil {
			return err
		}
	}

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	pw, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	password := string(pw)
	common.WipeByteArray(pw)

	user, err := a.accounts.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.sessions.Start(ctx, user); err != nil {
		return err
	}

	printlnFn("Login successful")
	return a.nav.Navigate(navigation.Home, navigation.PopUpTo(navigation.Auth, true))
}

// Logout ends the session and returns to the login screen. It is offered on
// the profile and settings screens.
func (a *App) Logout(ctx context.Context) error {
	if err := navigation.Logout(a.nav); err != nil {
		if errors.Is(err, navigation.ErrTransitionNotAllowed) {
			return fmt.Errorf("%w: open profile or settings to log out", ErrNotHere)
		}
		return err
	}
	a.sessions.End(ctx)
	printlnFn("Logged out")
	return nil
}
