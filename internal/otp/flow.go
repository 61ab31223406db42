// Package otp drives the registration form through its one-time code step.
//
// The code is a placeholder: it is shown to the user through a Presenter
// and, with prefill on, already typed in. An account is created only when
// the entered code matches.
package otp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ariawaludin/smarttourism/internal/logging"
	"github.com/ariawaludin/smarttourism/internal/models"
)

var (
	ErrOtpMismatch     = errors.New("invalid OTP code")
	ErrTooManyAttempts = errors.New("too many attempts, try again later")
	ErrInvalidState    = errors.New("operation not allowed in current registration state")
)

type State int

const (
	Idle State = iota
	FormValid
	AwaitingOtp
	Verified
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FormValid:
		return "form_valid"
	case AwaitingOtp:
		return "awaiting_otp"
	case Verified:
		return "verified"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Registrar validates forms and creates accounts.
type Registrar interface {
	Validate(form models.RegistrationForm) error
	Register(ctx context.Context, form models.RegistrationForm) (*models.User, error)
}

// Presenter delivers a code to the user.
type Presenter interface {
	PresentCode(ctx context.Context, phone, code string)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ctx context.Context, phone, code string)

func (f PresenterFunc) PresentCode(ctx context.Context, phone, code string) {
	f(ctx, phone, code)
}

// Challenge is the code dialog as the user sees it.
type Challenge struct {
	Code  string
	Input string
	Error string
}

type Option func(*Flow)

func WithPresenter(p Presenter) Option {
	return func(f *Flow) { f.presenter = p }
}

func WithLimiter(l AttemptLimiter) Option {
	return func(f *Flow) { f.limiter = l }
}

// WithPrefill controls whether the input starts out holding the code.
func WithPrefill(on bool) Option {
	return func(f *Flow) { f.prefill = on }
}

func WithLogger(l logging.Logger) Option {
	return func(f *Flow) { f.logger = l.With("module", "otp") }
}

func withGenerator(g func() (string, error)) Option {
	return func(f *Flow) { f.generate = g }
}

// Flow is one registration attempt. It is safe for concurrent use.
type Flow struct {
	accounts  Registrar
	presenter Presenter
	limiter   AttemptLimiter
	prefill   bool
	generate  func() (string, error)
	logger    logging.Logger

	mu        sync.Mutex
	state     State
	form      models.RegistrationForm
	challenge *Challenge
}

// NewFlow returns a flow in Idle with prefill on.
func NewFlow(accounts Registrar, opts ...Option) *Flow {
	f := &Flow{
		accounts: accounts,
		prefill:  true,
		generate: GenerateCode,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Form returns the last submitted form so the screen can show it again.
func (f *Flow) Form() models.RegistrationForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// Current returns a copy of the open challenge, if any.
func (f *Flow) Current() (Challenge, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.challenge == nil {
		return Challenge{}, false
	}
	return *f.challenge, true
}

// Submit validates form. A blank field keeps the flow in Idle.
func (f *Flow) Submit(form models.RegistrationForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Idle && f.state != FormValid {
		return ErrInvalidState
	}

	f.form = form
	if err := f.accounts.Validate(form); err != nil {
		f.state = Idle
		return err
	}
	f.state = FormValid
	return nil
}

// Challenge issues a fresh code and presents it.
func (f *Flow) Challenge(ctx context.Context) (Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FormValid {
		return Challenge{}, ErrInvalidState
	}

	code, err := f.generate()
	if err != nil {
		return Challenge{}, err
	}

	c := &Challenge{Code: code}
	if f.prefill {
		c.Input = code
	}
	f.challenge = c
	f.state = AwaitingOtp

	if f.presenter != nil {
		f.presenter.PresentCode(ctx, f.form.Phone, code)
	}
	f.logger.Debug(ctx, "otp challenge issued", "username", f.form.Username)
	return *c, nil
}

// Verify compares input with the code and registers the account on a match.
// On any failure the flow stays in AwaitingOtp.
func (f *Flow) Verify(ctx context.Context, input string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != AwaitingOtp || f.challenge == nil {
		return nil, ErrInvalidState
	}

	f.challenge.Input = input
	if f.limiter != nil && !f.limiter.Allow(ctx, f.form.Username) {
		f.challenge.Error = ErrTooManyAttempts.Error()
		f.logger.Warn(ctx, "otp attempts exhausted", "username", f.form.Username)
		return nil, ErrTooManyAttempts
	}

	if input != f.challenge.Code {
		f.challenge.Error = ErrOtpMismatch.Error()
		return nil, ErrOtpMismatch
	}

	user, err := f.accounts.Register(ctx, f.form)
	if err != nil {
		f.challenge.Error = err.Error()
		return nil, err
	}

	f.challenge = nil
	f.state = Verified
	return user, nil
}

// Dismiss drops the form and any open challenge.
func (f *Flow) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = Idle
	f.form = models.RegistrationForm{}
	f.challenge = nil
}
