package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/config"
	"github.com/ariawaludin/smarttourism/internal/cryptox"
	"github.com/ariawaludin/smarttourism/internal/dbx"
	"github.com/ariawaludin/smarttourism/internal/logging"
	"github.com/ariawaludin/smarttourism/internal/models"
	"github.com/ariawaludin/smarttourism/internal/navigation"
	"github.com/ariawaludin/smarttourism/internal/otp"
	"github.com/ariawaludin/smarttourism/internal/photos"
	"github.com/ariawaludin/smarttourism/internal/preferences"
	"github.com/ariawaludin/smarttourism/internal/quotes"
	"github.com/ariawaludin/smarttourism/internal/repositories/accounts"
	"github.com/ariawaludin/smarttourism/internal/repositories/places"
	prefrepo "github.com/ariawaludin/smarttourism/internal/repositories/preferences"
	"github.com/ariawaludin/smarttourism/internal/services"
	"github.com/ariawaludin/smarttourism/internal/session"
	"github.com/ariawaludin/smarttourism/internal/storage"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config *config.Config
	logger logging.Logger

	provider *storage.Provider
	redis    *redis.Client

	prefs    *preferences.Store
	settings *preferences.Settings
	accounts services.AccountService
	sessions *services.SessionService
	places   *services.PlaceService
	album    *photos.Album
	quotes   *quotes.Client
	limiter  otp.AttemptLimiter
	nav      *navigation.Navigator

	// draft keeps the last registration form so a failed attempt can be
	// corrected instead of retyped. The password is never kept.
	draft models.RegistrationForm

	reader *bufio.Reader
}

// NewApp wires every component from c. The caller must Close the app.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	a := &App{config: c, logger: logger, reader: bufio.NewReader(os.Stdin)}
	if err := a.wire(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context) error {
	c := a.config
	dialect := dbx.Dialect(c.DatabaseDriver)

	a.provider = storage.NewProvider(dialect, c.DatabaseDSN, a.logger)
	db, err := a.provider.DB(ctx)
	if err != nil {
		return err
	}

	a.prefs, err = preferences.Open(ctx, prefrepo.NewSQLRepository(db, dialect), a.logger)
	if err != nil {
		return err
	}
	a.settings = preferences.NewSettings(a.prefs)

	hasher, err := cryptox.NewPasswordHasher(c.PasswordHasher)
	if err != nil {
		return err
	}
	a.accounts = services.NewAccountService(accounts.NewSQLRepository(db, dialect, hasher), hasher, a.logger)

	secret, err := a.sessionSecret()
	if err != nil {
		return err
	}
	a.sessions = services.NewSessionService(a.prefs, session.NewManager(secret, c.SessionTTL), a.logger)

	a.places = services.NewPlaceService(places.NewSQLRepository(db, dialect))

	var store photos.ObjectStore
	if c.S3Enabled() {
		s3, err := photos.NewS3Store(ctx, photos.S3Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		})
		if err != nil {
			return err
		}
		store = s3
	}
	a.album = photos.NewAlbum(c.PhotosDir, db, dialect, store, a.logger)

	a.quotes = quotes.NewClient(c.QuotesURL, c.HTTPTimeout, a.logger)

	if c.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		a.limiter = otp.NewRedisLimiter(a.redis, c.OTPAttemptWindow, c.OTPMaxAttempts, a.logger)
	} else {
		a.limiter = otp.NewMemoryLimiter(c.OTPAttemptWindow, c.OTPMaxAttempts)
	}

	a.nav, err = navigation.NewNavigator(navigation.DefaultGraph(), navigation.Splash)
	if err != nil {
		return err
	}
	a.nav.Subscribe(func(from, to navigation.Route) {
		a.logger.Debug(context.Background(), "route changed", "from", from, "to", to)
	})

	return nil
}

// sessionSecret returns the configured signing key, or a random one kept in
// the preference store so sessions survive restarts.
func (a *App) sessionSecret() ([]byte, error) {
	if a.config.SessionSecret != "" {
		return []byte(a.config.SessionSecret), nil
	}
	if s := a.prefs.GetString(preferences.KeySessionSecret, ""); s != "" {
		return []byte(s), nil
	}
	s, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	a.prefs.SetString(preferences.KeySessionSecret, s)
	return []byte(s), nil
}

// Run shows the splash screen and then serves commands from stdin until the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(ctx)

	printlnFn("Smart Tourism (type 'help' for commands)")
	if err := navigation.Startup(ctx, a.nav, a.sessions, a.config.SplashDelay); err != nil {
		return err
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(lineReader{a.reader}))
	return nil
}

// lineReader hands the scanner at most one line per Read so the rest of the
// input stays in the shared reader for prompts.
type lineReader struct {
	r *bufio.Reader
}

func (l lineReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := l.r.ReadByte()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		p[n] = b
		n++
		if b == '\n' {
			break
		}
	}
	return n, nil
}

// Close flushes pending preference writes and releases every backend.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.prefs != nil {
		if err := a.prefs.Close(ctx); err != nil && !errors.Is(err, preferences.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
		a.redis = nil
	}
	if a.provider != nil {
		errs = append(errs, a.provider.Close())
		a.provider = nil
	}
	if s, ok := a.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	return errors.Join(errs...)
}

// isLoggedIn reports the session state. A session that ended while a
// logged-in screen was open sends the user back to the login screen.
func (a *App) isLoggedIn() bool {
	ctx := context.Background()
	if a.sessions.IsLoggedIn(ctx) {
		return true
	}
	a.recoverLostSession(ctx)
	return false
}

func (a *App) recoverLostSession(ctx context.Context) {
	if !navigation.RequiresLogin(a.nav.Current()) {
		return
	}
	a.sessions.End(ctx)
	if err := a.nav.Reset(navigation.Auth); err != nil {
		a.logger.Error(ctx, "cannot return to login", "error", err)
		return
	}
	printlnFn("Your session has ended, please log in again")
}

func (a *App) status() string {
	s := string(a.nav.Current())
	if u := a.sessions.Username(); u != "" && a.isLoggedIn() {
		s += " " + u
	}
	return fmt.Sprintf("(%s)", s)
}
