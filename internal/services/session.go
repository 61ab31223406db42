package services

import (
	"context"

	"github.com/ariawaludin/smarttourism/internal/logging"
	"github.com/ariawaludin/smarttourism/internal/models"
	"github.com/ariawaludin/smarttourism/internal/preferences"
	"github.com/ariawaludin/smarttourism/internal/session"
)

// SessionService keeps the logged-in state in the preference store.
type SessionService struct {
	prefs  *preferences.Store
	tokens *session.Manager
	logger logging.Logger
}

func NewSessionService(prefs *preferences.Store, tokens *session.Manager, logger logging.Logger) *SessionService {
	return &SessionService{prefs: prefs, tokens: tokens, logger: logger.With("module", "session")}
}

// Start records user as logged in.
func (s *SessionService) Start(ctx context.Context, user *models.User) error {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return err
	}

	s.prefs.SaveUser(user.Username)
	s.prefs.SetString(preferences.KeySessionToken, token)
	s.prefs.SetLoggedIn(true)
	s.logger.Info(ctx, "session started", "username", user.Username)
	return nil
}

// End logs the current user out. Profile data and settings are kept.
func (s *SessionService) End(ctx context.Context) {
	s.prefs.SetLoggedIn(false)
	s.prefs.Remove(preferences.KeySessionToken)
	s.logger.Info(ctx, "session ended", "username", s.prefs.User())
}

// IsLoggedIn requires the flag and a valid token issued for the saved user.
func (s *SessionService) IsLoggedIn(ctx context.Context) bool {
	if !s.prefs.IsLoggedIn() {
		return false
	}
	claims, err := s.tokens.Parse(s.prefs.GetString(preferences.KeySessionToken, ""))
	if err != nil {
		s.logger.Warn(ctx, "stored session rejected", "error", err)
		return false
	}
	return claims.Username == s.prefs.User()
}

// Username returns the user of the current session, or "".
func (s *SessionService) Username() string {
	return s.prefs.User()
}
