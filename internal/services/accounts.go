// Package services holds the application services the screens talk to:
// accounts, sessions, places and the photo album.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ariawaludin/smarttourism/internal/common"
	"github.com/ariawaludin/smarttourism/internal/cryptox"
	"github.com/ariawaludin/smarttourism/internal/logging"
	"github.com/ariawaludin/smarttourism/internal/models"
	"github.com/ariawaludin/smarttourism/internal/repositories/accounts"
)

// AccountService registers and authenticates users.
//
// Contract:
//   - Validate: report blank required fields, or a password the hasher
//     cannot take, without touching storage.
//   - Register: validate, encode the password and insert the account.
//     Callers gate this behind a confirmed OTP challenge.
//   - Login: reject blank input before storage, then match credentials.
type AccountService interface {
	Validate(form models.RegistrationForm) error
	Register(ctx context.Context, form models.RegistrationForm) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
}

type accountService struct {
	repo   accounts.Repository
	hasher cryptox.PasswordHasher
	logger logging.Logger
}

func NewAccountService(repo accounts.Repository, hasher cryptox.PasswordHasher, logger logging.Logger) AccountService {
	return &accountService{repo: repo, hasher: hasher, logger: logger.With("module", "accounts")}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (s *accountService) Validate(form models.RegistrationForm) error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"first name", form.FirstName},
		{"last name", form.LastName},
		{"email", form.Email},
		{"username", form.Username},
		{"password", form.Password},
		{"phone", form.Phone},
	} {
		if blank(f.value) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return cryptox.CheckPassword(s.hasher, form.Password)
}

func (s *accountService) Register(ctx context.Context, form models.RegistrationForm) (*models.User, error) {
	if err := s.Validate(form); err != nil {
		return nil, err
	}

	encoded, err := s.hasher.Hash(form.Password)
	if err != nil {
		return nil, fmt.Errorf("encode password: %w", err)
	}

	user, err := s.repo.Insert(ctx, &models.User{Username: form.Username, Password: encoded})
	if err != nil {
		s.logger.Warn(ctx, "registration failed", "username", form.Username, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "account created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *accountService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if blank(username) || blank(password) {
		return nil, ErrEmptyInput
	}

	user, err := s.repo.FindByUsernameAndPassword(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Info(ctx, "login rejected", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}
