// Package accounts stores user records in the local relational database.
package accounts

import (
	"context"

	"github.com/ariawaludin/smarttourism/internal/models"
)

// Repository is the account store.
//
// Lookups return common.ErrNotFound when nothing matches. Failures of the
// database itself are wrapped with common.ErrStorage.
type Repository interface {
	// Insert stores user and fills in its ID. A taken username fails with
	// common.ErrDuplicateUsername.
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	// FindByUsername returns the oldest record with exactly this username.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// FindByUsernameAndPassword returns the oldest record whose username
	// matches and whose stored credential verifies against password.
	FindByUsernameAndPassword(ctx context.Context, username, password string) (*models.User, error)
}
