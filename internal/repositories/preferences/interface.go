// Package preferences persists typed key-value settings.
package preferences

import (
	"context"

	"github.com/ariawaludin/smarttourism/internal/models"
)

// Repository stores preference rows. Get returns (nil, nil) for an absent key.
type Repository interface {
	Get(ctx context.Context, key string) (*models.Preference, error)
	Set(ctx context.Context, pref models.Preference) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]models.Preference, error)
	Clear(ctx context.Context) error
}
