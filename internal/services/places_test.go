package services

import (
	"context"
	"testing"

	"github.com/ariawaludin/smarttourism/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlaces struct {
	rows []models.Place
}

func (f *fakePlaces) Insert(ctx context.Context, p *models.Place) (*models.Place, error) {
	p.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *p)
	return p, nil
}

func (f *fakePlaces) List(ctx context.Context) ([]models.Place, error) {
	return f.rows, nil
}

func TestPlaceService_AddAndList(t *testing.T) {
	svc := NewPlaceService(&fakePlaces{})
	ctx := context.Background()

	_, err := svc.Add(ctx, models.Place{Name: "  "})
	require.ErrorIs(t, err, ErrValidation)

	p, err := svc.Add(ctx, models.Place{Name: " Pantai Ancol ", Location: "Jakarta Utara"})
	require.NoError(t, err)
	assert.Equal(t, "Pantai Ancol", p.Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPlaceService_Destinations(t *testing.T) {
	svc := NewPlaceService(&fakePlaces{})

	assert.Len(t, svc.Destinations(""), len(destinations))

	hotels := svc.Destinations(models.DestinationHotel)
	require.NotEmpty(t, hotels)
	for _, d := range hotels {
		assert.Equal(t, models.DestinationHotel, d.Type)
	}
	assert.Empty(t, svc.Destinations("spa"))
}

func TestPlaceService_Nearest(t *testing.T) {
	svc := NewPlaceService(&fakePlaces{})

	d, km := svc.Nearest(-8.7190, 115.1690)
	assert.Equal(t, "Kuta Beach", d.Name)
	assert.Less(t, km, 1.0)

	d, _ = svc.Nearest(-6.1750, 106.8270)
	assert.Equal(t, "Monas", d.Name)
}
