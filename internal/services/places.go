package services

import (
	"context"
	"math"
	"strings"

	"github.com/ariawaludin/smarttourism/internal/models"
	"github.com/ariawaludin/smarttourism/internal/repositories/places"
)

// destinations feeds the maps and explore screens.
var destinations = []models.Destination{
	{ID: "dest1", Name: "Kuta Beach", Location: "Bali, Indonesia", Rating: 4.7, ReviewCount: 1234, Lat: -8.7184, Lng: 115.1686, Type: models.DestinationAttraction},
	{ID: "dest2", Name: "Ubud Rice Terraces", Location: "Bali, Indonesia", Rating: 4.9, ReviewCount: 876, Lat: -8.5189, Lng: 115.2773, Type: models.DestinationAttraction},
	{ID: "hotel1", Name: "Grand Hyatt Bali", Location: "Nusa Dua, Bali", Rating: 4.8, ReviewCount: 1569, Lat: -8.7979, Lng: 115.2318, Type: models.DestinationHotel},
	{ID: "rest1", Name: "Warung Made", Location: "Seminyak, Bali", Rating: 4.5, ReviewCount: 985, Lat: -8.6944, Lng: 115.1603, Type: models.DestinationRestaurant},
	{ID: "jkt-hotel1", Name: "Hotel Indonesia", Location: "Jakarta", Lat: -6.1939, Lng: 106.8208, Type: models.DestinationHotel},
	{ID: "jkt-rest1", Name: "Plaza Indonesia", Location: "Jakarta", Lat: -6.1936, Lng: 106.8205, Type: models.DestinationRestaurant},
	{ID: "jkt-attr1", Name: "Monas", Location: "Jakarta", Lat: -6.1754, Lng: 106.8272, Type: models.DestinationAttraction},
	{ID: "jkt-act1", Name: "Ancol", Location: "Jakarta", Lat: -6.1256, Lng: 106.8364, Type: models.DestinationActivity},
	{ID: "jkt-act2", Name: "Dufan", Location: "Jakarta", Lat: -6.1259, Lng: 106.8365, Type: models.DestinationActivity},
	{ID: "jkt-rest2", Name: "Sate Senayan", Location: "Jakarta", Lat: -6.2246, Lng: 106.8025, Type: models.DestinationRestaurant},
	{ID: "jkt-hotel2", Name: "Hotel Mulia", Location: "Jakarta", Lat: -6.2185, Lng: 106.8017, Type: models.DestinationHotel},
}

// PlaceService serves the list, maps and explore screens.
type PlaceService struct {
	repo places.Repository
}

func NewPlaceService(repo places.Repository) *PlaceService {
	return &PlaceService{repo: repo}
}

func (s *PlaceService) List(ctx context.Context) ([]models.Place, error) {
	return s.repo.List(ctx)
}

// Add stores a new place. Only the name is required.
func (s *PlaceService) Add(ctx context.Context, p models.Place) (*models.Place, error) {
	if blank(p.Name) {
		return nil, &ValidationError{Fields: []string{"name"}}
	}
	p.Name = strings.TrimSpace(p.Name)
	return s.repo.Insert(ctx, &p)
}

// Destinations returns the catalogue filtered by type; "" returns everything.
func (s *PlaceService) Destinations(t models.DestinationType) []models.Destination {
	out := make([]models.Destination, 0, len(destinations))
	for _, d := range destinations {
		if t == "" || d.Type == t {
			out = append(out, d)
		}
	}
	return out
}

// Nearest returns the destination closest to (lat, lng) and its distance in km.
func (s *PlaceService) Nearest(lat, lng float64) (models.Destination, float64) {
	var (
		best     models.Destination
		bestDist = math.Inf(1)
	)
	for _, d := range destinations {
		if dist := haversineKm(lat, lng, d.Lat, d.Lng); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best, bestDist
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
