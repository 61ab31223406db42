package models

// Place is a tourist spot in the local list ("wisata").
type Place struct {
	ID          int64
	Name        string
	Description string
	Location    string
}

// DestinationType groups map markers.
type DestinationType string

const (
	DestinationHotel      DestinationType = "hotel"
	DestinationRestaurant DestinationType = "restaurant"
	DestinationAttraction DestinationType = "attraction"
	DestinationActivity   DestinationType = "activity"
)

// Destination is a labelled geo point shown on the map and explore screens.
type Destination struct {
	ID          string
	Name        string
	Location    string
	Rating      float64
	ReviewCount int
	Lat         float64
	Lng         float64
	Type        DestinationType
}
