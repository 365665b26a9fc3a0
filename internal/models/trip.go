package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// TransportMode selects the base travel speed used for trip estimates.
type TransportMode string

const (
	ModeCar       TransportMode = "car"
	ModeMotorbike TransportMode = "motorbike"
	ModeBus       TransportMode = "bus"
	ModeBicycle   TransportMode = "bicycle"
	ModeWalking   TransportMode = "walking"
)

// RoadCondition captures the dominant road quality along a trip. It scales
// both the effective speed and the straight-line-to-road distance inflation.
type RoadCondition string

const (
	RoadSealed RoadCondition = "sealed"
	RoadMixed  RoadCondition = "mixed"
	RoadRough  RoadCondition = "rough"
)

// ValidTransportMode reports whether m is a known transport mode.
func ValidTransportMode(m TransportMode) bool {
	switch m {
	case ModeCar, ModeMotorbike, ModeBus, ModeBicycle, ModeWalking:
		return true
	}
	return false
}

// ValidRoadCondition reports whether c is a known road condition.
func ValidRoadCondition(c RoadCondition) bool {
	switch c {
	case RoadSealed, RoadMixed, RoadRough:
		return true
	}
	return false
}

// Coordinates is a WGS84 latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceKind tags a place snapshot as either a real catalog entry or a
// user-drawn pin that never existed in the catalog.
type PlaceKind string

const (
	PlaceCatalog PlaceKind = "catalog"
	PlaceCustom  PlaceKind = "custom"
)

// CustomPinPrefix is kept on generated pin ids so existing clients that
// still sniff the id string keep working. Code must branch on Kind, not
// on this prefix.
const CustomPinPrefix = "custom-"

// PlaceSnapshot is a denormalized copy of a place's display fields,
// captured when the stop is added. The stop keeps rendering even if the
// catalog entry is later edited or deleted.
type PlaceSnapshot struct {
	ID           string      `json:"id"`
	Kind         PlaceKind   `json:"kind"`
	Title        string      `json:"title"`
	Coordinates  Coordinates `json:"coordinates"`
	Category     string      `json:"category,omitempty"`
	Municipality string      `json:"municipality,omitempty"`
}

// NewCustomPin builds a snapshot for a user-drawn pin. Custom pins are
// never resolved against the catalog; title and coordinates live inline.
func NewCustomPin(title string, at Coordinates) PlaceSnapshot {
	return PlaceSnapshot{
		ID:          CustomPinPrefix + uuid.NewString(),
		Kind:        PlaceCustom,
		Title:       title,
		Coordinates: at,
	}
}

// TripPlace is one itinerary entry: a place snapshot plus per-stop notes
// and its position within the trip. Ordering is defined by Order, not by
// slice position.
type TripPlace struct {
	Place    PlaceSnapshot `json:"place"`
	Notes    string        `json:"notes,omitempty"`
	PhotoURL string        `json:"photo_url,omitempty"`
	Order    int           `json:"order"`
}

// StartPoint selects the synthetic first leg of a trip: the configured
// default start location, or no synthetic start at all.
type StartPoint string

const (
	StartDefault StartPoint = "default"
	StartNone    StartPoint = "none"
)

// CustomEndPoint is an optional named final destination that is not one
// of the trip's stops.
type CustomEndPoint struct {
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
}

// ManualOverride replaces the computed distance/time figures verbatim.
// An unset figure stays zero; it does not fall back to the computed one.
type ManualOverride struct {
	DistanceKm float64 `json:"distance_km"`
	TimeHours  float64 `json:"time_hours"`
}

// Trip is a named, ordered itinerary of stops with routing and display
// preferences. It is the aggregate the local repository stores.
type Trip struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Places        []TripPlace     `json:"places"`
	OwnerID       string          `json:"owner_id"`
	IsPublic      bool            `json:"is_public"`
	TransportMode TransportMode   `json:"transport_mode"`
	RoadCondition RoadCondition   `json:"road_condition"`
	CustomEnd     *CustomEndPoint `json:"custom_end,omitempty"`
	StartPoint    StartPoint      `json:"start_point,omitempty"`
	Override      *ManualOverride `json:"override,omitempty"`
	Photos        []string        `json:"photos,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// RenumberPlaces sorts the places by their current Order and rewrites the
// Order fields to a dense 0..n-1 sequence. Must run after any mutation
// that inserts, removes, or reorders places.
func (t *Trip) RenumberPlaces() {
	sort.SliceStable(t.Places, func(i, j int) bool {
		return t.Places[i].Order < t.Places[j].Order
	})
	for i := range t.Places {
		t.Places[i].Order = i
	}
}

// OrderedPlaces returns the places sorted by Order without mutating the
// trip.
func (t *Trip) OrderedPlaces() []TripPlace {
	out := make([]TripPlace, len(t.Places))
	copy(out, t.Places)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Waypoints returns the trip's itinerary as an ordered coordinate list,
// prepending the default start location when the trip asks for one and
// appending the custom end point when present.
func (t *Trip) Waypoints(defaultStart *Coordinates) []Coordinates {
	pts := make([]Coordinates, 0, len(t.Places)+2)
	if t.StartPoint == StartDefault && defaultStart != nil {
		pts = append(pts, *defaultStart)
	}
	for _, p := range t.OrderedPlaces() {
		pts = append(pts, p.Place.Coordinates)
	}
	if t.CustomEnd != nil {
		pts = append(pts, t.CustomEnd.Coordinates)
	}
	return pts
}
