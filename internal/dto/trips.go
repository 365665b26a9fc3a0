package dto

import "tripfolio/internal/models"

// CreateTripRequest represents the payload to create a trip
type CreateTripRequest struct {
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Places        []models.TripPlace     `json:"places"`
	IsPublic      bool                   `json:"is_public"`
	TransportMode string                 `json:"transport_mode"` // car | motorbike | bus | bicycle | walking
	RoadCondition string                 `json:"road_condition"` // sealed | mixed | rough
	CustomEnd     *models.CustomEndPoint `json:"custom_end"`
	StartPoint    string                 `json:"start_point"` // default | none
	Override      *models.ManualOverride `json:"override"`
	Photos        []string               `json:"photos"`
}

// UpdateTripRequest represents fields allowed to update a trip
// All fields are optional; only provided ones will be updated. Places
// are replaced wholesale, never merged per-stop.
type UpdateTripRequest struct {
	Name           *string                `json:"name"`
	Description    *string                `json:"description"`
	Places         *[]models.TripPlace    `json:"places"`
	IsPublic       *bool                  `json:"is_public"`
	TransportMode  *string                `json:"transport_mode"`
	RoadCondition  *string                `json:"road_condition"`
	CustomEnd      *models.CustomEndPoint `json:"custom_end"`
	ClearCustomEnd bool                   `json:"clear_custom_end"`
	StartPoint     *string                `json:"start_point"`
	Override       *models.ManualOverride `json:"override"`
	ClearOverride  bool                   `json:"clear_override"`
	Photos         *[]string              `json:"photos"`
}

// TripEnvelope wraps a trip together with the outcome of its remote
// sync attempt, when one was made.
type TripEnvelope struct {
	Trip models.Trip `json:"trip"`
	Sync *SyncStatus `json:"sync,omitempty"`
}

// TripListResponse envelope
type TripListResponse struct {
	Trips []models.Trip `json:"trips"`
	Count int           `json:"count"`
}

// RouteRequest asks for road-following geometry through ad hoc waypoints
type RouteRequest struct {
	Waypoints []models.Coordinates `json:"waypoints"`
	Mode      string               `json:"mode"`
}
