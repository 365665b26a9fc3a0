// Package estimate derives travel metrics for a trip from its ordered
// stop list: total road distance, total travel time, and a recommended
// duration in days.
package estimate

import (
	"math"

	"tripfolio/internal/geo"
	"tripfolio/internal/models"
)

// Base speeds in km/h per transport mode, before the road condition
// factor is applied.
var baseSpeedKmh = map[models.TransportMode]float64{
	models.ModeCar:       45,
	models.ModeMotorbike: 40,
	models.ModeBus:       35,
	models.ModeBicycle:   14,
	models.ModeWalking:   4.5,
}

// Speed factor per road condition.
var roadSpeedFactor = map[models.RoadCondition]float64{
	models.RoadSealed: 1.0,
	models.RoadMixed:  0.8,
	models.RoadRough:  0.6,
}

// Real roads are never straight lines; these factors inflate the
// straight-line distance of each leg into an estimated road distance.
var routeInflation = map[models.RoadCondition]float64{
	models.RoadSealed: 1.9,
	models.RoadMixed:  2.2,
	models.RoadRough:  2.6,
}

// A day has a 6-hour travel budget, and each pair of stops is assumed to
// cost half a day of sightseeing.
const travelHoursPerDay = 6.0

// Result holds the aggregate figures for a trip.
type Result struct {
	TotalDistanceKm float64 `json:"total_distance_km"`
	TotalTimeHours  float64 `json:"total_time_hours"`
	EstimatedDays   int     `json:"estimated_days"`
}

// Extras supplies optional synthetic endpoints around the stop list: a
// fixed start location prepended before the first stop and/or an end
// location appended after the last one.
type Extras struct {
	Start *models.Coordinates
	End   *models.Coordinates
}

// Estimate computes the trip's aggregate distance, time, and recommended
// duration. A manual override on the trip wins verbatim over the
// computed figures; note that a partially filled override leaves the
// other figure at zero rather than falling back to the computed value.
// Unknown modes and road conditions fall back to car on sealed roads.
func Estimate(trip *models.Trip, extras *Extras) Result {
	stops := len(trip.Places)

	if trip.Override != nil {
		return Result{
			TotalDistanceKm: trip.Override.DistanceKm,
			TotalTimeHours:  trip.Override.TimeHours,
			EstimatedDays:   recommendedDays(stops, trip.Override.TimeHours),
		}
	}

	points := legPoints(trip, extras)
	if len(points) < 2 {
		return Result{EstimatedDays: 1}
	}

	speed := effectiveSpeedKmh(trip.TransportMode, trip.RoadCondition)
	inflation, ok := routeInflation[trip.RoadCondition]
	if !ok {
		inflation = routeInflation[models.RoadSealed]
	}

	var distanceKm, timeHours float64
	for i := 1; i < len(points); i++ {
		leg := geo.DistanceKm(points[i-1], points[i]) * inflation
		distanceKm += leg
		timeHours += leg / speed
	}

	return Result{
		TotalDistanceKm: distanceKm,
		TotalTimeHours:  timeHours,
		EstimatedDays:   recommendedDays(stops, timeHours),
	}
}

// effectiveSpeedKmh returns the travel speed for a mode on a given road
// condition.
func effectiveSpeedKmh(mode models.TransportMode, road models.RoadCondition) float64 {
	base, ok := baseSpeedKmh[mode]
	if !ok {
		base = baseSpeedKmh[models.ModeCar]
	}
	factor, ok := roadSpeedFactor[road]
	if !ok {
		factor = roadSpeedFactor[models.RoadSealed]
	}
	return base * factor
}

// recommendedDays blends sightseeing load (half a day per two stops) with
// travel load (a 6-hour daily travel budget), never less than one day.
func recommendedDays(stops int, timeHours float64) int {
	days := int(math.Ceil(float64(stops)/2 + timeHours/travelHoursPerDay))
	if days < 1 {
		return 1
	}
	return days
}

func legPoints(trip *models.Trip, extras *Extras) []models.Coordinates {
	points := make([]models.Coordinates, 0, len(trip.Places)+2)
	if extras != nil && extras.Start != nil {
		points = append(points, *extras.Start)
	}
	for _, p := range trip.OrderedPlaces() {
		points = append(points, p.Place.Coordinates)
	}
	if extras != nil && extras.End != nil {
		points = append(points, *extras.End)
	}
	return points
}
