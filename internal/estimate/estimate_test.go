package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripfolio/internal/geo"
	"tripfolio/internal/models"
)

func stopAt(lat, lng float64, order int) models.TripPlace {
	return models.TripPlace{
		Place: models.PlaceSnapshot{
			ID:          "p",
			Kind:        models.PlaceCatalog,
			Title:       "stop",
			Coordinates: models.Coordinates{Lat: lat, Lng: lng},
		},
		Order: order,
	}
}

func TestEstimateDegenerateTrips(t *testing.T) {
	tests := []struct {
		name string
		trip models.Trip
	}{
		{name: "no stops", trip: models.Trip{TransportMode: models.ModeCar, RoadCondition: models.RoadSealed}},
		{
			name: "single stop",
			trip: models.Trip{
				TransportMode: models.ModeCar,
				RoadCondition: models.RoadSealed,
				Places:        []models.TripPlace{stopAt(10, 10, 0)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(&tt.trip, nil)
			assert.Zero(t, got.TotalDistanceKm)
			assert.Zero(t, got.TotalTimeHours)
			assert.Equal(t, 1, got.EstimatedDays)
		})
	}
}

func TestEstimateTwoStopsSealedCar(t *testing.T) {
	a := models.Coordinates{Lat: 0, Lng: 0}
	b := models.Coordinates{Lat: 0, Lng: 1}
	trip := models.Trip{
		TransportMode: models.ModeCar,
		RoadCondition: models.RoadSealed,
		Places: []models.TripPlace{
			stopAt(a.Lat, a.Lng, 0),
			stopAt(b.Lat, b.Lng, 1),
		},
	}

	straight := geo.DistanceKm(a, b)
	got := Estimate(&trip, nil)

	assert.InDelta(t, straight*1.9, got.TotalDistanceKm, 1e-9)
	assert.InDelta(t, straight*1.9/45, got.TotalTimeHours, 1e-9)
	// 2 stops, ~4.7h of travel: ceil(1 + 4.7/6) = 2 days.
	assert.Equal(t, 2, got.EstimatedDays)
}

func TestEstimateRoadConditionScaling(t *testing.T) {
	a := models.Coordinates{Lat: 0, Lng: 0}
	b := models.Coordinates{Lat: 0, Lng: 1}
	straight := geo.DistanceKm(a, b)

	tests := []struct {
		road      models.RoadCondition
		inflation float64
		speed     float64
	}{
		{models.RoadSealed, 1.9, 45 * 1.0},
		{models.RoadMixed, 2.2, 45 * 0.8},
		{models.RoadRough, 2.6, 45 * 0.6},
	}

	for _, tt := range tests {
		t.Run(string(tt.road), func(t *testing.T) {
			trip := models.Trip{
				TransportMode: models.ModeCar,
				RoadCondition: tt.road,
				Places: []models.TripPlace{
					stopAt(a.Lat, a.Lng, 0),
					stopAt(b.Lat, b.Lng, 1),
				},
			}
			got := Estimate(&trip, nil)
			assert.InDelta(t, straight*tt.inflation, got.TotalDistanceKm, 1e-9)
			assert.InDelta(t, straight*tt.inflation/tt.speed, got.TotalTimeHours, 1e-9)
		})
	}
}

func TestEstimateTransportModeSpeeds(t *testing.T) {
	a := models.Coordinates{Lat: 0, Lng: 0}
	b := models.Coordinates{Lat: 0, Lng: 0.1}
	inflated := geo.DistanceKm(a, b) * 1.9

	tests := []struct {
		mode  models.TransportMode
		speed float64
	}{
		{models.ModeCar, 45},
		{models.ModeMotorbike, 40},
		{models.ModeBus, 35},
		{models.ModeBicycle, 14},
		{models.ModeWalking, 4.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			trip := models.Trip{
				TransportMode: tt.mode,
				RoadCondition: models.RoadSealed,
				Places: []models.TripPlace{
					stopAt(a.Lat, a.Lng, 0),
					stopAt(b.Lat, b.Lng, 1),
				},
			}
			got := Estimate(&trip, nil)
			assert.InDelta(t, inflated/tt.speed, got.TotalTimeHours, 1e-9)
		})
	}
}

func TestEstimateStopsFollowOrderField(t *testing.T) {
	// Slice position deliberately disagrees with the Order field; the
	// zig-zag ordering by slice position would cover a longer path.
	trip := models.Trip{
		TransportMode: models.ModeCar,
		RoadCondition: models.RoadSealed,
		Places: []models.TripPlace{
			stopAt(0, 2, 2),
			stopAt(0, 0, 0),
			stopAt(0, 1, 1),
		},
	}

	straight := geo.DistanceKm(models.Coordinates{Lat: 0, Lng: 0}, models.Coordinates{Lat: 0, Lng: 2})
	got := Estimate(&trip, nil)
	assert.InDelta(t, straight*1.9, got.TotalDistanceKm, 1e-6)
}

func TestEstimateExtrasAddLegs(t *testing.T) {
	start := models.Coordinates{Lat: 0, Lng: -1}
	end := models.Coordinates{Lat: 0, Lng: 2}
	trip := models.Trip{
		TransportMode: models.ModeCar,
		RoadCondition: models.RoadSealed,
		Places: []models.TripPlace{
			stopAt(0, 0, 0),
			stopAt(0, 1, 1),
		},
	}

	bare := Estimate(&trip, nil)
	withExtras := Estimate(&trip, &Extras{Start: &start, End: &end})

	extra := (geo.DistanceKm(start, models.Coordinates{Lat: 0, Lng: 0}) +
		geo.DistanceKm(models.Coordinates{Lat: 0, Lng: 1}, end)) * 1.9
	assert.InDelta(t, bare.TotalDistanceKm+extra, withExtras.TotalDistanceKm, 1e-6)
}

func TestEstimateOverride(t *testing.T) {
	trip := models.Trip{
		TransportMode: models.ModeCar,
		RoadCondition: models.RoadSealed,
		Places: []models.TripPlace{
			stopAt(0, 0, 0),
			stopAt(0, 1, 1),
		},
		Override: &models.ManualOverride{DistanceKm: 250, TimeHours: 12},
	}

	got := Estimate(&trip, nil)
	assert.Equal(t, 250.0, got.TotalDistanceKm)
	assert.Equal(t, 12.0, got.TotalTimeHours)
	// ceil(2/2 + 12/6) = 3 days.
	assert.Equal(t, 3, got.EstimatedDays)
}

func TestEstimateOverridePartial(t *testing.T) {
	// A distance-only override pins the time figure to zero; it does not
	// fall back to the computed travel time.
	trip := models.Trip{
		TransportMode: models.ModeCar,
		RoadCondition: models.RoadSealed,
		Places: []models.TripPlace{
			stopAt(0, 0, 0),
			stopAt(0, 1, 1),
		},
		Override: &models.ManualOverride{DistanceKm: 100},
	}

	got := Estimate(&trip, nil)
	assert.Equal(t, 100.0, got.TotalDistanceKm)
	assert.Zero(t, got.TotalTimeHours)
	assert.Equal(t, 1, got.EstimatedDays)
}

func TestRecommendedDaysFloor(t *testing.T) {
	assert.Equal(t, 1, recommendedDays(0, 0))
	assert.Equal(t, 1, recommendedDays(1, 0))
	assert.Equal(t, 3, recommendedDays(4, 5))
	assert.Equal(t, 5, recommendedDays(6, 10))
}
