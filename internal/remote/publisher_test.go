package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripfolio/internal/metrics"
	"tripfolio/internal/models"
)

func testTrip() models.Trip {
	return models.Trip{
		ID:            "trip-1",
		Name:          "coast run",
		OwnerID:       "owner-1",
		IsPublic:      true,
		TransportMode: models.ModeCar,
		RoadCondition: models.RoadSealed,
		CreatedAt:     time.UnixMilli(1700000000000),
		UpdatedAt:     time.UnixMilli(1700000005000),
	}
}

func TestPublishPostsWirePayload(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	p := NewPublisher(srv.URL, 2*time.Second, metrics.NewCollector())
	res := p.Publish(context.Background(), testTrip())

	assert.True(t, res.OK)
	assert.Empty(t, res.Error)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/trips", gotPath)
	// Timestamps cross the wire as epoch milliseconds.
	assert.Equal(t, float64(1700000000000), gotBody["created_at"])
	assert.Equal(t, float64(1700000005000), gotBody["updated_at"])
	assert.Equal(t, "trip-1", gotBody["id"])
}

func TestRepublishPutsToTripPath(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	p := NewPublisher(srv.URL, 2*time.Second, metrics.NewCollector())
	res := p.Republish(context.Background(), testTrip())

	assert.True(t, res.OK)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/trips/trip-1", gotPath)
}

func TestPublishSoftFailsOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewPublisher(srv.URL, 2*time.Second, metrics.NewCollector())
	res := p.Publish(context.Background(), testTrip())

	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Error)
}

func TestPublishSoftFailsOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	p := NewPublisher(srv.URL, 500*time.Millisecond, metrics.NewCollector())
	res := p.Publish(context.Background(), testTrip())

	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Error)
}

func TestRetract(t *testing.T) {
	tests := []struct {
		name   string
		status int
		wantOK bool
	}{
		{name: "deleted", status: http.StatusOK, wantOK: true},
		{name: "never published", status: http.StatusNotFound, wantOK: true},
		{name: "server error", status: http.StatusBadGateway, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			p := NewPublisher(srv.URL, 2*time.Second, metrics.NewCollector())
			res := p.Retract(context.Background(), "trip-9")

			assert.Equal(t, tt.wantOK, res.OK)
			assert.Equal(t, http.MethodDelete, gotMethod)
			assert.Equal(t, "/trips/trip-9", gotPath)
		})
	}
}
