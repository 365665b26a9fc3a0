// Package routing fetches road-following route geometry from an
// OSRM-style provider, degrading to straight-line segments whenever the
// provider cannot serve.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tripfolio/internal/metrics"
	"tripfolio/internal/models"
)

// The provider caps waypoints per request, so long itineraries are split
// into overlapping windows of this size and stitched back together.
const maxChunkSize = 10

// Service is the route geometry client.
type Service struct {
	baseURL string
	client  *http.Client
	metrics *metrics.Collector
}

func NewService(baseURL string, timeout time.Duration, m *metrics.Collector) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		metrics: m,
	}
}

// Result is a polyline plus whether it actually follows roads. When
// Routed is false the points are the caller's own waypoints and Note
// carries an informational caption for the UI.
type Result struct {
	Points []models.Coordinates `json:"points"`
	Routed bool                 `json:"routed"`
	Note   string               `json:"note,omitempty"`
}

// Profile maps a transport mode onto the provider's routing profiles.
func Profile(mode models.TransportMode) string {
	switch mode {
	case models.ModeWalking:
		return "foot"
	case models.ModeBicycle:
		return "cycling"
	default:
		return "driving"
	}
}

// Route fetches a road-following polyline through the waypoints, in
// order. Chunks are fetched sequentially to stay under the provider's
// rate limits. If any chunk fails the whole attempt is abandoned and the
// original waypoints come back as a straight-line polyline; a partially
// stitched path is never returned.
func (s *Service) Route(ctx context.Context, waypoints []models.Coordinates, mode models.TransportMode) Result {
	if len(waypoints) < 2 {
		return Result{Points: waypoints}
	}
	if s.metrics != nil {
		s.metrics.RoutingRequests.Inc()
	}

	profile := Profile(mode)
	stitched := make([]models.Coordinates, 0, len(waypoints)*4)

	for i, chunk := range chunkWaypoints(waypoints, maxChunkSize) {
		pts, err := s.fetchChunk(ctx, chunk, profile)
		if err != nil {
			log.Printf("routing: chunk %d failed, using straight-line path: %v", i, err)
			if s.metrics != nil {
				s.metrics.RoutingFallbacks.Inc()
			}
			return Result{
				Points: waypoints,
				Note:   "showing straight-line path; road routing unavailable",
			}
		}
		if i == 0 {
			stitched = append(stitched, pts...)
		} else if len(pts) > 0 {
			// The chunk's first point duplicates the previous chunk's
			// last point.
			stitched = append(stitched, pts[1:]...)
		}
	}

	return Result{Points: stitched, Routed: true}
}

// chunkWaypoints splits the list into windows of at most size points.
// Every window after the first starts with the previous window's last
// point so the stitched geometry has no gap at the boundary.
func chunkWaypoints(waypoints []models.Coordinates, size int) [][]models.Coordinates {
	if len(waypoints) <= size {
		return [][]models.Coordinates{waypoints}
	}
	var chunks [][]models.Coordinates
	start := 0
	for {
		end := start + size
		if end >= len(waypoints) {
			chunks = append(chunks, waypoints[start:])
			return chunks
		}
		chunks = append(chunks, waypoints[start:end])
		start = end - 1
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

func (s *Service) fetchChunk(ctx context.Context, chunk []models.Coordinates, profile string) ([]models.Coordinates, error) {
	if s.metrics != nil {
		s.metrics.ProviderCalls.Inc()
	}

	var sb strings.Builder
	for i, c := range chunk {
		if i > 0 {
			sb.WriteByte(';')
		}
		// OSRM takes lon,lat pairs.
		sb.WriteString(strconv.FormatFloat(c.Lng, 'f', 6, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(c.Lat, 'f', 6, 64))
	}
	url := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=geojson", s.baseURL, profile, sb.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("routing provider returned %s", resp.Status)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode routing response: %w", err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("routing provider returned code %q", body.Code)
	}

	coords := body.Routes[0].Geometry.Coordinates
	pts := make([]models.Coordinates, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("malformed coordinate in routing response")
		}
		pts = append(pts, models.Coordinates{Lat: c[1], Lng: c[0]})
	}
	return pts, nil
}
