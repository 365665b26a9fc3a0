// Package remote mirrors public trips into the remote trip authority.
//
// Every call is best-effort: the local mutation has already committed
// and is never rolled back on a remote failure. Failures come back as a
// soft Result the UI renders as "saved locally but did not sync". There
// is no retry queue; a trip that failed to sync stays local until its
// next edit. Calls are not serialized per trip id, so two rapid edits
// can race on the wire and the last response wins.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"tripfolio/internal/metrics"
	"tripfolio/internal/models"
)

// Result is the soft outcome of a sync attempt.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Publisher talks to the remote trip authority. Callers only invoke it
// for public trips.
type Publisher struct {
	baseURL string
	client  *http.Client
	metrics *metrics.Collector
}

func NewPublisher(baseURL string, timeout time.Duration, m *metrics.Collector) *Publisher {
	return &Publisher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		metrics: m,
	}
}

// wireTrip is the authority's payload shape: the trip record with both
// timestamps as epoch milliseconds.
type wireTrip struct {
	models.Trip
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

func toWire(t models.Trip) wireTrip {
	return wireTrip{
		Trip:      t,
		CreatedAt: t.CreatedAt.UnixMilli(),
		UpdatedAt: t.UpdatedAt.UnixMilli(),
	}
}

// Publish mirrors a newly public trip with POST /trips.
func (p *Publisher) Publish(ctx context.Context, trip models.Trip) Result {
	return p.push(ctx, http.MethodPost, p.baseURL+"/trips", trip)
}

// Republish mirrors an edited public trip with PUT /trips/{id}.
func (p *Publisher) Republish(ctx context.Context, trip models.Trip) Result {
	return p.push(ctx, http.MethodPut, p.baseURL+"/trips/"+trip.ID, trip)
}

func (p *Publisher) push(ctx context.Context, method, url string, trip models.Trip) Result {
	if p.metrics != nil {
		p.metrics.Publishes.Inc()
	}

	body, err := json.Marshal(toWire(trip))
	if err != nil {
		return p.fail(trip.ID, fmt.Errorf("encode trip: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return p.fail(trip.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return p.fail(trip.ID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return p.fail(trip.ID, fmt.Errorf("remote authority returned %s", resp.Status))
	}
	return Result{OK: true}
}

// Retract removes the remote copy with DELETE /trips/{id}. A remote 404
// is success: the copy may never have existed, e.g. the trip was toggled
// public and back before its first sync.
func (p *Publisher) Retract(ctx context.Context, id string) Result {
	if p.metrics != nil {
		p.metrics.Retracts.Inc()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, p.baseURL+"/trips/"+id, nil)
	if err != nil {
		return p.fail(id, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return p.fail(id, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return Result{OK: true}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return p.fail(id, fmt.Errorf("remote authority returned %s", resp.Status))
	}
	return Result{OK: true}
}

func (p *Publisher) fail(id string, err error) Result {
	if p.metrics != nil {
		p.metrics.PublishErrs.Inc()
	}
	log.Printf("remote: trip %s did not sync: %v", id, err)
	return Result{OK: false, Error: err.Error()}
}
