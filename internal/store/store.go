// Package store holds the client-resident system of record for trips.
//
// The whole collection is serialized as one JSON blob under a single key
// in a local sqlite file: reads and writes always cover the full
// collection. That is O(totalTrips) work per mutation, which is fine for
// a local dataset of modest size. A failed write is logged and counted
// but never fails the mutation; the in-memory copy stays authoritative
// for the rest of the session.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tripfolio/internal/metrics"
	"tripfolio/internal/models"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// Repository is the local trip repository. All operations are
// synchronous against the in-memory collection and never depend on the
// network.
type Repository struct {
	db      *sql.DB
	key     string
	metrics *metrics.Collector

	mu    sync.RWMutex
	trips map[string]models.Trip
}

// Open opens (or creates) the sqlite file at path and loads the trip
// collection stored under key. A missing row yields an empty repository.
func Open(path, key string, m *metrics.Collector) (*Repository, error) {
	db, err := sql.Open("sqlite", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	// sqlite allows a single writer; one connection avoids lock churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure local store schema: %w", err)
	}

	r := &Repository{
		db:      db,
		key:     key,
		metrics: m,
		trips:   make(map[string]models.Trip),
	}

	var blob []byte
	err = db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&blob)
	switch {
	case err == sql.ErrNoRows:
		// First run, nothing stored yet.
	case err != nil:
		db.Close()
		return nil, fmt.Errorf("load trip collection: %w", err)
	default:
		var trips []models.Trip
		if err := json.Unmarshal(blob, &trips); err != nil {
			db.Close()
			return nil, fmt.Errorf("decode trip collection: %w", err)
		}
		for _, t := range trips {
			r.trips[t.ID] = t
		}
	}

	r.updateGauge()
	return r, nil
}

// Close closes the underlying sqlite handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Ping verifies the sqlite handle is still usable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// TripPatch is a shallow partial update. Nil fields are left untouched;
// set fields replace the existing value wholesale (places are not
// deep-merged). The Clear flags drop the corresponding optional field.
type TripPatch struct {
	Name           *string
	Description    *string
	Places         *[]models.TripPlace
	IsPublic       *bool
	TransportMode  *models.TransportMode
	RoadCondition  *models.RoadCondition
	CustomEnd      *models.CustomEndPoint
	ClearCustomEnd bool
	StartPoint     *models.StartPoint
	Override       *models.ManualOverride
	ClearOverride  bool
	Photos         *[]string
}

// Create stores a new trip with a generated id and identical creation
// and modification timestamps, and returns the stored record.
func (r *Repository) Create(t models.Trip) models.Trip {
	now := time.Now()
	t.ID = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Places == nil {
		t.Places = []models.TripPlace{}
	}
	t.RenumberPlaces()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[t.ID] = t
	r.save()
	return t
}

// Update merges the patch over the stored trip and refreshes the
// modification timestamp. A missing id is a no-op: ok is false and no
// error is raised.
func (r *Repository) Update(id string, patch TripPatch) (models.Trip, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[id]
	if !ok {
		return models.Trip{}, false
	}

	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Places != nil {
		t.Places = *patch.Places
		t.RenumberPlaces()
	}
	if patch.IsPublic != nil {
		t.IsPublic = *patch.IsPublic
	}
	if patch.TransportMode != nil {
		t.TransportMode = *patch.TransportMode
	}
	if patch.RoadCondition != nil {
		t.RoadCondition = *patch.RoadCondition
	}
	if patch.CustomEnd != nil {
		t.CustomEnd = patch.CustomEnd
	}
	if patch.ClearCustomEnd {
		t.CustomEnd = nil
	}
	if patch.StartPoint != nil {
		t.StartPoint = *patch.StartPoint
	}
	if patch.Override != nil {
		t.Override = patch.Override
	}
	if patch.ClearOverride {
		t.Override = nil
	}
	if patch.Photos != nil {
		t.Photos = *patch.Photos
	}
	t.UpdatedAt = time.Now()

	r.trips[id] = t
	r.save()
	return t, true
}

// Delete removes the trip and returns the removed record. A missing id
// is a no-op with ok false.
func (r *Repository) Delete(id string) (models.Trip, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[id]
	if !ok {
		return models.Trip{}, false
	}
	delete(r.trips, id)
	r.save()
	return t, true
}

// Get returns the trip with the given id.
func (r *Repository) Get(id string) (models.Trip, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trips[id]
	return t, ok
}

// ListByOwner returns the owner's trips, newest first.
func (r *Repository) ListByOwner(ownerID string) []models.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.list(func(t models.Trip) bool { return t.OwnerID == ownerID })
}

// ListPublic returns all public trips, newest first.
func (r *Repository) ListPublic() []models.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.list(func(t models.Trip) bool { return t.IsPublic })
}

// Count returns the number of trips held.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trips)
}

func (r *Repository) list(keep func(models.Trip) bool) []models.Trip {
	out := make([]models.Trip, 0)
	for _, t := range r.trips {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// save serializes the full collection back under the storage key. Called
// with the write lock held. Failures are swallowed on purpose: the
// mutation already happened in memory, it just will not survive a
// restart.
func (r *Repository) save() {
	trips := make([]models.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		trips = append(trips, t)
	}
	sort.Slice(trips, func(i, j int) bool {
		if trips[i].CreatedAt.Equal(trips[j].CreatedAt) {
			return trips[i].ID < trips[j].ID
		}
		return trips[i].CreatedAt.Before(trips[j].CreatedAt)
	})

	blob, err := json.Marshal(trips)
	if err != nil {
		log.Printf("store: serialize trip collection: %v", err)
		r.countSaveErr()
		return
	}
	if _, err := r.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		r.key, blob,
	); err != nil {
		log.Printf("store: persist trip collection: %v", err)
		r.countSaveErr()
		return
	}
	r.updateGauge()
}

func (r *Repository) countSaveErr() {
	if r.metrics != nil {
		r.metrics.StoreSaveErrs.Inc()
	}
}

func (r *Repository) updateGauge() {
	if r.metrics != nil {
		r.metrics.TripsHeld.Set(float64(len(r.trips)))
	}
}
