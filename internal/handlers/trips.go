package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"tripfolio/internal/config"
	"tripfolio/internal/dto"
	"tripfolio/internal/estimate"
	"tripfolio/internal/models"
	"tripfolio/internal/remote"
	"tripfolio/internal/routing"
	"tripfolio/internal/store"
	"tripfolio/internal/utils"
)

// TripsHandler manages trip-related endpoints
type TripsHandler struct {
	store     *store.Repository
	publisher *remote.Publisher
	router    *routing.Service
	config    *config.Config
}

// NewTripsHandler creates a new TripsHandler. publisher may be nil when
// no remote authority is configured; public trips then stay local.
func NewTripsHandler(repo *store.Repository, publisher *remote.Publisher, router *routing.Service, cfg *config.Config) *TripsHandler {
	return &TripsHandler{store: repo, publisher: publisher, router: router, config: cfg}
}

// Trips dispatches by HTTP method for /api/trips
func (h *TripsHandler) Trips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateTrip(w, r)
	case http.MethodGet:
		rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/trips"), "/")
		switch {
		case rest == "":
			h.ListTrips(w, r)
		case strings.HasSuffix(rest, "/estimate"):
			h.EstimateTrip(w, r)
		case strings.HasSuffix(rest, "/route"):
			h.RouteTrip(w, r)
		default:
			h.TripDetail(w, r)
		}
	case http.MethodPut, http.MethodPatch:
		h.UpdateTrip(w, r)
	case http.MethodDelete:
		h.DeleteTrip(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// tripIDFromPath extracts the trip id from /api/trips/{id}[/suffix]
func tripIDFromPath(path string) string {
	rest := strings.Trim(strings.TrimPrefix(path, "/api/trips"), "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// CreateTrip handles POST /api/trips
// @Summary Create a new trip
// @Tags trips
// @Accept json
// @Produce json
// @Param payload body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} dto.TripEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/trips [post]
func (h *TripsHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid owner context")
		return
	}

	var req dto.CreateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "name is required")
		return
	}

	mode, ok := parseTransportMode(req.TransportMode)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "transport_mode must be car, motorbike, bus, bicycle, or walking")
		return
	}
	road, ok := parseRoadCondition(req.RoadCondition)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "road_condition must be sealed, mixed, or rough")
		return
	}
	start, ok := parseStartPoint(req.StartPoint)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "start_point must be default or none")
		return
	}

	trip := models.Trip{
		Name:          req.Name,
		Description:   req.Description,
		Places:        normalizePlaces(req.Places),
		OwnerID:       ownerID,
		IsPublic:      req.IsPublic,
		TransportMode: mode,
		RoadCondition: road,
		CustomEnd:     req.CustomEnd,
		StartPoint:    start,
		Override:      req.Override,
		Photos:        req.Photos,
	}
	created := h.store.Create(trip)

	var sync *dto.SyncStatus
	if created.IsPublic {
		sync = h.syncStatus(h.publish(r, created, false))
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.TripEnvelope{Trip: created, Sync: sync})
}

// ListTrips handles GET /api/trips. By default it lists the caller's own
// trips; ?public=1 lists everyone's public trips instead.
// @Summary List trips
// @Tags trips
// @Produce json
// @Param public query bool false "list public trips instead of own"
// @Success 200 {object} dto.TripListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/trips [get]
func (h *TripsHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid owner context")
		return
	}

	var trips []models.Trip
	if v := r.URL.Query().Get("public"); v == "1" || strings.EqualFold(v, "true") {
		trips = h.store.ListPublic()
	} else {
		trips = h.store.ListByOwner(ownerID)
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TripListResponse{Trips: trips, Count: len(trips)})
}

// TripDetail handles GET /api/trips/{trip_id}
// @Summary Get trip detail
// @Tags trips
// @Produce json
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} dto.TripEnvelope
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id} [get]
func (h *TripsHandler) TripDetail(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.loadVisibleTrip(w, r)
	if !ok {
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.TripEnvelope{Trip: trip})
}

// UpdateTrip handles PUT/PATCH /api/trips/{trip_id}
// @Summary Update a trip
// @Tags trips
// @Accept json
// @Produce json
// @Param trip_id path string true "Trip ID"
// @Param payload body dto.UpdateTripRequest true "Update payload"
// @Success 200 {object} dto.TripEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id} [put]
func (h *TripsHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid owner context")
		return
	}

	tripID := tripIDFromPath(r.URL.Path)
	prev, ok := h.store.Get(tripID)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
		return
	}
	if prev.OwnerID != ownerID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Only the owner can update this trip")
		return
	}

	var req dto.UpdateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	patch := store.TripPatch{
		Description:    req.Description,
		IsPublic:       req.IsPublic,
		CustomEnd:      req.CustomEnd,
		ClearCustomEnd: req.ClearCustomEnd,
		Override:       req.Override,
		ClearOverride:  req.ClearOverride,
		Photos:         req.Photos,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "name cannot be empty")
			return
		}
		patch.Name = &name
	}
	if req.Places != nil {
		places := normalizePlaces(*req.Places)
		patch.Places = &places
	}
	if req.TransportMode != nil {
		mode, ok := parseTransportMode(*req.TransportMode)
		if !ok {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "transport_mode must be car, motorbike, bus, bicycle, or walking")
			return
		}
		patch.TransportMode = &mode
	}
	if req.RoadCondition != nil {
		road, ok := parseRoadCondition(*req.RoadCondition)
		if !ok {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "road_condition must be sealed, mixed, or rough")
			return
		}
		patch.RoadCondition = &road
	}
	if req.StartPoint != nil {
		start, ok := parseStartPoint(*req.StartPoint)
		if !ok {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "start_point must be default or none")
			return
		}
		patch.StartPoint = &start
	}

	updated, ok := h.store.Update(tripID, patch)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
		return
	}

	// The local write has committed; whatever the remote says next never
	// rolls it back.
	var sync *dto.SyncStatus
	switch {
	case updated.IsPublic && !prev.IsPublic:
		sync = h.syncStatus(h.publish(r, updated, false))
	case updated.IsPublic:
		sync = h.syncStatus(h.publish(r, updated, true))
	case prev.IsPublic:
		sync = h.syncStatus(h.retract(r, updated.ID))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TripEnvelope{Trip: updated, Sync: sync})
}

// DeleteTrip handles DELETE /api/trips/{trip_id}. Deleting a missing
// trip succeeds: the end state is the same.
// @Summary Delete a trip
// @Tags trips
// @Produce json
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id} [delete]
func (h *TripsHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid owner context")
		return
	}

	tripID := tripIDFromPath(r.URL.Path)
	existing, ok := h.store.Get(tripID)
	if !ok {
		utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Trip deleted"})
		return
	}
	if existing.OwnerID != ownerID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Only the owner can delete this trip")
		return
	}

	removed, ok := h.store.Delete(tripID)

	var sync *dto.SyncStatus
	if ok && removed.IsPublic {
		sync = h.syncStatus(h.retract(r, removed.ID))
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Trip deleted", Sync: sync})
}

// EstimateTrip handles GET /api/trips/{trip_id}/estimate
// @Summary Estimate trip distance, time, and duration
// @Tags trips
// @Produce json
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} estimate.Result
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id}/estimate [get]
func (h *TripsHandler) EstimateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.loadVisibleTrip(w, r)
	if !ok {
		return
	}

	extras := &estimate.Extras{Start: h.defaultStartFor(&trip)}
	if trip.CustomEnd != nil {
		end := trip.CustomEnd.Coordinates
		extras.End = &end
	}

	utils.WriteJSONResponse(w, http.StatusOK, estimate.Estimate(&trip, extras))
}

// RouteTrip handles GET /api/trips/{trip_id}/route
// @Summary Get road-following geometry for a trip's itinerary
// @Tags trips
// @Produce json
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} routing.Result
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id}/route [get]
func (h *TripsHandler) RouteTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := h.loadVisibleTrip(w, r)
	if !ok {
		return
	}

	waypoints := trip.Waypoints(h.defaultStartFor(&trip))
	utils.WriteJSONResponse(w, http.StatusOK, h.router.Route(r.Context(), waypoints, trip.TransportMode))
}

// loadVisibleTrip fetches the trip from the path and checks the caller
// may see it: owners see their own trips, everyone sees public ones.
func (h *TripsHandler) loadVisibleTrip(w http.ResponseWriter, r *http.Request) (models.Trip, bool) {
	ownerID, ok := utils.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid owner context")
		return models.Trip{}, false
	}

	trip, ok := h.store.Get(tripIDFromPath(r.URL.Path))
	if !ok {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
		return models.Trip{}, false
	}
	if trip.OwnerID != ownerID && !trip.IsPublic {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "Trip is private")
		return models.Trip{}, false
	}
	return trip, true
}

func (h *TripsHandler) defaultStartFor(trip *models.Trip) *models.Coordinates {
	if trip.StartPoint != models.StartDefault || !h.config.Planner.StartEnabled {
		return nil
	}
	return &models.Coordinates{Lat: h.config.Planner.StartLat, Lng: h.config.Planner.StartLng}
}

func (h *TripsHandler) publish(r *http.Request, trip models.Trip, again bool) remote.Result {
	if h.publisher == nil {
		return remote.Result{OK: false, Error: "remote sync not configured"}
	}
	if again {
		return h.publisher.Republish(r.Context(), trip)
	}
	return h.publisher.Publish(r.Context(), trip)
}

func (h *TripsHandler) retract(r *http.Request, id string) remote.Result {
	if h.publisher == nil {
		return remote.Result{OK: false, Error: "remote sync not configured"}
	}
	return h.publisher.Retract(r.Context(), id)
}

func (h *TripsHandler) syncStatus(res remote.Result) *dto.SyncStatus {
	return &dto.SyncStatus{OK: res.OK, Error: res.Error}
}

func parseTransportMode(s string) (models.TransportMode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return models.ModeCar, true
	}
	mode := models.TransportMode(s)
	return mode, models.ValidTransportMode(mode)
}

func parseRoadCondition(s string) (models.RoadCondition, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return models.RoadSealed, true
	}
	road := models.RoadCondition(s)
	return road, models.ValidRoadCondition(road)
}

func parseStartPoint(s string) (models.StartPoint, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(models.StartNone):
		return models.StartNone, true
	case string(models.StartDefault):
		return models.StartDefault, true
	}
	return "", false
}

// normalizePlaces backfills the place kind on payloads from older
// clients that only carried the custom- id prefix, and assigns ids to
// fresh custom pins.
func normalizePlaces(places []models.TripPlace) []models.TripPlace {
	for i := range places {
		p := &places[i].Place
		if p.Kind == "" {
			if strings.HasPrefix(p.ID, models.CustomPinPrefix) {
				p.Kind = models.PlaceCustom
			} else {
				p.Kind = models.PlaceCatalog
			}
		}
		if p.Kind == models.PlaceCustom && p.ID == "" {
			p.ID = models.CustomPinPrefix + uuid.NewString()
		}
	}
	return places
}
