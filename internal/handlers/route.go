package handlers

import (
	"net/http"

	"tripfolio/internal/dto"
	"tripfolio/internal/routing"
	"tripfolio/internal/utils"
)

// RouteHandler serves ad hoc waypoint routing for map previews
type RouteHandler struct {
	router *routing.Service
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(router *routing.Service) *RouteHandler {
	return &RouteHandler{router: router}
}

// Compute handles POST /api/route
// @Summary Compute road-following geometry through waypoints
// @Tags routing
// @Accept json
// @Produce json
// @Param payload body dto.RouteRequest true "Waypoints and transport mode"
// @Success 200 {object} routing.Result
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/route [post]
func (h *RouteHandler) Compute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := utils.GetOwnerIDFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid owner context")
		return
	}

	var req dto.RouteRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	mode, ok := parseTransportMode(req.Mode)
	if !ok {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "mode must be car, motorbike, bus, bicycle, or walking")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, h.router.Route(r.Context(), req.Waypoints, mode))
}
