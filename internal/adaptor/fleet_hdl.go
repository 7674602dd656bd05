package adaptor

import (
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FleetHandler serves the company admin's buses, routes and schedules.
type FleetHandler struct {
	base
	service usecase.FleetService
}

func NewFleetHandler(service usecase.FleetService, log *zap.Logger) *FleetHandler {
	return &FleetHandler{
		base:    newBase(log, "fleet"),
		service: service,
	}
}

// ==================== BUSES ====================

// ListBuses handles GET /api/admin/buses
func (h *FleetHandler) ListBuses(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	buses, err := h.service.ListBuses(r.Context(), p, paginated(r))
	if err != nil {
		h.handleServiceError(w, err, "list buses")
		return
	}

	utils.ResponseSuccess(w, "success", buses)
}

// CreateBus handles POST /api/admin/buses
func (h *FleetHandler) CreateBus(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req request.BusRequest
	if !h.decode(w, r, &req) {
		return
	}

	bus, err := h.service.CreateBus(r.Context(), p, &req)
	if err != nil {
		h.handleServiceError(w, err, "create bus")
		return
	}

	utils.ResponseCreated(w, "Bus created successfully", bus)
}

// UpdateBus handles PUT /api/admin/buses/{id}
func (h *FleetHandler) UpdateBus(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req request.BusRequest
	if !h.decode(w, r, &req) {
		return
	}

	bus, err := h.service.UpdateBus(r.Context(), p, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update bus")
		return
	}

	utils.ResponseSuccess(w, "Bus updated successfully", bus)
}

// DeleteBus handles DELETE /api/admin/buses/{id}
func (h *FleetHandler) DeleteBus(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteBus(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete bus")
		return
	}

	utils.ResponseSuccess(w, "Bus deactivated successfully", nil)
}

// ==================== ROUTES ====================

// ListRoutes handles GET /api/admin/routes
func (h *FleetHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	routes, err := h.service.ListRoutes(r.Context(), p, paginated(r))
	if err != nil {
		h.handleServiceError(w, err, "list routes")
		return
	}

	utils.ResponseSuccess(w, "success", routes)
}

// CreateRoute handles POST /api/admin/routes
func (h *FleetHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req request.RouteRequest
	if !h.decode(w, r, &req) {
		return
	}

	route, err := h.service.CreateRoute(r.Context(), p, &req)
	if err != nil {
		h.handleServiceError(w, err, "create route")
		return
	}

	utils.ResponseCreated(w, "Route created successfully", route)
}

// UpdateRoute handles PUT /api/admin/routes/{id}
func (h *FleetHandler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req request.RouteRequest
	if !h.decode(w, r, &req) {
		return
	}

	route, err := h.service.UpdateRoute(r.Context(), p, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update route")
		return
	}

	utils.ResponseSuccess(w, "Route updated successfully", route)
}

// DeleteRoute handles DELETE /api/admin/routes/{id}
func (h *FleetHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteRoute(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete route")
		return
	}

	utils.ResponseSuccess(w, "Route deactivated successfully", nil)
}

// ==================== SCHEDULES ====================

// ListSchedules handles GET /api/admin/schedules
func (h *FleetHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	schedules, err := h.service.ListSchedules(r.Context(), p, paginated(r))
	if err != nil {
		h.handleServiceError(w, err, "list schedules")
		return
	}

	utils.ResponseSuccess(w, "success", schedules)
}

// CreateSchedule handles POST /api/admin/schedules
func (h *FleetHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req request.ScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}

	schedule, err := h.service.CreateSchedule(r.Context(), p, &req)
	if err != nil {
		h.handleServiceError(w, err, "create schedule")
		return
	}

	utils.ResponseCreated(w, "Schedule created successfully", schedule)
}

// UpdateSchedule handles PUT /api/admin/schedules/{id}
func (h *FleetHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req request.ScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}

	schedule, err := h.service.UpdateSchedule(r.Context(), p, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update schedule")
		return
	}

	utils.ResponseSuccess(w, "Schedule updated successfully", schedule)
}

// DeleteSchedule handles DELETE /api/admin/schedules/{id}
func (h *FleetHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSchedule(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete schedule")
		return
	}

	utils.ResponseSuccess(w, "Schedule deactivated successfully", nil)
}
