package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/authz"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FleetService manages a company's buses, routes and schedules.
type FleetService interface {
	ListBuses(ctx context.Context, p *authz.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BusResponse], error)
	CreateBus(ctx context.Context, p *authz.Principal, req *request.BusRequest) (*response.BusResponse, error)
	UpdateBus(ctx context.Context, p *authz.Principal, busID string, req *request.BusRequest) (*response.BusResponse, error)
	DeleteBus(ctx context.Context, p *authz.Principal, busID string) error

	ListRoutes(ctx context.Context, p *authz.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RouteResponse], error)
	CreateRoute(ctx context.Context, p *authz.Principal, req *request.RouteRequest) (*response.RouteResponse, error)
	UpdateRoute(ctx context.Context, p *authz.Principal, routeID string, req *request.RouteRequest) (*response.RouteResponse, error)
	DeleteRoute(ctx context.Context, p *authz.Principal, routeID string) error

	ListSchedules(ctx context.Context, p *authz.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ScheduleResponse], error)
	CreateSchedule(ctx context.Context, p *authz.Principal, req *request.ScheduleRequest) (*response.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, p *authz.Principal, scheduleID string, req *request.ScheduleRequest) (*response.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, p *authz.Principal, scheduleID string) error
}

type fleetService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFleetService(repo *repository.Repository, log *zap.Logger) FleetService {
	return &fleetService{
		repo: repo,
		log:  log.With(zap.String("service", "fleet")),
	}
}

// companyOf returns the company the principal may manage.
func companyOf(p *authz.Principal) (uuid.UUID, error) {
	if p == nil || p.CompanyID == nil || !authz.CanManageCompany(p, *p.CompanyID) {
		return uuid.Nil, fmt.Errorf("company admin access required: %w", ErrForbidden)
	}
	return *p.CompanyID, nil
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("invalid %s ID format %s", kind, raw)
	}
	return id, nil
}

// ==================== BUSES ====================

func (s *fleetService) ListBuses(ctx context.Context, p *authz.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BusResponse], error) {
	companyID, err := companyOf(p)
	if err != nil {
		return nil, err
	}

	buses, err := s.repo.Bus.FindByCompany(ctx, companyID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list buses: %w", err)
	}
	total, err := s.repo.Bus.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("count buses: %w", err)
	}

	items := make([]response.BusResponse, len(buses))
	for i, b := range buses {
		items[i] = response.BusToResponse(b)
	}
	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *fleetService) CreateBus(ctx context.Context, p *authz.Principal, req *request.BusRequest) (*response.BusResponse, error) {
	companyID, err := companyOf(p)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create bus validation failed", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	bus := &entity.Bus{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyID:  companyID,
		BusNumber:  strings.TrimSpace(req.BusNumber),
		BusType:    entity.BusType(req.BusType),
		TotalSeats: req.TotalSeats,
		Amenities:  normalizeList(req.Amenities),
		IsActive:   req.IsActive == nil || *req.IsActive,
	}

	if err := s.repo.Bus.Create(ctx, bus); err != nil {
		return nil, fmt.Errorf("create bus: %w", err)
	}

	s.log.Info("Bus created",
		zap.String("bus_id", bus.ID.String()),
		zap.String("company_id", companyID.String()),
		zap.Int("total_seats", bus.TotalSeats))

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *fleetService) UpdateBus(ctx context.Context, p *authz.Principal, busID string, req *request.BusRequest) (*response.BusResponse, error) {
	bus, err := s.ownBus(ctx, p, busID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Update bus validation failed", zap.Error(err))
		return nil, err
	}

	// Seat counts feed every schedule's inventory, so they freeze once the bus is scheduled.
	if req.TotalSeats != bus.TotalSeats {
		scheduled, err := s.repo.Schedule.CountByBus(ctx, bus.ID)
		if err != nil {
			return nil, fmt.Errorf("update bus: %w", err)
		}
		if scheduled > 0 {
			return nil, fmt.Errorf("cannot change seats of bus %s used by %d schedules: %w", bus.BusNumber, scheduled, ErrConflict)
		}
	}

	bus.BusNumber = strings.TrimSpace(req.BusNumber)
	bus.BusType = entity.BusType(req.BusType)
	bus.TotalSeats = req.TotalSeats
	bus.Amenities = normalizeList(req.Amenities)
	if req.IsActive != nil {
		bus.IsActive = *req.IsActive
	}
	bus.UpdatedAt = time.Now().UTC()

	if err := s.repo.Bus.Update(ctx, bus); err != nil {
		return nil, fmt.Errorf("update bus: %w", err)
	}

	s.log.Info("Bus updated", zap.String("bus_id", bus.ID.String()))
	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *fleetService) DeleteBus(ctx context.Context, p *authz.Principal, busID string) error {
	bus, err := s.ownBus(ctx, p, busID)
	if err != nil {
		return err
	}
	if err := s.repo.Bus.Deactivate(ctx, bus.ID); err != nil {
		return fmt.Errorf("delete bus: %w", err)
	}
	return nil
}

func (s *fleetService) ownBus(ctx context.Context, p *authz.Principal, rawID string) (*entity.Bus, error) {
	companyID, err := companyOf(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID("bus", rawID)
	if err != nil {
		return nil, err
	}

	bus, err := s.repo.Bus.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find bus: %w", err)
	}
	if bus == nil || bus.CompanyID != companyID {
		return nil, notFound("bus", id)
	}
	return bus, nil
}

// ==================== ROUTES ====================

func (s *fleetService) ListRoutes(ctx context.Context, p *authz.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RouteResponse], error) {
	companyID, err := companyOf(p)
	if err != nil {
		return nil, err
	}

	routes, err := s.repo.Route.FindByCompany(ctx, companyID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	total, err := s.repo.Route.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("count routes: %w", err)
	}

	items := make([]response.RouteResponse, len(routes))
	for i, r := range routes {
		items[i] = response.RouteToResponse(r)
	}
	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *fleetService) CreateRoute(ctx context.Context, p *authz.Principal, req *request.RouteRequest) (*response.RouteResponse, error) {
	companyID, err := companyOf(p)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create route validation failed", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	route := &entity.Route{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyID:   companyID,
		Origin:      strings.TrimSpace(req.Origin),
		Destination: strings.TrimSpace(req.Destination),
		Distance:    req.Distance,
		Duration:    req.Duration,
		Stops:       trimAll(req.Stops),
		IsActive:    req.IsActive == nil || *req.IsActive,
	}

	if err := s.repo.Route.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}

	s.log.Info("Route created",
		zap.String("route_id", route.ID.String()),
		zap.String("origin", route.Origin),
		zap.String("destination", route.Destination))

	resp := response.RouteToResponse(route)
	return &resp, nil
}

func (s *fleetService) UpdateRoute(ctx context.Context, p *authz.Principal, routeID string, req *request.RouteRequest) (*response.RouteResponse, error) {
	route, err := s.ownRoute(ctx, p, routeID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Update route validation failed", zap.Error(err))
		return nil, err
	}

	route.Origin = strings.TrimSpace(req.Origin)
	route.Destination = strings.TrimSpace(req.Destination)
	route.Distance = req.Distance
	route.Duration = req.Duration
	route.Stops = trimAll(req.Stops)
	if req.IsActive != nil {
		route.IsActive = *req.IsActive
	}
	route.UpdatedAt = time.Now().UTC()

	if err := s.repo.Route.Update(ctx, route); err != nil {
		return nil, fmt.Errorf("update route: %w", err)
	}

	s.log.Info("Route updated", zap.String("route_id", route.ID.String()))
	resp := response.RouteToResponse(route)
	return &resp, nil
}

func (s *fleetService) DeleteRoute(ctx context.Context, p *authz.Principal, routeID string) error {
	route, err := s.ownRoute(ctx, p, routeID)
	if err != nil {
		return err
	}
	if err := s.repo.Route.Deactivate(ctx, route.ID); err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	return nil
}

func (s *fleetService) ownRoute(ctx context.Context, p *authz.Principal, rawID string) (*entity.Route, error) {
	companyID, err := companyOf(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID("route", rawID)
	if err != nil {
		return nil, err
	}

	route, err := s.repo.Route.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find route: %w", err)
	}
	if route == nil || route.CompanyID != companyID {
		return nil, notFound("route", id)
	}
	return route, nil
}

// ==================== SCHEDULES ====================

func (s *fleetService) ListSchedules(ctx context.Context, p *authz.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ScheduleResponse], error) {
	companyID, err := companyOf(p)
	if err != nil {
		return nil, err
	}

	schedules, err := s.repo.Schedule.FindByCompany(ctx, companyID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	total, err := s.repo.Schedule.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("count schedules: %w", err)
	}

	items := make([]response.ScheduleResponse, len(schedules))
	for i, sc := range schedules {
		items[i] = response.ScheduleToResponse(sc)
	}
	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *fleetService) CreateSchedule(ctx context.Context, p *authz.Principal, req *request.ScheduleRequest) (*response.ScheduleResponse, error) {
	companyID, err := companyOf(p)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Create schedule validation failed", zap.Error(err))
		return nil, err
	}

	bus, route, date, err := s.scheduleRefs(ctx, companyID, req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	schedule := &entity.Schedule{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyID:      companyID,
		BusID:          bus.ID,
		RouteID:        route.ID,
		Date:           date,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		Price:          req.Price,
		AvailableSeats: bus.TotalSeats,
		BookedSeats:    []string{},
		IsActive:       req.IsActive == nil || *req.IsActive,
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.log.Info("Schedule created",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("bus_id", bus.ID.String()),
		zap.String("route_id", route.ID.String()),
		zap.String("date", req.Date),
		zap.Int("available_seats", schedule.AvailableSeats))

	resp := response.ScheduleToResponse(schedule)
	return &resp, nil
}

func (s *fleetService) UpdateSchedule(ctx context.Context, p *authz.Principal, scheduleID string, req *request.ScheduleRequest) (*response.ScheduleResponse, error) {
	schedule, err := s.ownSchedule(ctx, p, scheduleID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Update schedule validation failed", zap.Error(err))
		return nil, err
	}

	bus, route, date, err := s.scheduleRefs(ctx, schedule.CompanyID, req)
	if err != nil {
		return nil, err
	}

	if bus.ID != schedule.BusID {
		if len(schedule.BookedSeats) > 0 {
			return nil, fmt.Errorf("cannot change the bus of a schedule with %d booked seats: %w",
				len(schedule.BookedSeats), ErrConflict)
		}
		schedule.BusID = bus.ID
		schedule.AvailableSeats = bus.TotalSeats
	}

	schedule.RouteID = route.ID
	schedule.Date = date
	schedule.DepartureTime = req.DepartureTime
	schedule.ArrivalTime = req.ArrivalTime
	schedule.Price = req.Price
	if req.IsActive != nil {
		schedule.IsActive = *req.IsActive
	}
	schedule.UpdatedAt = time.Now().UTC()

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}

	s.log.Info("Schedule updated",
		zap.String("schedule_id", schedule.ID.String()),
		zap.Int("version", schedule.Version))

	resp := response.ScheduleToResponse(schedule)
	return &resp, nil
}

func (s *fleetService) DeleteSchedule(ctx context.Context, p *authz.Principal, scheduleID string) error {
	schedule, err := s.ownSchedule(ctx, p, scheduleID)
	if err != nil {
		return err
	}

	if err := s.repo.Inventory.RetireSchedule(ctx, schedule.ID); err != nil {
		if errors.Is(err, entity.ErrScheduleBooked) {
			return fmt.Errorf("cannot delete schedule: %v: %w", err, ErrConflict)
		}
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}

func (s *fleetService) ownSchedule(ctx context.Context, p *authz.Principal, rawID string) (*entity.Schedule, error) {
	companyID, err := companyOf(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID("schedule", rawID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	if schedule == nil || schedule.CompanyID != companyID {
		return nil, notFound("schedule", id)
	}
	return schedule, nil
}

// scheduleRefs resolves the bus, route and date of a schedule request and pads its clock
// times to HH:MM. Bus and route must be active and belong to companyID.
func (s *fleetService) scheduleRefs(ctx context.Context, companyID uuid.UUID, req *request.ScheduleRequest) (*entity.Bus, *entity.Route, time.Time, error) {
	busID, err := parseID("bus", req.BusID)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	routeID, err := parseID("route", req.RouteID)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	date, err := time.Parse(entity.DateLayout, req.Date)
	if err != nil {
		return nil, nil, time.Time{}, invalid("invalid date %s", req.Date)
	}

	// Clock times are stored zero padded so they order correctly as text.
	departure, err := entity.NormalizeClock(req.DepartureTime)
	if err != nil {
		return nil, nil, time.Time{}, invalid("invalid departure time %s", req.DepartureTime)
	}
	arrival, err := entity.NormalizeClock(req.ArrivalTime)
	if err != nil {
		return nil, nil, time.Time{}, invalid("invalid arrival time %s", req.ArrivalTime)
	}
	req.DepartureTime, req.ArrivalTime = departure, arrival

	bus, err := s.repo.Bus.FindByID(ctx, busID)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("find bus: %w", err)
	}
	if bus == nil || bus.CompanyID != companyID {
		return nil, nil, time.Time{}, notFound("bus", busID)
	}
	if !bus.IsActive {
		return nil, nil, time.Time{}, invalid("bus %s is not active", bus.BusNumber)
	}

	route, err := s.repo.Route.FindByID(ctx, routeID)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("find route: %w", err)
	}
	if route == nil || route.CompanyID != companyID {
		return nil, nil, time.Time{}, notFound("route", routeID)
	}
	if !route.IsActive {
		return nil, nil, time.Time{}, invalid("route %s-%s is not active", route.Origin, route.Destination)
	}

	return bus, route, date, nil
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// normalizeList trims, lowercases and de-duplicates while keeping order.
func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" && !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}
