package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/internal/ticket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SearchService interface {
	Search(ctx context.Context, req *request.SearchScheduleRequest) ([]response.SearchResult, error)
	GetSchedule(ctx context.Context, scheduleID string) (*response.ScheduleDetailResponse, error)
}

type searchService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSearchService(repo *repository.Repository, log *zap.Logger) SearchService {
	return &searchService{
		repo: repo,
		log:  log.With(zap.String("service", "search")),
	}
}

type candidate struct {
	schedule *entity.Schedule
	route    *entity.Route
	bus      *entity.Bus
	company  *entity.Company
}

func (s *searchService) Search(ctx context.Context, req *request.SearchScheduleRequest) ([]response.SearchResult, error) {
	if req.Passengers == 0 {
		req.Passengers = 1
	}
	if err := validate(req); err != nil {
		s.log.Warn("Search validation failed", zap.Error(err))
		return nil, err
	}

	date, err := time.Parse(entity.DateLayout, req.Date)
	if err != nil {
		return nil, invalid("invalid date %s", req.Date)
	}

	schedules, err := s.repo.Schedule.FindBookable(ctx, date, req.Passengers)
	if err != nil {
		return nil, fmt.Errorf("search schedules: %w", err)
	}

	candidates, err := s.join(ctx, schedules)
	if err != nil {
		return nil, err
	}

	results := make([]response.SearchResult, 0, len(candidates))
	for _, c := range candidates {
		if matches(req, c) {
			results = append(results, toSearchResult(c))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return entity.ClockMinutes(results[i].Schedule.DepartureTime) < entity.ClockMinutes(results[j].Schedule.DepartureTime)
	})

	s.log.Info("Schedules searched",
		zap.String("from", req.From),
		zap.String("to", req.To),
		zap.String("date", req.Date),
		zap.Int("passengers", req.Passengers),
		zap.Int("candidates", len(schedules)),
		zap.Int("results", len(results)))

	return results, nil
}

func (s *searchService) GetSchedule(ctx context.Context, scheduleID string) (*response.ScheduleDetailResponse, error) {
	id, err := parseID("schedule", scheduleID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if schedule == nil || !schedule.IsActive {
		return nil, notFound("schedule", id)
	}

	joined, err := s.join(ctx, []*entity.Schedule{schedule})
	if err != nil {
		return nil, err
	}
	if len(joined) == 0 {
		return nil, notFound("schedule", id)
	}

	return &response.ScheduleDetailResponse{
		SearchResult: toSearchResult(joined[0]),
		Duration:     ticket.FormatDuration(joined[0].route.Duration),
	}, nil
}

// join attaches route, bus and company to each schedule. Schedules with a missing
// reference are skipped.
func (s *searchService) join(ctx context.Context, schedules []*entity.Schedule) ([]candidate, error) {
	routeIDs := make([]uuid.UUID, 0, len(schedules))
	busIDs := make([]uuid.UUID, 0, len(schedules))
	companyIDs := make([]uuid.UUID, 0, len(schedules))
	for _, sc := range schedules {
		routeIDs = append(routeIDs, sc.RouteID)
		busIDs = append(busIDs, sc.BusID)
		companyIDs = append(companyIDs, sc.CompanyID)
	}

	routes, err := s.repo.Route.FindByIDs(ctx, routeIDs)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	buses, err := s.repo.Bus.FindByIDs(ctx, busIDs)
	if err != nil {
		return nil, fmt.Errorf("load buses: %w", err)
	}
	companies, err := s.repo.Company.FindByIDs(ctx, companyIDs)
	if err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}

	out := make([]candidate, 0, len(schedules))
	for _, sc := range schedules {
		c := candidate{
			schedule: sc,
			route:    routes[sc.RouteID],
			bus:      buses[sc.BusID],
			company:  companies[sc.CompanyID],
		}
		if c.route == nil || c.bus == nil || c.company == nil {
			s.log.Warn("Skipping schedule with missing reference",
				zap.String("schedule_id", sc.ID.String()),
				zap.Bool("route", c.route != nil),
				zap.Bool("bus", c.bus != nil),
				zap.Bool("company", c.company != nil))
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// matches applies the endpoint match and the optional filters.
func matches(req *request.SearchScheduleRequest, c candidate) bool {
	if !strings.EqualFold(strings.TrimSpace(c.route.Origin), strings.TrimSpace(req.From)) ||
		!strings.EqualFold(strings.TrimSpace(c.route.Destination), strings.TrimSpace(req.To)) {
		return false
	}
	if c.schedule.AvailableSeats < req.Passengers {
		return false
	}
	if req.BusType != "" && string(c.bus.BusType) != req.BusType {
		return false
	}
	if req.Company != "" && !strings.EqualFold(c.company.Name, req.Company) {
		return false
	}
	if len(req.Amenities) > 0 && !c.bus.HasAmenities(req.Amenities) {
		return false
	}
	if c.schedule.Price < req.MinPrice {
		return false
	}
	if req.MaxPrice > 0 && c.schedule.Price > req.MaxPrice {
		return false
	}
	if req.DepartFrom != "" || req.DepartTo != "" {
		hour := clockHour(c.schedule.DepartureTime)
		if req.DepartFrom != "" && hour < clockHour(req.DepartFrom) {
			return false
		}
		if req.DepartTo != "" && hour > clockHour(req.DepartTo) {
			return false
		}
	}
	return true
}

// clockHour returns the hour of an HH:MM clock time, or -1 when malformed.
func clockHour(clock string) int {
	minutes := entity.ClockMinutes(clock)
	if minutes < 0 {
		return -1
	}
	return minutes / 60
}

func toSearchResult(c candidate) response.SearchResult {
	return response.SearchResult{
		Schedule: response.ScheduleToResponse(c.schedule),
		Route:    response.RouteToResponse(c.route),
		Bus:      response.BusToResponse(c.bus),
		Company: response.CompanySummary{
			ID:    c.company.ID.String(),
			Name:  c.company.Name,
			Phone: c.company.Phone,
			Logo:  c.company.Logo,
		},
	}
}
