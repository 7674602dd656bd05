package usecase

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/response"

	"github.com/google/uuid"
)

// tripLoader resolves the schedule, route, bus and company behind bookings in batches.
type tripLoader struct {
	repo *repository.Repository
}

type tripRefs struct {
	schedules map[uuid.UUID]*entity.Schedule
	routes    map[uuid.UUID]*entity.Route
	buses     map[uuid.UUID]*entity.Bus
	companies map[uuid.UUID]*entity.Company
}

func (l tripLoader) load(ctx context.Context, scheduleIDs []uuid.UUID) (*tripRefs, error) {
	refs := &tripRefs{schedules: make(map[uuid.UUID]*entity.Schedule, len(scheduleIDs))}

	var routeIDs, busIDs, companyIDs []uuid.UUID
	for _, id := range scheduleIDs {
		if _, done := refs.schedules[id]; done {
			continue
		}
		schedule, err := l.repo.Schedule.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load schedule %s: %w", id, err)
		}
		refs.schedules[id] = schedule
		if schedule == nil {
			continue
		}
		routeIDs = append(routeIDs, schedule.RouteID)
		busIDs = append(busIDs, schedule.BusID)
		companyIDs = append(companyIDs, schedule.CompanyID)
	}

	var err error
	if refs.routes, err = l.repo.Route.FindByIDs(ctx, routeIDs); err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	if refs.buses, err = l.repo.Bus.FindByIDs(ctx, busIDs); err != nil {
		return nil, fmt.Errorf("load buses: %w", err)
	}
	if refs.companies, err = l.repo.Company.FindByIDs(ctx, companyIDs); err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	return refs, nil
}

// summary returns nil when the schedule itself is gone.
func (r *tripRefs) summary(scheduleID uuid.UUID) *response.TripSummary {
	schedule := r.schedules[scheduleID]
	if schedule == nil {
		return nil
	}

	trip := &response.TripSummary{
		Date:          schedule.Date.Format(entity.DateLayout),
		DepartureTime: schedule.DepartureTime,
		ArrivalTime:   schedule.ArrivalTime,
	}
	if route := r.routes[schedule.RouteID]; route != nil {
		trip.Origin = route.Origin
		trip.Destination = route.Destination
	}
	if bus := r.buses[schedule.BusID]; bus != nil {
		trip.BusNumber = bus.BusNumber
		trip.BusType = string(bus.BusType)
	}
	if company := r.companies[schedule.CompanyID]; company != nil {
		trip.CompanyName = company.Name
	}
	return trip
}

func scheduleIDsOf(bookings []*entity.Booking) []uuid.UUID {
	ids := make([]uuid.UUID, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ScheduleID
	}
	return ids
}
