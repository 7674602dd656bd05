package usecase

import (
	"context"
	"fmt"
	"testing"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/dto/request"
	"bus-booking/pkg/authz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func adminOf(companyID uuid.UUID) *authz.Principal {
	return &authz.Principal{UserID: uuid.New(), Role: entity.RoleCompanyAdmin, CompanyID: &companyID}
}

func TestCreateBus_ScopedToCompany(t *testing.T) {
	repos, repo := newMockRepos()
	svc := NewFleetService(repo, zap.NewNop())
	companyID := uuid.New()

	repos.bus.On("Create", mock.Anything, mock.MatchedBy(func(b *entity.Bus) bool {
		return b.CompanyID == companyID && b.IsActive && len(b.Amenities) == 2
	})).Return(nil).Once()

	resp, err := svc.CreateBus(context.Background(), adminOf(companyID), &request.BusRequest{
		BusNumber:  " BT 1234 ",
		BusType:    "AC",
		TotalSeats: 40,
		Amenities:  []string{"wifi", "ac"},
	})
	require.NoError(t, err)
	assert.Equal(t, "BT 1234", resp.BusNumber)
	repos.bus.AssertExpectations(t)

	_, err = svc.CreateBus(context.Background(), &authz.Principal{UserID: uuid.New(), Role: entity.RoleCustomer}, &request.BusRequest{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateBus_SeatsFrozenOnceScheduled(t *testing.T) {
	repos, repo := newMockRepos()
	svc := NewFleetService(repo, zap.NewNop())
	companyID := uuid.New()
	bus := &entity.Bus{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, CompanyID: companyID, BusNumber: "BT 1", BusType: entity.BusTypeAC, TotalSeats: 40, IsActive: true}

	repos.bus.On("FindByID", mock.Anything, bus.ID).Return(bus, nil)
	repos.schedule.On("CountByBus", mock.Anything, bus.ID).Return(int64(1), nil).Once()

	_, err := svc.UpdateBus(context.Background(), adminOf(companyID), bus.ID.String(), &request.BusRequest{
		BusNumber:  "BT 1",
		BusType:    "AC",
		TotalSeats: 44,
	})
	assert.ErrorIs(t, err, ErrConflict)
	repos.bus.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	_, err = svc.UpdateBus(context.Background(), adminOf(uuid.New()), bus.ID.String(), &request.BusRequest{
		BusNumber:  "BT 1",
		BusType:    "AC",
		TotalSeats: 40,
	})
	assert.ErrorIs(t, err, ErrNotFound, "other companies cannot see the bus")
}

func TestCreateSchedule_FullInventoryAndPaddedTimes(t *testing.T) {
	repos, repo := newMockRepos()
	svc := NewFleetService(repo, zap.NewNop())
	companyID := uuid.New()
	bus := &entity.Bus{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, CompanyID: companyID, TotalSeats: 30, IsActive: true}
	route := &entity.Route{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, CompanyID: companyID, Origin: "Lilongwe", Destination: "Mzuzu", IsActive: true}

	repos.bus.On("FindByID", mock.Anything, bus.ID).Return(bus, nil)
	repos.route.On("FindByID", mock.Anything, route.ID).Return(route, nil)
	repos.schedule.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.Schedule) bool {
		return s.AvailableSeats == 30 && len(s.BookedSeats) == 0 && s.CompanyID == companyID &&
			s.DepartureTime == "09:05" && s.ArrivalTime == "04:00"
	})).Return(nil).Once()

	resp, err := svc.CreateSchedule(context.Background(), adminOf(companyID), &request.ScheduleRequest{
		BusID:         bus.ID.String(),
		RouteID:       route.ID.String(),
		Date:          "2026-03-02",
		DepartureTime: "9:05",
		ArrivalTime:   "4:00",
		Price:         18000,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.AvailableSeats)
	assert.Equal(t, "09:05", resp.DepartureTime)
	repos.schedule.AssertExpectations(t)
}

func TestUpdateSchedule_BusLockedByBookings(t *testing.T) {
	repos, repo := newMockRepos()
	svc := NewFleetService(repo, zap.NewNop())
	companyID := uuid.New()
	newBus := &entity.Bus{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, CompanyID: companyID, TotalSeats: 60, IsActive: true}
	route := &entity.Route{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, CompanyID: companyID, IsActive: true}
	schedule := &entity.Schedule{
		BaseNoDelete:   entity.BaseNoDelete{ID: uuid.New()},
		CompanyID:      companyID,
		BusID:          uuid.New(),
		RouteID:        route.ID,
		AvailableSeats: 38,
		BookedSeats:    []string{"1A", "1B"},
		IsActive:       true,
	}

	repos.schedule.On("FindByID", mock.Anything, schedule.ID).Return(schedule, nil)
	repos.bus.On("FindByID", mock.Anything, newBus.ID).Return(newBus, nil)
	repos.route.On("FindByID", mock.Anything, route.ID).Return(route, nil)

	_, err := svc.UpdateSchedule(context.Background(), adminOf(companyID), schedule.ID.String(), &request.ScheduleRequest{
		BusID:         newBus.ID.String(),
		RouteID:       route.ID.String(),
		Date:          "2026-03-02",
		DepartureTime: "08:00",
		ArrivalTime:   "12:00",
		Price:         5000,
	})
	assert.ErrorIs(t, err, ErrConflict)
	repos.schedule.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteSchedule_RejectedWithActiveBookings(t *testing.T) {
	repos, repo := newMockRepos()
	svc := NewFleetService(repo, zap.NewNop())
	companyID := uuid.New()
	schedule := &entity.Schedule{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, CompanyID: companyID, IsActive: true}

	repos.schedule.On("FindByID", mock.Anything, schedule.ID).Return(schedule, nil)
	repos.inventory.On("RetireSchedule", mock.Anything, schedule.ID).
		Return(fmt.Errorf("%w: %d", entity.ErrScheduleBooked, 1)).Once()

	err := svc.DeleteSchedule(context.Background(), adminOf(companyID), schedule.ID.String())
	assert.ErrorIs(t, err, ErrConflict)

	repos.inventory.On("RetireSchedule", mock.Anything, schedule.ID).Return(nil).Once()

	require.NoError(t, svc.DeleteSchedule(context.Background(), adminOf(companyID), schedule.ID.String()))
	repos.inventory.AssertExpectations(t)

	_, err = svc.UpdateSchedule(context.Background(), adminOf(uuid.New()), schedule.ID.String(), &request.ScheduleRequest{})
	assert.ErrorIs(t, err, ErrNotFound, "other companies cannot see the schedule")
}
