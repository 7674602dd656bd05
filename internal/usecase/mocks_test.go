package usecase

import (
	"context"
	"sync"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	s, _ := args.Get(0).(*entity.Session)
	return s, args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSessionRepo) CleanExpiredSessions(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

type mockCompanyRepo struct{ mock.Mock }

func (m *mockCompanyRepo) CreateForOwner(ctx context.Context, company *entity.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *mockCompanyRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Company)
	return c, args.Error(1)
}

func (m *mockCompanyRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Company, error) {
	args := m.Called(ctx, ids)
	c, _ := args.Get(0).(map[uuid.UUID]*entity.Company)
	return c, args.Error(1)
}

func (m *mockCompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	return m.Called(ctx, company).Error(0)
}

type mockBusRepo struct{ mock.Mock }

func (m *mockBusRepo) Create(ctx context.Context, bus *entity.Bus) error {
	return m.Called(ctx, bus).Error(0)
}

func (m *mockBusRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.Bus)
	return b, args.Error(1)
}

func (m *mockBusRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Bus, error) {
	args := m.Called(ctx, ids)
	b, _ := args.Get(0).(map[uuid.UUID]*entity.Bus)
	return b, args.Error(1)
}

func (m *mockBusRepo) FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Bus, error) {
	args := m.Called(ctx, companyID, limit, offset)
	b, _ := args.Get(0).([]*entity.Bus)
	return b, args.Error(1)
}

func (m *mockBusRepo) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBusRepo) Update(ctx context.Context, bus *entity.Bus) error {
	return m.Called(ctx, bus).Error(0)
}

func (m *mockBusRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockRouteRepo struct{ mock.Mock }

func (m *mockRouteRepo) Create(ctx context.Context, route *entity.Route) error {
	return m.Called(ctx, route).Error(0)
}

func (m *mockRouteRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.Route)
	return r, args.Error(1)
}

func (m *mockRouteRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Route, error) {
	args := m.Called(ctx, ids)
	r, _ := args.Get(0).(map[uuid.UUID]*entity.Route)
	return r, args.Error(1)
}

func (m *mockRouteRepo) FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Route, error) {
	args := m.Called(ctx, companyID, limit, offset)
	r, _ := args.Get(0).([]*entity.Route)
	return r, args.Error(1)
}

func (m *mockRouteRepo) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRouteRepo) Update(ctx context.Context, route *entity.Route) error {
	return m.Called(ctx, route).Error(0)
}

func (m *mockRouteRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockScheduleRepo struct{ mock.Mock }

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *entity.Schedule) error {
	return m.Called(ctx, schedule).Error(0)
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Schedule)
	return s, args.Error(1)
}

func (m *mockScheduleRepo) FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Schedule, error) {
	args := m.Called(ctx, companyID, limit, offset)
	s, _ := args.Get(0).([]*entity.Schedule)
	return s, args.Error(1)
}

func (m *mockScheduleRepo) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockScheduleRepo) CountActiveByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockScheduleRepo) CountByBus(ctx context.Context, busID uuid.UUID) (int64, error) {
	args := m.Called(ctx, busID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockScheduleRepo) FindBookable(ctx context.Context, date time.Time, passengers int) ([]*entity.Schedule, error) {
	args := m.Called(ctx, date, passengers)
	s, _ := args.Get(0).([]*entity.Schedule)
	return s, args.Error(1)
}

func (m *mockScheduleRepo) Update(ctx context.Context, schedule *entity.Schedule) error {
	return m.Called(ctx, schedule).Error(0)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, companyID, limit, offset)
	b, _ := args.Get(0).([]*entity.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindExpiredUnpaid(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, cutoff, limit)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *mockBookingRepo) RevenueByCompany(ctx context.Context, companyID uuid.UUID) (float64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(float64), args.Error(1)
}

type mockInventoryRepo struct{ mock.Mock }

func (m *mockInventoryRepo) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Schedule, error) {
	args := m.Called(ctx, booking)
	s, _ := args.Get(0).(*entity.Schedule)
	return s, args.Error(1)
}

func (m *mockInventoryRepo) CancelBooking(ctx context.Context, bookingID uuid.UUID, mode repository.CancelMode) (*entity.Booking, error) {
	args := m.Called(ctx, bookingID, mode)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

func (m *mockInventoryRepo) RetireSchedule(ctx context.Context, scheduleID uuid.UUID) error {
	return m.Called(ctx, scheduleID).Error(0)
}

func (m *mockInventoryRepo) MarkPaid(ctx context.Context, bookingID uuid.UUID, payment repository.PaymentRecord) (*entity.Booking, error) {
	args := m.Called(ctx, bookingID, payment)
	b, _ := args.Get(0).(*entity.Booking)
	return b, args.Error(1)
}

// mockRepos bundles one mock per repository behind a *repository.Repository.
type mockRepos struct {
	user      *mockUserRepo
	session   *mockSessionRepo
	company   *mockCompanyRepo
	bus       *mockBusRepo
	route     *mockRouteRepo
	schedule  *mockScheduleRepo
	booking   *mockBookingRepo
	inventory *mockInventoryRepo
}

func newMockRepos() (*mockRepos, *repository.Repository) {
	m := &mockRepos{
		user:      new(mockUserRepo),
		session:   new(mockSessionRepo),
		company:   new(mockCompanyRepo),
		bus:       new(mockBusRepo),
		route:     new(mockRouteRepo),
		schedule:  new(mockScheduleRepo),
		booking:   new(mockBookingRepo),
		inventory: new(mockInventoryRepo),
	}
	return m, &repository.Repository{
		User:      m.user,
		Session:   m.session,
		Company:   m.company,
		Bus:       m.bus,
		Route:     m.route,
		Schedule:  m.schedule,
		Booking:   m.booking,
		Inventory: m.inventory,
	}
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}
