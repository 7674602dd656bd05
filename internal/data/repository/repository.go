package repository

import (
	"bus-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Session   SessionRepository
	Company   CompanyRepository
	Bus       BusRepository
	Route     RouteRepository
	Schedule  ScheduleRepository
	Booking   BookingRepository
	Inventory InventoryRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Company:   NewCompanyRepository(db, log),
		Bus:       NewBusRepository(db, log),
		Route:     NewRouteRepository(db, log),
		Schedule:  NewScheduleRepository(db, log),
		Booking:   NewBookingRepository(db, log),
		Inventory: NewInventoryRepository(db, log),
	}
}
