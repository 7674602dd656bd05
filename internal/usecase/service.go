package usecase

import (
	"bus-booking/internal/data/repository"
	"bus-booking/internal/event"
	"bus-booking/internal/payment"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// Deps are the collaborators outside the database.
type Deps struct {
	Holds   SeatHolder
	Gateway payment.Gateway
	Events  event.Publisher
}

type Service struct {
	Auth      AuthService
	User      UserService
	Company   CompanyService
	Fleet     FleetService
	Search    SearchService
	Booking   BookingService
	Dashboard DashboardService
	Sweeper   *Sweeper
}

func NewService(repo *repository.Repository, deps Deps, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, config, log),
		User:      NewUserService(repo, log),
		Company:   NewCompanyService(repo, log),
		Fleet:     NewFleetService(repo, log),
		Search:    NewSearchService(repo, log),
		Booking:   NewBookingService(repo, deps.Holds, deps.Gateway, deps.Events, config, log),
		Dashboard: NewDashboardService(repo, config, log),
		Sweeper:   NewSweeper(repo, deps.Events, config, log),
	}
}
