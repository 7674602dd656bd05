package usecase

import (
	"context"
	"fmt"
	"strconv"

	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/authz"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// Icon is the closed set of dashboard icons the frontend knows how to draw.
type Icon string

const (
	IconDollarSign Icon = "DollarSign"
	IconUsers      Icon = "Users"
	IconCalendar   Icon = "Calendar"
	IconTruck      Icon = "Truck"
)

type statKind string

const (
	statRevenue   statKind = "total_revenue"
	statBookings  statKind = "total_bookings"
	statSchedules statKind = "active_schedules"
	statFleet     statKind = "fleet_size"
)

type statStyle struct {
	title string
	icon  Icon
	color string
}

var statStyles = map[statKind]statStyle{
	statRevenue:   {title: "Total Revenue", icon: IconDollarSign, color: "green"},
	statBookings:  {title: "Total Bookings", icon: IconUsers, color: "blue"},
	statSchedules: {title: "Active Schedules", icon: IconCalendar, color: "purple"},
	statFleet:     {title: "Fleet Size", icon: IconTruck, color: "orange"},
}

type DashboardService interface {
	Dashboard(ctx context.Context, p *authz.Principal) (*response.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewDashboardService(repo *repository.Repository, config *utils.Config, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) Dashboard(ctx context.Context, p *authz.Principal) (*response.DashboardResponse, error) {
	companyID, err := companyOf(p)
	if err != nil {
		return nil, err
	}

	revenue, err := s.repo.Booking.RevenueByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("dashboard revenue: %w", err)
	}
	bookings, err := s.repo.Booking.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("dashboard bookings: %w", err)
	}
	schedules, err := s.repo.Schedule.CountActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("dashboard schedules: %w", err)
	}
	fleet, err := s.repo.Bus.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("dashboard fleet: %w", err)
	}

	return &response.DashboardResponse{
		CompanyID: companyID.String(),
		Cards: []response.StatCard{
			card(statRevenue, s.config.Ticket.Currency+" "+strconv.FormatFloat(revenue, 'f', 2, 64)),
			card(statBookings, strconv.FormatInt(bookings, 10)),
			card(statSchedules, strconv.FormatInt(schedules, 10)),
			card(statFleet, strconv.FormatInt(fleet, 10)),
		},
	}, nil
}

func card(kind statKind, value string) response.StatCard {
	style := statStyles[kind]
	return response.StatCard{
		Key:   string(kind),
		Title: style.title,
		Value: value,
		Icon:  string(style.icon),
		Color: style.color,
	}
}
