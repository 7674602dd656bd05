package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/authz"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	Landing(ctx context.Context, userID uuid.UUID) (*response.LandingResponse, error)
	GetMyBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, notFound("user", userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		us.log.Warn("Update profile validation failed", zap.Error(err))
		return nil, err
	}

	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user == nil {
		return nil, notFound("user", userID)
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Phone = nil
	if req.Phone != nil {
		phone := utils.CleanPhone(*req.Phone)
		user.Phone = &phone
	}
	user.UpdatedAt = time.Now().UTC()

	if err := us.repo.User.Update(ctx, user); err != nil {
		us.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("update profile: %w", err)
	}

	us.log.Info("Profile updated", zap.String("user_id", userID.String()))
	resp := response.UserToResponse(user)
	return &resp, nil
}

// Landing resolves where the client should route the user. A missing profile sends the
// user to registration rather than failing.
func (us *userService) Landing(ctx context.Context, userID uuid.UUID) (*response.LandingResponse, error) {
	user, err := us.repo.User.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("resolve landing: %w", err)
	}

	return &response.LandingResponse{Route: authz.LandingRoute(authz.PrincipalOf(user))}, nil
}

func (us *userService) GetMyBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := us.repo.Booking.FindByUser(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := us.repo.Booking.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	refs, err := tripLoader{repo: us.repo}.load(ctx, scheduleIDsOf(bookings))
	if err != nil {
		us.log.Error("Failed to load trips", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if !b.SeatsMatchPassengers() {
			us.log.Warn("Skipping booking with mismatched seats and passengers",
				zap.String("booking_id", b.ID.String()),
				zap.Int("seats", len(b.SeatNumbers)),
				zap.Int("passengers", len(b.PassengerDetails)))
			continue
		}
		items = append(items, response.BookingToResponse(b, refs.summary(b.ScheduleID)))
	}

	us.log.Info("User bookings retrieved",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(items)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
	)

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}
