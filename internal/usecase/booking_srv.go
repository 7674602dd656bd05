package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/internal/event"
	"bus-booking/internal/hold"
	"bus-booking/internal/payment"
	"bus-booking/internal/seating"
	"bus-booking/internal/ticket"
	"bus-booking/pkg/authz"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeatHolder keeps time-bounded exclusive seat claims. Implemented by *hold.Store.
type SeatHolder interface {
	Acquire(ctx context.Context, scheduleID, userID string, seats []string) (*hold.Hold, error)
	Lookup(ctx context.Context, token string) (*hold.Hold, error)
	Verify(ctx context.Context, scheduleID, token string, seats []string) error
	Release(ctx context.Context, token string) error
	HeldSeats(ctx context.Context, scheduleID string, layout []string) ([]string, error)
}

type BookingService interface {
	// Seat selection
	SeatMap(ctx context.Context, scheduleID string) (*response.SeatMapResponse, error)
	HoldSeats(ctx context.Context, p *authz.Principal, scheduleID string, req *request.HoldRequest) (*response.HoldResponse, error)
	ReleaseHold(ctx context.Context, p *authz.Principal, scheduleID, token string) error

	// Booking lifecycle
	CreateBooking(ctx context.Context, p *authz.Principal, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, p *authz.Principal, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, p *authz.Principal, bookingID string) (*response.BookingResponse, error)
	ListCompanyBookings(ctx context.Context, p *authz.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Payment
	PayBooking(ctx context.Context, p *authz.Principal, bookingID string, req *request.PayBookingRequest) (*response.PaymentResponse, error)
	HandlePaymentWebhook(ctx context.Context, payload []byte) (*response.PaymentResponse, error)

	// Tickets
	Ticket(ctx context.Context, p *authz.Principal, bookingID string, withQR bool) ([]byte, string, error)
	VerifyTicket(ctx context.Context, query url.Values) (*response.TicketVerificationResponse, error)
}

type bookingService struct {
	repo    *repository.Repository
	holds   SeatHolder
	gateway payment.Gateway
	events  event.Publisher
	config  *utils.Config
	log     *zap.Logger
	now     func() time.Time
}

func NewBookingService(
	repo *repository.Repository,
	holds SeatHolder,
	gateway payment.Gateway,
	events event.Publisher,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:    repo,
		holds:   holds,
		gateway: gateway,
		events:  events,
		config:  config,
		log:     log.With(zap.String("service", "booking")),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ==================== SEAT SELECTION ====================

func (s *bookingService) SeatMap(ctx context.Context, scheduleID string) (*response.SeatMapResponse, error) {
	schedule, bus, err := s.bookableSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	layout := seating.Layout(bus.TotalSeats)
	held, err := s.holds.HeldSeats(ctx, schedule.ID.String(), layout)
	if err != nil {
		s.log.Error("Failed to list held seats", zap.Error(err), zap.String("schedule_id", scheduleID))
		return nil, fmt.Errorf("seat map: %w", err)
	}

	rows := seating.Map(layout, schedule.BookedSeats, held)
	cells := make([][]response.SeatCell, len(rows))
	for i, row := range rows {
		cells[i] = make([]response.SeatCell, len(row))
		for j, seat := range row {
			cells[i][j] = response.SeatCell{Label: seat.Label, Status: string(seat.Status)}
		}
	}

	return &response.SeatMapResponse{
		ScheduleID:     schedule.ID.String(),
		TotalSeats:     bus.TotalSeats,
		AvailableSeats: schedule.AvailableSeats,
		Rows:           cells,
	}, nil
}

func (s *bookingService) HoldSeats(ctx context.Context, p *authz.Principal, scheduleID string, req *request.HoldRequest) (*response.HoldResponse, error) {
	if p == nil {
		return nil, fmt.Errorf("authentication required: %w", ErrUnauthorized)
	}
	if err := validate(req); err != nil {
		s.log.Warn("Hold validation failed", zap.Error(err))
		return nil, err
	}

	schedule, bus, err := s.bookableSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	// 1. The selection must be exactly N free seats of this bus
	seats, err := seating.Select(seating.Layout(bus.TotalSeats), schedule.BookedSeats, req.Passengers, req.Seats)
	if err != nil {
		return nil, err
	}
	if schedule.AvailableSeats < len(seats) {
		return nil, entity.ErrSeatsUnavailable
	}

	// 2. Claim them exclusively
	h, err := s.holds.Acquire(ctx, schedule.ID.String(), p.UserID.String(), seats)
	if err != nil {
		s.log.Warn("Seat hold rejected",
			zap.Error(err),
			zap.String("schedule_id", scheduleID),
			zap.Strings("seats", seats))
		return nil, err
	}

	s.log.Info("Seats held",
		zap.String("schedule_id", scheduleID),
		zap.String("user_id", p.UserID.String()),
		zap.Strings("seats", seats),
		zap.Time("expires_at", h.ExpiresAt))

	return &response.HoldResponse{
		Token:      h.Token,
		ScheduleID: h.ScheduleID,
		Seats:      h.Seats,
		ExpiresAt:  h.ExpiresAt,
	}, nil
}

func (s *bookingService) ReleaseHold(ctx context.Context, p *authz.Principal, scheduleID, token string) error {
	if p == nil {
		return fmt.Errorf("authentication required: %w", ErrUnauthorized)
	}

	h, err := s.holds.Lookup(ctx, token)
	if errors.Is(err, hold.ErrHoldNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("release hold: %w", err)
	}
	if h.ScheduleID != scheduleID {
		return notFound("seat hold", token)
	}
	if h.UserID != p.UserID.String() {
		return fmt.Errorf("seat hold belongs to another customer: %w", ErrForbidden)
	}

	if err := s.holds.Release(ctx, token); err != nil {
		return fmt.Errorf("release hold: %w", err)
	}

	s.log.Info("Seat hold released", zap.String("schedule_id", scheduleID), zap.Strings("seats", h.Seats))
	return nil
}

// ==================== BOOKING LIFECYCLE ====================

func (s *bookingService) CreateBooking(ctx context.Context, p *authz.Principal, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if p == nil {
		return nil, fmt.Errorf("authentication required: %w", ErrUnauthorized)
	}

	// 1. Validate request
	if err := validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	schedule, bus, err := s.bookableSchedule(ctx, req.ScheduleID)
	if err != nil {
		return nil, err
	}

	seats := req.Seats()
	if _, err := seating.Select(seating.Layout(bus.TotalSeats), schedule.BookedSeats, len(seats), seats); err != nil {
		return nil, err
	}

	// 2. The caller must still hold exactly these seats
	h, err := s.holds.Lookup(ctx, req.HoldToken)
	if err != nil {
		return nil, err
	}
	if h.UserID != p.UserID.String() {
		return nil, fmt.Errorf("seat hold belongs to another customer: %w", ErrForbidden)
	}
	if err := s.holds.Verify(ctx, schedule.ID.String(), req.HoldToken, seats); err != nil {
		return nil, err
	}

	// 3. Build the booking
	now := s.now()
	passengers := make([]entity.PassengerDetail, len(req.Passengers))
	for i, pr := range req.Passengers {
		passengers[i] = entity.PassengerDetail{
			Name:       pr.Name,
			Age:        pr.Age,
			Gender:     entity.Gender(pr.Gender),
			SeatNumber: pr.SeatNumber,
		}
	}

	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:           p.UserID,
		ScheduleID:       schedule.ID,
		CompanyID:        schedule.CompanyID,
		PassengerDetails: passengers,
		SeatNumbers:      seats,
		TotalAmount:      schedule.Price * float64(len(seats)),
		BookingStatus:    entity.BookingStatusConfirmed,
		PaymentStatus:    entity.PaymentStatusPending,
		Flow:             entity.BookingFlow(req.Flow),
		BookingDate:      now,
	}

	// 4. Pay-immediately charges before anything is written
	var receipt *payment.Receipt
	if booking.Flow == entity.FlowPayImmediately {
		receipt, err = s.charge(ctx, booking, req.Phone)
		if err != nil {
			return nil, err
		}
		if err := booking.MarkPaid(receipt.PaymentID, receipt.Service, receipt.TransactionID, now); err != nil {
			return nil, err
		}
	}

	// 5. Reserve inventory and insert the booking atomically
	committed, err := s.repo.Inventory.CreateBooking(ctx, booking)
	if err != nil {
		if receipt != nil {
			s.log.Warn("Charge captured for a booking that was not written",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.String("transaction_id", receipt.TransactionID),
				zap.Float64("amount", receipt.Amount))
		}
		return nil, err
	}

	// 6. Seats are booked, the hold has done its job
	if err := s.holds.Release(context.WithoutCancel(ctx), req.HoldToken); err != nil {
		s.log.Warn("Failed to release seat hold", zap.Error(err), zap.String("token", req.HoldToken))
	}

	s.publish(ctx, event.BookingCreated, booking)
	if receipt != nil {
		s.publish(ctx, event.BookingPaid, booking)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", p.UserID.String()),
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("flow", string(booking.Flow)),
		zap.Strings("seats", seats),
		zap.Float64("total_amount", booking.TotalAmount),
		zap.Int("available_seats", committed.AvailableSeats))

	resp := response.BookingToResponse(booking, s.tripSummary(ctx, booking))
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, p *authz.Principal, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.accessibleBooking(ctx, p, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking, s.tripSummary(ctx, booking))
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, p *authz.Principal, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.accessibleBooking(ctx, p, bookingID)
	if err != nil {
		return nil, err
	}
	if !authz.CanCancelBooking(p, booking) {
		return nil, fmt.Errorf("cannot cancel booking %s: %w", booking.ID, ErrForbidden)
	}

	cancelled, err := s.repo.Inventory.CancelBooking(ctx, booking.ID, repository.CancelRequested)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.BookingCancelled, cancelled)

	s.log.Info("Booking cancelled",
		zap.String("booking_id", cancelled.ID.String()),
		zap.String("by", p.UserID.String()),
		zap.Strings("seats", cancelled.SeatNumbers))

	resp := response.BookingToResponse(cancelled, s.tripSummary(ctx, cancelled))
	return &resp, nil
}

func (s *bookingService) ListCompanyBookings(ctx context.Context, p *authz.Principal, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	companyID, err := companyOf(p)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByCompany(ctx, companyID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list company bookings: %w", err)
	}
	total, err := s.repo.Booking.CountByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("count company bookings: %w", err)
	}

	refs, err := tripLoader{repo: s.repo}.load(ctx, scheduleIDsOf(bookings))
	if err != nil {
		return nil, fmt.Errorf("list company bookings: %w", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = response.BookingToResponse(b, refs.summary(b.ScheduleID))
	}
	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

// ==================== PAYMENT ====================

func (s *bookingService) PayBooking(ctx context.Context, p *authz.Principal, bookingID string, req *request.PayBookingRequest) (*response.PaymentResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	booking, err := s.accessibleBooking(ctx, p, bookingID)
	if err != nil {
		return nil, err
	}
	if !authz.CanPayBooking(p, booking) {
		return nil, fmt.Errorf("only the customer can pay booking %s: %w", booking.ID, ErrForbidden)
	}
	if booking.IsCancelled() {
		return nil, entity.ErrBookingCancelled
	}

	receipt, err := s.charge(ctx, booking, req.Phone)
	if err != nil {
		return nil, err
	}

	return s.settle(ctx, booking.ID, receipt)
}

func (s *bookingService) HandlePaymentWebhook(ctx context.Context, payload []byte) (*response.PaymentResponse, error) {
	receipt, err := s.gateway.HandleWebhook(ctx, payload)
	if err != nil {
		s.log.Warn("Payment webhook rejected", zap.Error(err))
		return nil, err
	}

	bookingID, err := uuid.Parse(receipt.BookingID)
	if err != nil {
		return nil, invalid("webhook references invalid booking %s", receipt.BookingID)
	}

	return s.settle(ctx, bookingID, receipt)
}

func (s *bookingService) charge(ctx context.Context, booking *entity.Booking, phone *string) (*payment.Receipt, error) {
	charge := payment.Charge{
		BookingID: booking.ID.String(),
		Amount:    booking.TotalAmount,
		Currency:  s.config.Ticket.Currency,
	}
	if phone != nil {
		charge.Phone = utils.CleanPhone(*phone)
	}

	intent, err := s.gateway.Initiate(ctx, charge)
	if err != nil {
		s.log.Warn("Payment initiation failed", zap.Error(err), zap.String("booking_id", charge.BookingID))
		return nil, err
	}

	receipt, err := s.gateway.Confirm(ctx, intent.ID)
	if err != nil {
		s.log.Warn("Payment confirmation failed", zap.Error(err), zap.String("intent_id", intent.ID))
		return nil, err
	}
	return receipt, nil
}

func (s *bookingService) settle(ctx context.Context, bookingID uuid.UUID, receipt *payment.Receipt) (*response.PaymentResponse, error) {
	paid, err := s.repo.Inventory.MarkPaid(ctx, bookingID, repository.PaymentRecord{
		PaymentID:     receipt.PaymentID,
		Service:       receipt.Service,
		TransactionID: receipt.TransactionID,
		PaidAt:        receipt.PaidAt,
	})
	if err != nil {
		s.log.Warn("Charge captured for a booking that was not marked paid",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_id", receipt.PaymentID),
			zap.String("transaction_id", receipt.TransactionID),
			zap.Float64("amount", receipt.Amount))
		return nil, err
	}

	s.publish(ctx, event.BookingPaid, paid)

	s.log.Info("Payment processed",
		zap.String("booking_id", paid.ID.String()),
		zap.String("payment_id", receipt.PaymentID),
		zap.String("service", receipt.Service),
		zap.String("transaction_id", receipt.TransactionID),
		zap.Float64("amount", paid.TotalAmount))

	return &response.PaymentResponse{
		BookingID:     paid.ID.String(),
		PaymentID:     receipt.PaymentID,
		Service:       receipt.Service,
		TransactionID: receipt.TransactionID,
		Amount:        paid.TotalAmount,
		Status:        paid.PaymentStatus,
		PaidAt:        receipt.PaidAt,
	}, nil
}

// ==================== TICKETS ====================

func (s *bookingService) Ticket(ctx context.Context, p *authz.Principal, bookingID string, withQR bool) ([]byte, string, error) {
	booking, err := s.accessibleBooking(ctx, p, bookingID)
	if err != nil {
		return nil, "", err
	}

	refs, err := tripLoader{repo: s.repo}.load(ctx, []uuid.UUID{booking.ScheduleID})
	if err != nil {
		return nil, "", fmt.Errorf("load ticket trip: %w", err)
	}
	schedule := refs.schedules[booking.ScheduleID]
	if schedule == nil {
		return nil, "", notFound("schedule", booking.ScheduleID)
	}

	t := ticket.Ticket{
		Reference: utils.ShortRef(booking.ID.String()),
		Trip: ticket.Trip{
			Date:      schedule.Date.Format(entity.DateLayout),
			Departure: schedule.DepartureTime,
			Arrival:   schedule.ArrivalTime,
		},
		Seats:  booking.SeatNumbers,
		Status: "Pending",
		Payment: ticket.Payment{
			Total:    booking.TotalAmount,
			Currency: s.config.Ticket.Currency,
			Status:   string(booking.PaymentStatus),
		},
	}
	if booking.Ticketed() {
		t.Status = "Assigned"
	}
	if booking.PaymentService != nil {
		t.Payment.Service = *booking.PaymentService
	}
	if booking.TransactionID != nil {
		t.Payment.TransactionID = *booking.TransactionID
	}
	if company := refs.companies[schedule.CompanyID]; company != nil {
		t.Company = ticket.Company{Name: company.Name, Phone: company.Phone, Email: company.Email}
	}
	if route := refs.routes[schedule.RouteID]; route != nil {
		t.Trip.Origin = route.Origin
		t.Trip.Destination = route.Destination
		t.Trip.Stops = route.Stops
		t.Trip.Duration = ticket.FormatDuration(route.Duration)
	}
	if bus := refs.buses[schedule.BusID]; bus != nil {
		t.Bus = ticket.Bus{Type: string(bus.BusType), Number: bus.BusNumber, Amenities: bus.Amenities}
	}
	for _, pd := range booking.PassengerDetails {
		t.Passengers = append(t.Passengers, ticket.Passenger{
			Name:   pd.Name,
			Age:    pd.Age,
			Gender: string(pd.Gender),
			Seat:   pd.SeatNumber,
		})
	}

	if withQR && booking.BookingStatus == entity.BookingStatusConfirmed {
		arrival, err := schedule.ArrivalAt()
		if err != nil {
			return nil, "", fmt.Errorf("ticket arrival time: %w", err)
		}
		v := ticket.NewVerification(booking.ID.String(), booking.SeatNumbers, arrival)
		t.QRContent = v.URL(s.config.Ticket.VerifyBaseURL)
		if t.QRCode, err = ticket.QRCode(t.QRContent); err != nil {
			return nil, "", fmt.Errorf("encode ticket qr: %w", err)
		}
	}

	pdf, err := ticket.Render(t)
	if err != nil {
		s.log.Error("Failed to render ticket", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, "", err
	}

	return pdf, "ticket-" + t.Reference + ".pdf", nil
}

// VerifyTicket checks a scanned QR payload against the stored booking. Domain failures
// come back as Valid=false with a reason; only malformed payloads are errors.
func (s *bookingService) VerifyTicket(ctx context.Context, query url.Values) (*response.TicketVerificationResponse, error) {
	v, err := ticket.VerificationFromQuery(query)
	if err != nil {
		return nil, err
	}

	resp := &response.TicketVerificationResponse{
		BookingID: v.BookingID,
		Seats:     v.Seats,
		ExpiresAt: v.ExpiresAt,
	}
	reject := func(reason string) (*response.TicketVerificationResponse, error) {
		resp.Reason = reason
		s.log.Info("Ticket rejected", zap.String("booking_id", v.BookingID), zap.String("reason", reason))
		return resp, nil
	}

	id, err := uuid.Parse(v.BookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: bookingId", ticket.ErrMalformedPayload)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verify ticket: %w", err)
	}
	if booking == nil {
		return reject("booking not found")
	}
	if booking.BookingStatus != entity.BookingStatusConfirmed {
		return reject("booking is " + string(booking.BookingStatus))
	}
	if !sameSet(booking.SeatNumbers, v.Seats) {
		return reject("seats do not match booking")
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, booking.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("verify ticket: %w", err)
	}
	if schedule == nil {
		return reject("schedule not found")
	}
	arrival, err := schedule.ArrivalAt()
	if err != nil {
		return nil, fmt.Errorf("verify ticket: %w", err)
	}
	if !ticket.NewVerification(v.BookingID, v.Seats, arrival).ExpiresAt.Equal(v.ExpiresAt) {
		return reject("expiry does not match trip")
	}
	if v.Expired(s.now()) {
		return reject(ticket.ErrTicketExpired.Error())
	}

	resp.Valid = true
	return resp, nil
}

// ==================== HELPER METHODS ====================

// bookableSchedule loads an active, not yet departed schedule and its bus.
func (s *bookingService) bookableSchedule(ctx context.Context, rawID string) (*entity.Schedule, *entity.Bus, error) {
	id, err := parseID("schedule", rawID)
	if err != nil {
		return nil, nil, err
	}

	schedule, err := s.repo.Schedule.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find schedule: %w", err)
	}
	if schedule == nil {
		return nil, nil, notFound("schedule", id)
	}
	if !schedule.IsActive {
		return nil, nil, entity.ErrScheduleInactive
	}

	departure, err := schedule.DepartureAt()
	if err != nil {
		return nil, nil, fmt.Errorf("schedule %s departure: %w", id, err)
	}
	if departure.Before(s.now()) {
		return nil, nil, invalid("schedule %s has already departed", id)
	}

	bus, err := s.repo.Bus.FindByID(ctx, schedule.BusID)
	if err != nil {
		return nil, nil, fmt.Errorf("find bus: %w", err)
	}
	if bus == nil {
		return nil, nil, notFound("bus", schedule.BusID)
	}
	return schedule, bus, nil
}

// accessibleBooking loads a booking the principal may see.
func (s *bookingService) accessibleBooking(ctx context.Context, p *authz.Principal, rawID string) (*entity.Booking, error) {
	if p == nil {
		return nil, fmt.Errorf("authentication required: %w", ErrUnauthorized)
	}
	id, err := parseID("booking", rawID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil || !authz.CanAccessBooking(p, booking) {
		return nil, notFound("booking", id)
	}
	return booking, nil
}

func (s *bookingService) tripSummary(ctx context.Context, b *entity.Booking) *response.TripSummary {
	refs, err := tripLoader{repo: s.repo}.load(ctx, []uuid.UUID{b.ScheduleID})
	if err != nil {
		s.log.Warn("Failed to load trip summary", zap.Error(err), zap.String("booking_id", b.ID.String()))
		return nil
	}
	return refs.summary(b.ScheduleID)
}

func (s *bookingService) publish(ctx context.Context, t event.Type, b *entity.Booking) {
	e := bookingEvent(t, b, s.now())
	if err := s.events.Publish(context.WithoutCancel(ctx), e); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", string(t)),
			zap.String("booking_id", e.BookingID))
	}
}

func bookingEvent(t event.Type, b *entity.Booking, at time.Time) event.Event {
	e := event.Event{
		Type:          t,
		BookingID:     b.ID.String(),
		ScheduleID:    b.ScheduleID.String(),
		CompanyID:     b.CompanyID.String(),
		UserID:        b.UserID.String(),
		Seats:         b.SeatNumbers,
		Amount:        b.TotalAmount,
		BookingStatus: string(b.BookingStatus),
		PaymentStatus: string(b.PaymentStatus),
		OccurredAt:    at,
	}
	if b.TransactionID != nil {
		e.TransactionID = *b.TransactionID
	}
	return e
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
