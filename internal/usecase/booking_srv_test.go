package usecase

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/event"
	"bus-booking/internal/hold"
	"bus-booking/internal/payment"
	"bus-booking/internal/seating"
	"bus-booking/internal/ticket"
	"bus-booking/pkg/authz"
	"bus-booking/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type bookingFixture struct {
	repos    *mockRepos
	holds    *hold.Store
	gateway  *payment.MockGateway
	events   *recordingPublisher
	svc      *bookingService
	now      time.Time
	company  *entity.Company
	bus      *entity.Bus
	route    *entity.Route
	schedule *entity.Schedule
}

// newBookingFixture builds a 40 seat bus from Lilongwe to Blantyre departing tomorrow at
// 08:00, priced 5000, with 3A, 3B and 4A already booked.
func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repos, repo := newMockRepos()
	f := &bookingFixture{
		repos:   repos,
		holds:   hold.NewStore(client, 5*time.Minute, zap.NewNop()),
		gateway: payment.NewMockGateway("PayChangu", zap.NewNop()),
		events:  &recordingPublisher{},
		now:     time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	f.company = &entity.Company{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Name:         "Sososo Coaches",
		Phone:        "+265991234567",
		Email:        "info@sososo.mw",
		IsActive:     true,
	}
	f.bus = &entity.Bus{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		CompanyID:    f.company.ID,
		BusNumber:    "BT 1234",
		BusType:      entity.BusTypeAC,
		TotalSeats:   40,
		Amenities:    []string{"wifi", "ac"},
		IsActive:     true,
	}
	f.route = &entity.Route{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		CompanyID:    f.company.ID,
		Origin:       "Lilongwe",
		Destination:  "Blantyre",
		Distance:     311,
		Duration:     270,
		Stops:        []string{"Dedza", "Ntcheu"},
		IsActive:     true,
	}
	f.schedule = &entity.Schedule{
		BaseNoDelete:   entity.BaseNoDelete{ID: uuid.New()},
		CompanyID:      f.company.ID,
		BusID:          f.bus.ID,
		RouteID:        f.route.ID,
		Date:           time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		DepartureTime:  "08:00",
		ArrivalTime:    "12:30",
		Price:          5000,
		AvailableSeats: 37,
		BookedSeats:    []string{"3A", "3B", "4A"},
		IsActive:       true,
		Version:        3,
	}

	repos.schedule.On("FindByID", mock.Anything, f.schedule.ID).Return(f.schedule, nil).Maybe()
	repos.bus.On("FindByID", mock.Anything, f.bus.ID).Return(f.bus, nil).Maybe()
	repos.route.On("FindByIDs", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*entity.Route{f.route.ID: f.route}, nil).Maybe()
	repos.bus.On("FindByIDs", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*entity.Bus{f.bus.ID: f.bus}, nil).Maybe()
	repos.company.On("FindByIDs", mock.Anything, mock.Anything).
		Return(map[uuid.UUID]*entity.Company{f.company.ID: f.company}, nil).Maybe()

	config := &utils.Config{Ticket: utils.TicketConfig{VerifyBaseURL: "https://yourapp.com", Currency: "MWK"}}
	f.svc = NewBookingService(repo, f.holds, f.gateway, f.events, config, zap.NewNop()).(*bookingService)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *bookingFixture) customer() *authz.Principal {
	return &authz.Principal{UserID: uuid.New(), Role: entity.RoleCustomer}
}

func (f *bookingFixture) admin() *authz.Principal {
	return &authz.Principal{UserID: uuid.New(), Role: entity.RoleCompanyAdmin, CompanyID: &f.company.ID}
}

func (f *bookingFixture) hold(t *testing.T, p *authz.Principal, seats ...string) string {
	t.Helper()
	resp, err := f.svc.HoldSeats(context.Background(), p, f.schedule.ID.String(), &request.HoldRequest{
		Seats:      seats,
		Passengers: len(seats),
	})
	require.NoError(t, err)
	return resp.Token
}

func (f *bookingFixture) bookingRequest(token string, flow entity.BookingFlow, seats ...string) *request.CreateBookingRequest {
	req := &request.CreateBookingRequest{
		ScheduleID: f.schedule.ID.String(),
		HoldToken:  token,
		Flow:       string(flow),
	}
	for i, seat := range seats {
		req.Passengers = append(req.Passengers, request.PassengerRequest{
			Name:       "Passenger " + seat,
			Age:        30 + i,
			Gender:     "female",
			SeatNumber: seat,
		})
	}
	return req
}

// booking returns a stored booking of owner for seats 1A and 1B.
func (f *bookingFixture) booking(owner *authz.Principal, status entity.BookingStatus, paid entity.PaymentStatus) *entity.Booking {
	b := &entity.Booking{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New()},
		UserID:        owner.UserID,
		ScheduleID:    f.schedule.ID,
		CompanyID:     f.company.ID,
		SeatNumbers:   []string{"1A", "1B"},
		TotalAmount:   10000,
		BookingStatus: status,
		PaymentStatus: paid,
		Flow:          entity.FlowReserveThenPay,
		PassengerDetails: []entity.PassengerDetail{
			{Name: "Chikondi Banda", Age: 34, Gender: entity.GenderFemale, SeatNumber: "1A"},
			{Name: "Mphatso Phiri", Age: 29, Gender: entity.GenderMale, SeatNumber: "1B"},
		},
	}
	f.repos.booking.On("FindByID", mock.Anything, b.ID).Return(b, nil).Maybe()
	return b
}

// ==================== HOLDS ====================

func TestHoldSeats_ClaimsFreeSeats(t *testing.T) {
	f := newBookingFixture(t)
	customer := f.customer()

	resp, err := f.svc.HoldSeats(context.Background(), customer, f.schedule.ID.String(), &request.HoldRequest{
		Seats:      []string{"1A", "1B"},
		Passengers: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1A", "1B"}, resp.Seats)
	assert.Equal(t, f.schedule.ID.String(), resp.ScheduleID)

	h, err := f.holds.Lookup(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, customer.UserID.String(), h.UserID)
}

func TestHoldSeats_RejectsBookedSeat(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.HoldSeats(context.Background(), f.customer(), f.schedule.ID.String(), &request.HoldRequest{
		Seats:      []string{"3A"},
		Passengers: 1,
	})
	assert.ErrorIs(t, err, seating.ErrSeatBooked)
}

func TestHoldSeats_RequiresExactPassengerCount(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.HoldSeats(context.Background(), f.customer(), f.schedule.ID.String(), &request.HoldRequest{
		Seats:      []string{"1A"},
		Passengers: 2,
	})
	assert.ErrorIs(t, err, seating.ErrIncompleteSelection)
}

func TestHoldSeats_SecondCustomerIsRejected(t *testing.T) {
	f := newBookingFixture(t)
	f.hold(t, f.customer(), "1A", "1B")

	_, err := f.svc.HoldSeats(context.Background(), f.customer(), f.schedule.ID.String(), &request.HoldRequest{
		Seats:      []string{"1B"},
		Passengers: 1,
	})
	assert.ErrorIs(t, err, hold.ErrSeatsHeld)
}

func TestHoldSeats_RejectsDepartedSchedule(t *testing.T) {
	f := newBookingFixture(t)
	f.now = time.Date(2026, 3, 2, 8, 1, 0, 0, time.UTC)

	_, err := f.svc.HoldSeats(context.Background(), f.customer(), f.schedule.ID.String(), &request.HoldRequest{
		Seats:      []string{"1A"},
		Passengers: 1,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReleaseHold_OnlyOwner(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.customer()
	token := f.hold(t, owner, "2C")
	ctx := context.Background()

	err := f.svc.ReleaseHold(ctx, f.customer(), f.schedule.ID.String(), token)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.svc.ReleaseHold(ctx, owner, f.schedule.ID.String(), token))
	_, err = f.holds.Lookup(ctx, token)
	assert.ErrorIs(t, err, hold.ErrHoldNotFound)

	assert.NoError(t, f.svc.ReleaseHold(ctx, owner, f.schedule.ID.String(), token), "releasing twice is a no-op")
}

func TestSeatMap_ShowsBookedAndHeld(t *testing.T) {
	f := newBookingFixture(t)
	f.hold(t, f.customer(), "1A")

	resp, err := f.svc.SeatMap(context.Background(), f.schedule.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 40, resp.TotalSeats)
	assert.Equal(t, 37, resp.AvailableSeats)
	require.Len(t, resp.Rows, 10)
	assert.Equal(t, "held", resp.Rows[0][0].Status)
	assert.Equal(t, "available", resp.Rows[0][1].Status)
	assert.Equal(t, "3A", resp.Rows[2][0].Label)
	assert.Equal(t, "booked", resp.Rows[2][0].Status)
}

// ==================== CREATE ====================

func TestCreateBooking_TotalIsPriceTimesPassengers(t *testing.T) {
	f := newBookingFixture(t)
	customer := f.customer()
	token := f.hold(t, customer, "1A", "1B", "1C")

	f.repos.inventory.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.TotalAmount == 15000 && b.CompanyID == f.company.ID && b.UserID == customer.UserID
	})).Return(f.schedule, nil).Once()

	resp, err := f.svc.CreateBooking(context.Background(), customer,
		f.bookingRequest(token, entity.FlowReserveThenPay, "1A", "1B", "1C"))
	require.NoError(t, err)

	assert.Equal(t, 15000.0, resp.TotalAmount)
	assert.Equal(t, []string{"1A", "1B", "1C"}, resp.SeatNumbers)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.BookingStatus)
	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
	assert.Nil(t, resp.TransactionID)
	require.NotNil(t, resp.Trip)
	assert.Equal(t, "Lilongwe", resp.Trip.Origin)
	assert.Equal(t, "Sososo Coaches", resp.Trip.CompanyName)

	_, err = f.holds.Lookup(context.Background(), token)
	assert.ErrorIs(t, err, hold.ErrHoldNotFound, "hold is released once the booking commits")
	assert.Equal(t, []event.Type{event.BookingCreated}, f.events.types())
	f.repos.inventory.AssertExpectations(t)
}

func TestCreateBooking_PayImmediatelyChargesFirst(t *testing.T) {
	f := newBookingFixture(t)
	customer := f.customer()
	token := f.hold(t, customer, "5A")

	f.repos.inventory.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b *entity.Booking) bool {
		return b.PaymentStatus == entity.PaymentStatusPaid &&
			b.TransactionID != nil && strings.HasPrefix(*b.TransactionID, "TXN-") &&
			b.PaymentService != nil && *b.PaymentService == "PayChangu"
	})).Return(f.schedule, nil).Once()

	resp, err := f.svc.CreateBooking(context.Background(), customer,
		f.bookingRequest(token, entity.FlowPayImmediately, "5A"))
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	assert.Equal(t, []event.Type{event.BookingCreated, event.BookingPaid}, f.events.types())
	f.repos.inventory.AssertExpectations(t)
}

func TestCreateBooking_RequiresHold(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.CreateBooking(context.Background(), f.customer(),
		f.bookingRequest(uuid.NewString(), entity.FlowReserveThenPay, "1A"))
	assert.ErrorIs(t, err, hold.ErrHoldNotFound)
	f.repos.inventory.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestCreateBooking_HoldOfAnotherCustomer(t *testing.T) {
	f := newBookingFixture(t)
	token := f.hold(t, f.customer(), "1A")

	_, err := f.svc.CreateBooking(context.Background(), f.customer(),
		f.bookingRequest(token, entity.FlowReserveThenPay, "1A"))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateBooking_HoldMustCoverSeats(t *testing.T) {
	f := newBookingFixture(t)
	customer := f.customer()
	token := f.hold(t, customer, "1A")

	_, err := f.svc.CreateBooking(context.Background(), customer,
		f.bookingRequest(token, entity.FlowReserveThenPay, "1A", "1B"))
	assert.ErrorIs(t, err, hold.ErrHoldMismatch)
}

func TestCreateBooking_DuplicatePassengerSeatIsInvalid(t *testing.T) {
	f := newBookingFixture(t)
	customer := f.customer()
	token := f.hold(t, customer, "1A")

	_, err := f.svc.CreateBooking(context.Background(), customer,
		f.bookingRequest(token, entity.FlowReserveThenPay, "1A", "1A"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_InventoryConflict(t *testing.T) {
	f := newBookingFixture(t)
	customer := f.customer()
	token := f.hold(t, customer, "1A")

	f.repos.inventory.On("CreateBooking", mock.Anything, mock.Anything).
		Return(nil, entity.ErrSeatsUnavailable).Once()

	_, err := f.svc.CreateBooking(context.Background(), customer,
		f.bookingRequest(token, entity.FlowReserveThenPay, "1A"))
	assert.ErrorIs(t, err, entity.ErrSeatsUnavailable)
	assert.Empty(t, f.events.types())
}

// ==================== CANCEL / PAY ====================

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.customer()
	b := f.booking(owner, entity.BookingStatusConfirmed, entity.PaymentStatusPending)

	cancelled := *b
	cancelled.BookingStatus = entity.BookingStatusCancelled

	t.Run("stranger cannot see it", func(t *testing.T) {
		_, err := f.svc.CancelBooking(context.Background(), f.customer(), b.ID.String())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("admin of another company", func(t *testing.T) {
		other := uuid.New()
		p := &authz.Principal{UserID: uuid.New(), Role: entity.RoleCompanyAdmin, CompanyID: &other}
		_, err := f.svc.CancelBooking(context.Background(), p, b.ID.String())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner", func(t *testing.T) {
		f.repos.inventory.On("CancelBooking", mock.Anything, b.ID, repository.CancelRequested).
			Return(&cancelled, nil).Once()

		resp, err := f.svc.CancelBooking(context.Background(), owner, b.ID.String())
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, resp.BookingStatus)
		assert.Equal(t, []event.Type{event.BookingCancelled}, f.events.types())
	})

	t.Run("twice", func(t *testing.T) {
		f.repos.inventory.On("CancelBooking", mock.Anything, b.ID, repository.CancelRequested).
			Return(nil, entity.ErrAlreadyCancelled).Once()

		_, err := f.svc.CancelBooking(context.Background(), f.admin(), b.ID.String())
		assert.ErrorIs(t, err, entity.ErrAlreadyCancelled)
	})
}

func TestPayBooking(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.customer()
	b := f.booking(owner, entity.BookingStatusConfirmed, entity.PaymentStatusPending)

	paid := *b
	paid.PaymentStatus = entity.PaymentStatusPaid

	f.repos.inventory.On("MarkPaid", mock.Anything, b.ID, mock.MatchedBy(func(r repository.PaymentRecord) bool {
		return r.Service == "PayChangu" && strings.HasPrefix(r.TransactionID, "TXN-")
	})).Return(&paid, nil).Once()

	resp, err := f.svc.PayBooking(context.Background(), owner, b.ID.String(), &request.PayBookingRequest{})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, resp.Status)
	assert.Equal(t, 10000.0, resp.Amount)
	assert.Equal(t, []event.Type{event.BookingPaid}, f.events.types())

	_, err = f.svc.PayBooking(context.Background(), f.admin(), b.ID.String(), &request.PayBookingRequest{})
	assert.ErrorIs(t, err, ErrForbidden, "only the customer pays")
}

func TestPayBooking_CancelledIsRejected(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.customer()
	b := f.booking(owner, entity.BookingStatusCancelled, entity.PaymentStatusPending)

	_, err := f.svc.PayBooking(context.Background(), owner, b.ID.String(), &request.PayBookingRequest{})
	assert.ErrorIs(t, err, entity.ErrBookingCancelled)
	f.repos.inventory.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestPayBooking_CancelledAfterChargeIsLogged(t *testing.T) {
	f := newBookingFixture(t)
	core, logs := observer.New(zap.WarnLevel)
	f.svc.log = zap.New(core)

	owner := f.customer()
	b := f.booking(owner, entity.BookingStatusConfirmed, entity.PaymentStatusPending)

	// The sweeper cancels the booking between the charge and the write.
	f.repos.inventory.On("MarkPaid", mock.Anything, b.ID, mock.Anything).
		Return(nil, entity.ErrBookingCancelled).Once()

	_, err := f.svc.PayBooking(context.Background(), owner, b.ID.String(), &request.PayBookingRequest{})
	assert.ErrorIs(t, err, entity.ErrBookingCancelled)

	captured := logs.FilterMessage("Charge captured for a booking that was not marked paid").All()
	require.Len(t, captured, 1)
	fields := captured[0].ContextMap()
	assert.Equal(t, b.ID.String(), fields["booking_id"])
	assert.Regexp(t, `^TXN-`, fields["transaction_id"])
	assert.Equal(t, 10000.0, fields["amount"])
	assert.Empty(t, f.events.types())
}

func TestHandlePaymentWebhook(t *testing.T) {
	f := newBookingFixture(t)
	b := f.booking(f.customer(), entity.BookingStatusConfirmed, entity.PaymentStatusPending)

	intent, err := f.gateway.Initiate(context.Background(), payment.Charge{BookingID: b.ID.String(), Amount: b.TotalAmount})
	require.NoError(t, err)

	paid := *b
	paid.PaymentStatus = entity.PaymentStatusPaid
	f.repos.inventory.On("MarkPaid", mock.Anything, b.ID, mock.Anything).Return(&paid, nil).Once()

	payload, _ := json.Marshal(payment.WebhookPayload{IntentID: intent.ID, Status: payment.IntentSucceeded})
	resp, err := f.svc.HandlePaymentWebhook(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, b.ID.String(), resp.BookingID)

	_, err = f.svc.HandlePaymentWebhook(context.Background(), []byte(`{"intentId":"nope","status":"succeeded"}`))
	assert.ErrorIs(t, err, payment.ErrIntentNotFound)
}

// ==================== TICKETS ====================

func TestTicket_RendersPDF(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.customer()
	b := f.booking(owner, entity.BookingStatusConfirmed, entity.PaymentStatusPaid)

	pdf, filename, err := f.svc.Ticket(context.Background(), owner, b.ID.String(), true)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	assert.Equal(t, "ticket-"+utils.ShortRef(b.ID.String())+".pdf", filename)
}

func TestVerifyTicket(t *testing.T) {
	f := newBookingFixture(t)
	b := f.booking(f.customer(), entity.BookingStatusConfirmed, entity.PaymentStatusPaid)
	arrival := time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC)

	query := func(seats []string, arrival time.Time) url.Values {
		u, err := url.Parse(ticket.NewVerification(b.ID.String(), seats, arrival).URL("https://yourapp.com"))
		require.NoError(t, err)
		return u.Query()
	}

	t.Run("valid", func(t *testing.T) {
		resp, err := f.svc.VerifyTicket(context.Background(), query([]string{"1B", "1A"}, arrival))
		require.NoError(t, err)
		assert.True(t, resp.Valid, resp.Reason)
		assert.Equal(t, arrival.Add(4*time.Hour), resp.ExpiresAt)
	})

	t.Run("seat mismatch", func(t *testing.T) {
		resp, err := f.svc.VerifyTicket(context.Background(), query([]string{"1A"}, arrival))
		require.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Equal(t, "seats do not match booking", resp.Reason)
	})

	t.Run("forged expiry", func(t *testing.T) {
		resp, err := f.svc.VerifyTicket(context.Background(), query([]string{"1A", "1B"}, arrival.Add(24*time.Hour)))
		require.NoError(t, err)
		assert.False(t, resp.Valid)
	})

	t.Run("expired", func(t *testing.T) {
		f.now = arrival.Add(5 * time.Hour)
		defer func() { f.now = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) }()

		resp, err := f.svc.VerifyTicket(context.Background(), query([]string{"1A", "1B"}, arrival))
		require.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Equal(t, ticket.ErrTicketExpired.Error(), resp.Reason)
	})

	t.Run("unknown booking", func(t *testing.T) {
		id := uuid.New()
		f.repos.booking.On("FindByID", mock.Anything, id).Return(nil, nil).Once()

		q := query([]string{"1A"}, arrival)
		q.Set("bookingId", id.String())
		resp, err := f.svc.VerifyTicket(context.Background(), q)
		require.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Equal(t, "booking not found", resp.Reason)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := f.svc.VerifyTicket(context.Background(), url.Values{"bookingId": {b.ID.String()}})
		assert.ErrorIs(t, err, ticket.ErrMalformedPayload)
	})
}
