package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, config, log))

		// Seat holds
		r.Post("/api/schedules/{id}/holds", bookingHandler.HoldSeats)
		r.Delete("/api/schedules/{id}/holds/{token}", bookingHandler.ReleaseHold)

		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Post("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
		r.Post("/api/bookings/{id}/pay", bookingHandler.PayBooking)
		r.Get("/api/bookings/{id}/ticket", bookingHandler.Ticket)
	})

	// ==================== PUBLIC ROUTES ====================
	// GET /api/tickets/verify - scanned from the ticket QR code
	r.Get("/api/tickets/verify", bookingHandler.VerifyTicket)

	// POST /api/payments/webhook - provider callback
	r.Post("/api/payments/webhook", paymentHandler.Webhook)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(companyAdmin(repo, config, log)...)

		r.Get("/", bookingHandler.GetCompanyBookings)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
