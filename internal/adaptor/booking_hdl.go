package adaptor

import (
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	base
	service usecase.BookingService
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		base:    newBase(log, "booking"),
		service: service,
	}
}

// HoldSeats handles POST /api/schedules/{id}/holds (protected)
func (h *BookingHandler) HoldSeats(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req request.HoldRequest
	if !h.decode(w, r, &req) {
		return
	}

	held, err := h.service.HoldSeats(r.Context(), p, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "hold seats")
		return
	}

	utils.ResponseCreated(w, "Seats held", held)
}

// ReleaseHold handles DELETE /api/schedules/{id}/holds/{token} (protected)
func (h *BookingHandler) ReleaseHold(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.service.ReleaseHold(r.Context(), p, chi.URLParam(r, "id"), chi.URLParam(r, "token")); err != nil {
		h.handleServiceError(w, err, "release hold")
		return
	}

	utils.ResponseSuccess(w, "Seats released", nil)
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !h.decode(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), p, &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created successfully", booking)
}

// GetBooking handles GET /api/bookings/{id} and GET /api/admin/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles POST /api/bookings/{id}/cancel and PUT /api/admin/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", booking)
}

// PayBooking handles POST /api/bookings/{id}/pay (protected)
func (h *BookingHandler) PayBooking(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req request.PayBookingRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}

	receipt, err := h.service.PayBooking(r.Context(), p, chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err, "pay booking")
		return
	}

	utils.ResponseSuccess(w, "Payment processed successfully", receipt)
}

// Ticket handles GET /api/bookings/{id}/ticket?qr=true (protected)
func (h *BookingHandler) Ticket(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	withQR := r.URL.Query().Get("qr") == "true"
	pdf, filename, err := h.service.Ticket(r.Context(), p, chi.URLParam(r, "id"), withQR)
	if err != nil {
		h.handleServiceError(w, err, "export ticket")
		return
	}

	utils.ResponseFile(w, "application/pdf", filename, pdf)
}

// VerifyTicket handles GET /api/tickets/verify?bookingId=&seats=&expires= (public)
func (h *BookingHandler) VerifyTicket(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.VerifyTicket(r.Context(), r.URL.Query())
	if err != nil {
		h.handleServiceError(w, err, "verify ticket")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ==================== ADMIN METHODS ====================

// GetCompanyBookings handles GET /api/admin/bookings?page=1&per_page=10
func (h *BookingHandler) GetCompanyBookings(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	bookings, err := h.service.ListCompanyBookings(r.Context(), p, paginated(r))
	if err != nil {
		h.handleServiceError(w, err, "get company bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
