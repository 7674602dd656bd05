package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/hold"
	"bus-booking/internal/payment"
	"bus-booking/internal/seating"
	"bus-booking/internal/ticket"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/authz"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Company *CompanyHandler
	Fleet   *FleetHandler
	Search  *SearchHandler
	Booking *BookingHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Company: NewCompanyHandler(service.Company, service.Dashboard, log),
		Fleet:   NewFleetHandler(service.Fleet, log),
		Search:  NewSearchHandler(service.Search, service.Booking, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Booking, log),
	}
}

// base carries what every handler shares.
type base struct {
	log *zap.Logger
}

func newBase(log *zap.Logger, name string) base {
	return base{log: log.With(zap.String("handler", name))}
}

// decode reads a JSON body into req and runs struct validation. It writes the 400 itself.
func (b base) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}

// principal returns the authenticated caller or writes a 401.
func (b base) principal(w http.ResponseWriter, r *http.Request) (*authz.Principal, bool) {
	p := authz.FromContext(r.Context())
	if p == nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return nil, false
	}
	return p, true
}

func paginated(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}
	return req
}

// handleServiceError maps domain errors to HTTP statuses, falling back to message matching
// for errors that carry no sentinel.
func (b base) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, entity.ErrInvalidSeat),
		errors.Is(err, seating.ErrUnknownSeat),
		errors.Is(err, seating.ErrSelectionFull),
		errors.Is(err, seating.ErrDuplicateSeat),
		errors.Is(err, seating.ErrIncompleteSelection),
		errors.Is(err, ticket.ErrMalformedPayload),
		errors.Is(err, payment.ErrInvalidWebhook):
		b.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrUnauthorized):
		b.log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, usecase.ErrForbidden):
		b.log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, payment.ErrIntentNotFound):
		b.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, entity.ErrSeatsUnavailable),
		errors.Is(err, entity.ErrScheduleModified),
		errors.Is(err, seating.ErrSeatBooked),
		errors.Is(err, hold.ErrSeatsHeld):
		b.log.Warn(operation+" failed - seats unavailable", zap.Error(err))
		utils.ResponseConflict(w, "seats no longer available: "+errMsg)

	case errors.Is(err, usecase.ErrConflict),
		errors.Is(err, entity.ErrScheduleInactive),
		errors.Is(err, entity.ErrPriceChanged),
		errors.Is(err, entity.ErrAlreadyCancelled),
		errors.Is(err, entity.ErrBookingCancelled),
		errors.Is(err, entity.ErrPaymentSettled),
		errors.Is(err, entity.ErrScheduleBooked),
		errors.Is(err, hold.ErrHoldNotFound),
		errors.Is(err, hold.ErrHoldMismatch):
		b.log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, payment.ErrPaymentDeclined):
		b.log.Warn(operation+" failed - payment declined", zap.Error(err))
		utils.ResponseJSON(w, http.StatusPaymentRequired, false, errMsg, nil, nil)

	case strings.Contains(errMsg, "not found"):
		b.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid"):
		b.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		b.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
